package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Pomilon/linux-software-store/internal/bootstrap"
	"github.com/Pomilon/linux-software-store/internal/config"
	"github.com/Pomilon/linux-software-store/internal/dispatch"
	"github.com/Pomilon/linux-software-store/internal/ui"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Bridge UI commands and events as line-delimited JSON",
	Long: `Read JSON commands from standard input, one per line, and write
JSON events to standard output. This is the integration surface for
graphical front-ends.

Commands: getInstalled, getUpdates, getExplorePackages,
search{term,scope}, install{package}, uninstall{package}, log{message}.
Unrecognized commands are ignored.

Events carry a "response" discriminator: installedPackages,
updatePackages, explorePackages, searchResults, operationStatus,
operationProgress, operationCompleted, refresh.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var recorder dispatch.Recorder
	if hist := openHistory(); hist != nil {
		defer hist.Close()
		recorder = hist
	}

	d := dispatch.New(catalog, recorder, 64)

	// Single consumer: events reach stdout in channel order.
	writerDone := make(chan error, 1)
	go func() {
		enc := json.NewEncoder(os.Stdout)
		for ev := range d.Events() {
			if err := enc.Encode(ev); err != nil {
				writerDone <- fmt.Errorf("writing event: %w", err)
				return
			}
		}
		writerDone <- nil
	}()

	// Front-ends have no terminal of their own, so the prerequisite
	// check reports over the event stream before commands are accepted.
	// pkexec prompts through polkit, so no confirmation hook is needed.
	if err := config.EnsureDataDir(); err == nil {
		state := &bootstrap.FileState{Path: config.BootstrapStatePath()}
		checker := bootstrap.NewChecker(state, exec, d.PostStatus, nil)
		if err := checker.Run(ctx); err != nil {
			d.PostStatus("Setup warning: " + err.Error())
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var command dispatch.Command
		if err := json.Unmarshal(line, &command); err != nil {
			if cfg.Output.Verbose {
				ui.WarningMsg("Ignoring malformed command: %v", err)
			}
			continue
		}
		d.Handle(ctx, command)
	}

	d.Close()
	if err := <-writerDone; err != nil {
		return err
	}
	return scanner.Err()
}

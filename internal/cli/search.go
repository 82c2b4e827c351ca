package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/Pomilon/linux-software-store/internal/ui"
	"github.com/Pomilon/linux-software-store/pkg/store"

	"github.com/spf13/cobra"
)

var searchScope string

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search packages by name or description",
	Long: `Search packages by case-insensitive substring match on name or
description. The explore scope queries both backends' remote catalogs;
the installed scope filters what is already on the system.

Examples:
  softstore search firefox
  softstore search editor --scope installed`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchScope, "scope", "explore", "search scope (explore or installed)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	term := strings.Join(args, " ")
	if strings.TrimSpace(term) == "" {
		return ErrNoTerm
	}

	scope := store.SearchScope(searchScope)
	if scope != store.ScopeExplore && scope != store.ScopeInstalled {
		return fmt.Errorf("unknown scope %q (want explore or installed)", searchScope)
	}

	sp := ui.NewSpinner(fmt.Sprintf("Searching for %q...", term))
	sp.Start()
	records := catalog.Search(context.Background(), term, scope)
	sp.Stop()

	ui.PrintPackages(records)
	return nil
}

package ui

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Pomilon/linux-software-store/internal/history"
	"github.com/Pomilon/linux-software-store/pkg/store"
)

const descriptionWidth = 60

// PrintPackages prints records in a formatted table.
func PrintPackages(records []store.PackageRecord) {
	if len(records) == 0 {
		MutedMsg("No packages found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, Bold("SOURCE")+"\t"+Bold("NAME")+"\t"+Bold("VERSION")+"\t"+Bold("DESCRIPTION"))

	for _, rec := range records {
		source := PackageSource.Sprint("[" + string(rec.Source) + "]")
		name := PackageName.Sprint(rec.Name)
		if rec.RawName != "" {
			name += " " + Muted.Sprint("("+rec.RawName+")")
		}
		version := PackageVersion.Sprint(rec.Version)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", source, name, version, truncate(rec.Description, descriptionWidth))
	}

	w.Flush()
}

// PrintHistory prints recent operation entries, newest first.
func PrintHistory(entries []history.Entry) {
	if len(entries) == 0 {
		MutedMsg("No operations recorded")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, Bold("WHEN")+"\t"+Bold("OPERATION")+"\t"+Bold("PACKAGE")+"\t"+Bold("SOURCE")+"\t"+Bold("RESULT"))

	for _, e := range entries {
		result := Green("ok")
		if !e.Success {
			result = Red("failed")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t[%s]\t%s\n",
			e.FormatTime(), e.Operation, e.Package, e.Source, result)
	}

	w.Flush()
}

// truncate shortens s to max runes, never splitting a multi-byte rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

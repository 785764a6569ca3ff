package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/destiny-recharge/internal/engine"
	"github.com/Veraticus/destiny-recharge/internal/service"
)

// RenderSummary renders the end-of-run box.
func RenderSummary(report *engine.RunReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Day:       %s (%s template)\n", report.Day, report.Template)
	if report.Rotation != nil {
		fmt.Fprintf(&b, "Today:     %d removed, %d added, %d leftovers\n",
			report.Rotation.Removed, report.Rotation.Added, len(report.Rotation.Leftovers))
	}

	if report.Ledger != nil {
		fmt.Fprintf(&b, "Ledger:    %d updated, %d filed, %d dropped\n",
			len(report.Ledger.Updated), len(report.Ledger.Filed), len(report.Ledger.Dropped))

		for _, u := range report.Ledger.Updated {
			fmt.Fprintf(&b, "  %s %s → %s\n", FormatSection(u.Section), SubtleStyle.Render(u.Before), u.After)
		}
		for _, f := range report.Ledger.Filed {
			fmt.Fprintf(&b, "  %s + %s\n", FormatSection(f.Section), f.Item.Text)
		}
		for _, d := range report.Ledger.Dropped {
			fmt.Fprintf(&b, "  %s\n", WarningStyle.Render(fmt.Sprintf("%s %s (%s)", WarningIcon, d.Item.Text, d.Reason)))
		}
	}

	if !report.FinishedAt.IsZero() {
		fmt.Fprintf(&b, "Took:      %s", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
	}

	title := "Recharge complete"
	if report.DryRun {
		title = "Recharge preview (dry run)"
	}
	return RenderBox(BoltIcon+" "+title, strings.TrimRight(b.String(), "\n"))
}

// RenderHistory renders journaled runs, newest first.
func RenderHistory(runs []service.RunRecord) string {
	if len(runs) == 0 {
		return FormatInfo("No runs recorded yet.")
	}

	var b strings.Builder
	for i, run := range runs {
		if i > 0 {
			b.WriteString("\n")
		}
		line := fmt.Sprintf("%s  %-9s %-8s %d leftovers, %d updated, %d filed, %d dropped",
			run.StartedAt.Local().Format("2006-01-02 15:04"), run.Day, run.Template,
			run.Leftovers, run.Updated, run.Filed, len(run.Dropped))
		if run.DryRun {
			line += SubtleStyle.Render(" (dry run)")
		}
		b.WriteString(BoldStyle.Render(line))
		for _, d := range run.Dropped {
			fmt.Fprintf(&b, "\n  %s", WarningStyle.Render(fmt.Sprintf("%s %s (%s)", WarningIcon, d.Text, d.Reason)))
		}
	}

	return RenderBox("Recent runs", b.String())
}

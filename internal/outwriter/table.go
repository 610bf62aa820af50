package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/lwoluke/usd-automated-testing/internal/contract"
	"github.com/lwoluke/usd-automated-testing/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeOutcomeTable renders the per-check detail table shown with --detail.
func writeOutcomeTable(writer io.Writer, report *schema.Report, cfg *contract.Config) error {
	table := tablewriter.NewWriter(writer)
	defer func() { _ = table.Close() }()

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
		// Keep header labels exactly as given; the library title-cases
		// (uppercases) them by default when the header is set.
		tcfg.Header.Formatting.AutoFormat = tw.Off
	})
	table.Header([]string{"#", "Check", "Result", "Issues"})

	maxWidth := getMaxTableMessageWidth(cfg)
	var data [][]string
	for i, o := range report.Outcomes {
		label := contract.GetPlainLabel(o.Passed)
		if cfg.UseColors {
			label = contract.GetColorLabel(o.Passed)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			string(o.ID),
			label,
			truncateMessage(firstLine(o.Message), maxWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("failed to add table rows: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

// firstLine reduces a multi-line diagnostic to its heading for table display;
// the transcript above already carries the full text.
func firstLine(msg string) string {
	for i, r := range msg {
		if r == '\n' {
			return msg[:i]
		}
	}
	return msg
}

// truncateMessage shortens a message for table display.
func truncateMessage(msg string, maxLen int) string {
	if maxLen <= 3 || len(msg) <= maxLen {
		return msg
	}
	return msg[:maxLen-3] + "..."
}

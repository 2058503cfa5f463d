package harness

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/ojrosten/sequoia-sub007/checklog"
)

// RenderSummaryTable renders the grand-total summary for a run, one row
// per executed family plus a totals footer.
func RenderSummaryTable(runID string, families []*Family, total checklog.Summary) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Family", "Tests", "Status"})

	tests := 0
	for _, f := range families {
		t.AppendRow(table.Row{f.Name, len(f.Tests), ""})
		tests += len(f.Tests)
	}

	t.AppendFooter(table.Row{
		"TOTAL", tests,
		statusText(total),
	})

	return "run " + runID + "\n" + t.Render()
}

func statusText(s checklog.Summary) string {
	if s.Passed() {
		return "PASS"
	}
	return "FAIL"
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/mrfop/worktime/internal/service"
)

// RenderReportDocument renders a finalized report document as plain
// text. The same output is printed to the terminal and written to the
// export file, so it carries no ANSI styling.
func RenderReportDocument(doc *service.ExportDocument) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Work report %s - %s (%s)\n", doc.From, doc.To, doc.Timezone)
	fmt.Fprintf(&b, "Generated at %s\n", doc.GeneratedAt)

	for _, day := range doc.Days {
		fmt.Fprintf(&b, "\n%s  worked %s  allocated %s  unallocated %s\n",
			day.Date, day.Duration, day.Allocated, day.Unallocated)
		for _, session := range day.Sessions {
			fmt.Fprintf(&b, "  %s - %s  %s  (allocated %s, unallocated %s)\n",
				session.Start, session.End, session.Duration,
				session.Allocated, session.Unallocated)
			for _, seg := range session.Segments {
				line := fmt.Sprintf("    %s - %s  %s  %s / %s",
					seg.Start, seg.End, seg.Duration, seg.Category, seg.Activity)
				if seg.Comment != "" {
					line += "  " + seg.Comment
				}
				b.WriteString(line + "\n")
			}
		}
	}

	fmt.Fprintf(&b, "\nTotal worked %s  allocated %s  unallocated %s\n",
		doc.Duration, doc.Allocated, doc.Unallocated)
	return b.String()
}

// RenderDayTable renders report days as a styled summary table.
func RenderDayTable(days []service.WorkDay) string {
	headers := []string{"DAY", "SESSIONS", "WORKED", "ALLOCATED", "UNALLOCATED"}
	rows := make([][]string, 0, len(days))
	for _, day := range days {
		rows = append(rows, []string{
			StyleBold.Render(day.Day),
			fmt.Sprintf("%d", len(day.Sessions)),
			service.FormatSeconds(day.SessionSeconds),
			StyleGreen.Render(service.FormatSeconds(day.SegmentSeconds)),
			Dim(service.FormatSeconds(day.UnallocatedSeconds)),
		})
	}
	return RenderTable(headers, rows)
}

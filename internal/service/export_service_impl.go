package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mrfop/worktime/internal/domain"
)

type exportService struct {
	reports  ReportService
	sessions SessionService
	segments SegmentService
	observer UseCaseObserver
}

// NewExportService creates the export guard and document builder. The
// renderer that consumes the document is a separate concern; this
// service only guarantees the document describes closed intervals.
func NewExportService(reports ReportService, sessions SessionService, segments SegmentService, observers ...UseCaseObserver) ExportService {
	return &exportService{
		reports:  reports,
		sessions: sessions,
		segments: segments,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (e *exportService) AssertNothingRunning(ctx context.Context) error {
	running, err := e.segments.IsRunning(ctx)
	if err != nil {
		return err
	}
	if running {
		return domain.OperationBlocked(domain.SubjectWorkReport, domain.SubjectWorkSegment)
	}

	running, err = e.sessions.IsRunning(ctx)
	if err != nil {
		return err
	}
	if running {
		return domain.OperationBlocked(domain.SubjectWorkReport, domain.SubjectWorkSession)
	}
	return nil
}

func (e *exportService) BuildDocument(ctx context.Context, req ExportRequest) (doc *ExportDocument, err error) {
	started := time.Now()
	defer func() { observe(ctx, e.observer, "report_export", started, err, nil) }()

	// Export windows must have positive duration.
	if err = domain.RequireValidStrictClosedRange(domain.SubjectWorkReport, &req.From, &req.To); err != nil {
		return nil, err
	}

	// A finalized report must only describe closed intervals.
	if err = e.AssertNothingRunning(ctx); err != nil {
		return nil, err
	}

	days, err := e.reports.DaysWithSegments(ctx, &req.From, &req.To)
	if err != nil {
		return nil, err
	}

	loc := req.Location
	if loc == nil {
		loc = time.UTC
	}

	doc = &ExportDocument{
		From:        req.From.In(loc).Format("2006-01-02 15:04"),
		To:          req.To.In(loc).Format("2006-01-02 15:04"),
		Timezone:    loc.String(),
		GeneratedAt: time.Now().In(loc).Format("2006-01-02 15:04:05"),
	}

	var totalSession, totalSegment, totalUnallocated int64
	for _, day := range days {
		doc.Days = append(doc.Days, buildExportDay(day, loc, req.ShowSegments))
		totalSession += day.SessionSeconds
		totalSegment += day.SegmentSeconds
		totalUnallocated += day.UnallocatedSeconds
	}
	doc.Duration = FormatSeconds(totalSession)
	doc.Allocated = FormatSeconds(totalSegment)
	doc.Unallocated = FormatSeconds(totalUnallocated)

	return doc, nil
}

func (e *exportService) Filename(req ExportRequest) string {
	loc := req.Location
	if loc == nil {
		loc = time.UTC
	}
	return fmt.Sprintf("work-report_%s_%s.txt",
		req.From.In(loc).Format("2006-01-02"),
		req.To.In(loc).Format("2006-01-02"))
}

func buildExportDay(day WorkDay, loc *time.Location, showSegments bool) ExportDay {
	out := ExportDay{
		Date:        day.Day,
		Duration:    FormatSeconds(day.SessionSeconds),
		Allocated:   FormatSeconds(day.SegmentSeconds),
		Unallocated: FormatSeconds(day.UnallocatedSeconds),
	}
	for _, session := range day.Sessions {
		row := ExportSession{
			Start:       session.Session.StartTime.In(loc).Format("15:04"),
			End:         formatEnd(session.Session.EndTime, loc),
			Duration:    FormatSeconds(session.SessionSeconds),
			Allocated:   FormatSeconds(session.SegmentSeconds),
			Unallocated: FormatSeconds(session.UnallocatedSeconds),
		}
		if showSegments {
			for _, seg := range session.Segments {
				var comment string
				if seg.Segment.Comment != nil {
					comment = *seg.Segment.Comment
				}
				row.Segments = append(row.Segments, ExportSegment{
					Category: seg.CategoryName,
					Activity: seg.ActivityName,
					Start:    seg.Segment.StartTime.In(loc).Format("15:04"),
					End:      formatEnd(seg.Segment.EndTime, loc),
					Duration: FormatSeconds(seg.Seconds),
					Comment:  comment,
				})
			}
		}
		out.Sessions = append(out.Sessions, row)
	}
	return out
}

func formatEnd(end *time.Time, loc *time.Location) string {
	if end == nil {
		return ""
	}
	return end.In(loc).Format("15:04")
}

// FormatSeconds renders a second count as H:MM:SS.
func FormatSeconds(secs int64) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

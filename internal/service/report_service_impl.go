package service

import (
	"context"
	"time"

	"github.com/mrfop/worktime/internal/domain"
	"github.com/mrfop/worktime/internal/repository"
)

type reportService struct {
	sessions repository.SessionRepo
}

// NewReportService creates the read-only report aggregator. It takes no
// locks; reports may observe slightly stale state.
func NewReportService(sessions repository.SessionRepo) ReportService {
	return &reportService{sessions: sessions}
}

func (r *reportService) DaysWithSegments(ctx context.Context, from, to *time.Time) ([]WorkDay, error) {
	// An open session overlaps the window up to now.
	now := time.Now().UTC()

	views, err := r.sessions.FindOverlappingWithSegments(ctx, now, from, to)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, nil
	}

	// Bucket by UTC start day in first-seen order. The store returns
	// sessions newest start first, so days come out newest first too.
	var days []WorkDay
	index := make(map[string]int, len(views))

	for _, view := range views {
		report := buildSessionReport(view)

		day := view.Session.StartDay()
		i, ok := index[day]
		if !ok {
			i = len(days)
			index[day] = i
			days = append(days, WorkDay{Day: day})
		}
		days[i].Sessions = append(days[i].Sessions, report)
		days[i].SessionSeconds += report.SessionSeconds
		days[i].SegmentSeconds += report.SegmentSeconds
		days[i].UnallocatedSeconds += report.UnallocatedSeconds
	}

	return days, nil
}

// buildSessionReport computes the per-session duration arithmetic.
// Missing end times yield zero seconds rather than an error; the export
// guard is the primary defense against open intervals in finalized
// output, this clamp is only a last-resort safety net.
func buildSessionReport(view *repository.SessionWithSegments) SessionReport {
	report := SessionReport{
		Session:        view.Session,
		SessionSeconds: domain.DiffSeconds(&view.Session.StartTime, view.Session.EndTime),
	}

	for _, seg := range view.Segments {
		secs := domain.DiffSeconds(&seg.Segment.StartTime, seg.Segment.EndTime)
		report.Segments = append(report.Segments, SegmentReport{
			Segment:      seg.Segment,
			CategoryName: seg.CategoryName,
			ActivityName: seg.ActivityName,
			Seconds:      secs,
		})
		report.SegmentSeconds += secs
	}

	report.UnallocatedSeconds = report.SessionSeconds - report.SegmentSeconds
	if report.UnallocatedSeconds < 0 {
		report.UnallocatedSeconds = 0
	}
	return report
}

package in_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	trackingin "wearlog/internal/modules/tracking/adapter/in"
	trackingdto "wearlog/internal/modules/tracking/dto"
)

type fakeTracking struct {
	report trackingdto.ReportOutput
	err    error
}

func (f fakeTracking) Report(context.Context, trackingdto.ReportInput) (trackingdto.ReportOutput, error) {
	return f.report, f.err
}

func (f fakeTracking) Export(context.Context, trackingdto.ExportInput) (trackingdto.ExportOutput, error) {
	return trackingdto.ExportOutput{}, nil
}

func TestPromCollectorExportsReport(t *testing.T) {
	start := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	collector := trackingin.NewPromCollector(fakeTracking{report: trackingdto.ReportOutput{
		GoalHours:    15,
		WornSeconds:  7200,
		Progress:     13.5,
		CurrentScore: 80,
		IsWearing:    true,
		OpenSince:    &start,
		GroupedSessions: []trackingdto.BucketOutput{
			{Key: "2024-01-02", Total: 13.5},
			{Key: "2024-01-01", Total: 100},
		},
	}}, nil)

	reg := prometheus.NewRegistry()
	if err := collector.Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := collector.Register(reg); err != nil {
		t.Fatalf("registering twice must be tolerated: %v", err)
	}

	expected := `
# HELP wearlog_compliance_score Compliance score over the days before today
# TYPE wearlog_compliance_score gauge
wearlog_compliance_score 80
# HELP wearlog_day_progress_percent Percent of goal worn per recent tracking day
# TYPE wearlog_day_progress_percent gauge
wearlog_day_progress_percent{day="2024-01-01"} 100
wearlog_day_progress_percent{day="2024-01-02"} 13.5
# HELP wearlog_wearing 1 while a session is open
# TYPE wearlog_wearing gauge
wearlog_wearing 1
# HELP wearlog_worn_today_seconds Time worn during the current tracking day
# TYPE wearlog_worn_today_seconds gauge
wearlog_worn_today_seconds 7200
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"wearlog_compliance_score", "wearlog_day_progress_percent", "wearlog_wearing", "wearlog_worn_today_seconds"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
}

func TestPromCollectorCountsFailures(t *testing.T) {
	collector := trackingin.NewPromCollector(fakeTracking{err: errors.New("db locked")}, nil)
	reg := prometheus.NewRegistry()
	if err := collector.Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}

	expected := `
# HELP wearlog_report_failures_total Scrapes that could not derive a report
# TYPE wearlog_report_failures_total counter
wearlog_report_failures_total 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "wearlog_report_failures_total"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
	if n := testutil.CollectAndCount(collector, "wearlog_worn_today_seconds"); n != 0 {
		t.Fatalf("no gauges expected on failure, got %d", n)
	}
}

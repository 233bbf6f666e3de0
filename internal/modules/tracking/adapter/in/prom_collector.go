package in

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	trackingdto "wearlog/internal/modules/tracking/dto"
	trackingin "wearlog/internal/modules/tracking/port/in"
	"wearlog/internal/platform/logger"
)

const (
	namespace  = "wearlog"
	recentDays = 7
)

// PromCollector exposes the current report as gauges, derived on every
// scrape.
type PromCollector struct {
	usecase trackingin.Usecase
	timeout time.Duration
	log     logger.Logger

	wornToday   *prometheus.Desc
	progress    *prometheus.Desc
	score       *prometheus.Desc
	goal        *prometheus.Desc
	wearing     *prometheus.Desc
	trackedDays *prometheus.Desc
	dayProgress *prometheus.Desc
	failures    prometheus.Counter
}

func NewPromCollector(usecase trackingin.Usecase, log logger.Logger) *PromCollector {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &PromCollector{
		usecase: usecase,
		timeout: 5 * time.Second,
		log:     log,
		wornToday: prometheus.NewDesc(namespace+"_worn_today_seconds",
			"Time worn during the current tracking day", nil, nil),
		progress: prometheus.NewDesc(namespace+"_progress_percent",
			"Progress towards today's goal", nil, nil),
		score: prometheus.NewDesc(namespace+"_compliance_score",
			"Compliance score over the days before today", nil, nil),
		goal: prometheus.NewDesc(namespace+"_goal_hours",
			"Configured daily wearing goal", nil, nil),
		wearing: prometheus.NewDesc(namespace+"_wearing",
			"1 while a session is open", nil, nil),
		trackedDays: prometheus.NewDesc(namespace+"_tracked_days",
			"Number of tracking days with at least one segment", nil, nil),
		dayProgress: prometheus.NewDesc(namespace+"_day_progress_percent",
			"Percent of goal worn per recent tracking day", []string{"day"}, nil),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_failures_total",
			Help:      "Scrapes that could not derive a report",
		}),
	}
}

// Register adds the collector to reg, the default registerer when nil.
func (c *PromCollector) Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if err := reg.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			return err
		}
	}
	return nil
}

func (c *PromCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.wornToday
	ch <- c.progress
	ch <- c.score
	ch <- c.goal
	ch <- c.wearing
	ch <- c.trackedDays
	ch <- c.dayProgress
	c.failures.Describe(ch)
}

func (c *PromCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	report, err := c.usecase.Report(ctx, trackingdto.ReportInput{Days: recentDays})
	if err != nil {
		c.log.Errorf("metrics report: %v", err)
		c.failures.Inc()
		c.failures.Collect(ch)
		return
	}
	wearing := 0.0
	if report.IsWearing {
		wearing = 1
	}
	ch <- prometheus.MustNewConstMetric(c.wornToday, prometheus.GaugeValue, report.WornSeconds)
	ch <- prometheus.MustNewConstMetric(c.progress, prometheus.GaugeValue, report.Progress)
	ch <- prometheus.MustNewConstMetric(c.score, prometheus.GaugeValue, report.CurrentScore)
	ch <- prometheus.MustNewConstMetric(c.goal, prometheus.GaugeValue, report.GoalHours)
	ch <- prometheus.MustNewConstMetric(c.wearing, prometheus.GaugeValue, wearing)
	ch <- prometheus.MustNewConstMetric(c.trackedDays, prometheus.GaugeValue, float64(len(report.GroupedSessions)))
	for i, b := range report.GroupedSessions {
		if i == recentDays {
			break
		}
		ch <- prometheus.MustNewConstMetric(c.dayProgress, prometheus.GaugeValue, b.Total, b.Key)
	}
	c.failures.Collect(ch)
}

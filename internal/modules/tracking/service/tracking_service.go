package service

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"gonum.org/v1/gonum/stat"

	"wearlog/internal/modules/tracking/domain"
	"wearlog/internal/modules/tracking/dto"
	"wearlog/internal/platform/clock"
	"wearlog/internal/platform/locale"
	"wearlog/internal/platform/logger"
)

const defaultCacheSize = 32

// Snapshot is everything a report is derived from.
type Snapshot struct {
	Sessions   []domain.Session
	GoalHours  float64
	DayStartAt string
}

// TrackingService derives reports from snapshots. Bucket derivation is
// memoized by a content hash of the sessions, boundary, goal and, while a
// session is open, the current second.
type TrackingService struct {
	clock  clock.Clock
	locale locale.Locale
	cache  *lru.Cache[string, []domain.DayBucket]
	log    logger.Logger
}

func NewTrackingService(clk clock.Clock, loc locale.Locale, cacheSize int, log logger.Logger) (*TrackingService, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[string, []domain.DayBucket](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("new bucket cache: %w", err)
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &TrackingService{clock: clk, locale: loc, cache: cache, log: log}, nil
}

// Calendar resolves the configured day start. An unusable value falls back
// to midnight and is reported as a warning.
func (s *TrackingService) Calendar(dayStartAt string) (domain.Calendar, []string) {
	var warnings []string
	boundary, err := domain.ParseDayBoundary(dayStartAt)
	if err != nil {
		s.log.Warnf("day start falls back to midnight: %v", err)
		warnings = append(warnings, err.Error())
	}
	return domain.Calendar{Boundary: boundary, Label: s.locale.DayLabel}, warnings
}

// Buckets segments sessions and applies totals, reusing a cached result
// when nothing it depends on has changed.
func (s *TrackingService) Buckets(cal domain.Calendar, sessions []domain.Session, goalHours float64, now time.Time) ([]domain.DayBucket, error) {
	if err := domain.CheckGoal(goalHours); err != nil {
		return nil, err
	}
	key := cacheKey(cal.Boundary, sessions, goalHours, now)
	if buckets, ok := s.cache.Get(key); ok {
		return buckets, nil
	}
	buckets := domain.SegmentSessions(cal, sessions, now)
	if err := domain.ApplyTotals(cal, buckets, goalHours, now); err != nil {
		return nil, err
	}
	s.cache.Add(key, buckets)
	s.log.Debugw("buckets derived", map[string]any{"sessions": len(sessions), "days": len(buckets)})
	return buckets, nil
}

func (s *TrackingService) Report(snap Snapshot, days int) (dto.ReportOutput, error) {
	now := s.clock.Now()
	cal, warnings := s.Calendar(snap.DayStartAt)
	for _, err := range domain.ValidateSessions(snap.Sessions) {
		s.log.Warnf("skipping session: %v", err)
		warnings = append(warnings, err.Error())
	}

	buckets, err := s.Buckets(cal, snap.Sessions, snap.GoalHours, now)
	if err != nil {
		return dto.ReportOutput{}, err
	}

	openSince := openStart(snap.Sessions)
	worn := domain.WornTodaySeconds(cal, buckets, openSince != nil, openSince, now)
	proj, err := domain.Project(worn, snap.GoalHours, now)
	if err != nil {
		return dto.ReportOutput{}, err
	}

	window := days
	if window <= 0 {
		window = domain.DefaultWindow(buckets)
	}
	scorer := domain.Scorer{Calendar: cal, Buckets: buckets}
	progress := scorer.HistoricalProgress(now, window)

	out := dto.ReportOutput{
		Now:                now,
		Today:              cal.DayLabel(now),
		GoalHours:          snap.GoalHours,
		DayStartAt:         cal.Boundary.String(),
		GroupedSessions:    toBucketOutputs(buckets, now),
		WornSeconds:        worn,
		TotalTime:          domain.FormatClock(worn),
		FinishAt:           proj.FinishAt,
		GoalReached:        proj.Reached,
		Progress:           proj.Progress,
		CurrentScore:       scorer.ScoreFor(now),
		HistoricalScores:   scorer.HistoricalScores(now, window),
		HistoricalProgress: progress,
		Stats:              summarize(progress, buckets),
		IsWearing:          openSince != nil,
		OpenSince:          openSince,
		Warnings:           warnings,
	}
	if proj.Reached {
		out.EstEndTime = s.locale.Sprintf(locale.MsgGoalReached, domain.FormatHM(proj.Overrun))
	} else {
		out.EstEndTime = s.locale.Sprintf(locale.MsgEndsAt, proj.FinishAt.Format("15:04"))
	}
	return out, nil
}

// DayNotes renders the most recent days (all of them when days <= 0) for
// export.
func (s *TrackingService) DayNotes(snap Snapshot, days int) ([]domain.DayNote, error) {
	now := s.clock.Now()
	cal, _ := s.Calendar(snap.DayStartAt)
	buckets, err := s.Buckets(cal, snap.Sessions, snap.GoalHours, now)
	if err != nil {
		return nil, err
	}
	if days > 0 && days < len(buckets) {
		buckets = buckets[:days]
	}

	notes := make([]domain.DayNote, 0, len(buckets))
	for _, b := range buckets {
		note := domain.DayNote{
			Key:          b.Key,
			Date:         b.Date,
			GoalHours:    snap.GoalHours,
			Progress:     b.Total,
			IsPartialDay: b.IsPartialDay,
		}
		var worn time.Duration
		for _, seg := range b.Segments {
			d := seg.Duration(now)
			worn += d
			end := "…"
			if seg.End != nil {
				end = seg.End.Format("15:04")
			}
			note.Rows = append(note.Rows, domain.NoteRow{
				Start:    seg.Start.Format("15:04"),
				End:      end,
				Duration: domain.FormatClock(d.Seconds()),
			})
		}
		note.TotalTime = domain.FormatClock(worn.Seconds())
		notes = append(notes, note)
	}
	return notes, nil
}

func openStart(sessions []domain.Session) *time.Time {
	for i := len(sessions) - 1; i >= 0; i-- {
		if sessions[i].Open() {
			start := sessions[i].Start
			return &start
		}
	}
	return nil
}

func toBucketOutputs(buckets []domain.DayBucket, now time.Time) []dto.BucketOutput {
	out := make([]dto.BucketOutput, 0, len(buckets))
	for _, b := range buckets {
		segs := make([]dto.SegmentOutput, 0, len(b.Segments))
		for _, seg := range b.Segments {
			segs = append(segs, dto.SegmentOutput{Start: seg.Start, End: seg.End, Duration: seg.Duration(now)})
		}
		out = append(out, dto.BucketOutput{
			Key:          b.Key,
			Date:         b.Date,
			DayStart:     b.DayStart,
			Segments:     segs,
			Total:        b.Total,
			IsPartialDay: b.IsPartialDay,
		})
	}
	return out
}

func summarize(progress []float64, buckets []domain.DayBucket) dto.Stats {
	st := dto.Stats{Days: len(progress)}
	for _, b := range buckets {
		if b.Total > st.BestTotal {
			st.BestTotal = b.Total
			st.BestDay = b.Date
		}
	}
	if len(progress) == 0 {
		return st
	}
	for _, p := range progress {
		if p >= 100 {
			st.DaysGoalMet++
		}
	}
	if len(progress) == 1 {
		st.MeanProgress = progress[0]
	} else {
		st.MeanProgress, st.StdDevProgress = stat.MeanStdDev(progress, nil)
	}
	sorted := append([]float64(nil), progress...)
	sort.Float64s(sorted)
	st.MedianProgress = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return st
}

func cacheKey(boundary domain.DayBoundary, sessions []domain.Session, goalHours float64, now time.Time) string {
	h := sha256.New()
	var buf [8]byte
	put := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	put(int64(boundary.Hour))
	put(int64(boundary.Minute))
	put(int64(math.Float64bits(goalHours)))
	open := false
	for _, s := range sessions {
		put(s.Start.Unix())
		if s.End == nil {
			open = true
			put(-1)
			continue
		}
		put(s.End.Unix())
	}
	if open {
		put(now.Unix())
	}
	// day labels and segment ends depend on the zone of now
	_, offset := now.Zone()
	put(int64(offset))
	return hex.EncodeToString(h.Sum(nil))
}

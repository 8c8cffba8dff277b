package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"NanoTracker/internal/analyzer"
	"NanoTracker/internal/calculator"
	"NanoTracker/internal/chart"
	"NanoTracker/internal/collector"
	"NanoTracker/internal/model"
	"NanoTracker/internal/notifier"
	"NanoTracker/internal/recorder"
	"NanoTracker/internal/tracker"
)

// Scheduler manages the tick cron tasks and dispatches inbound commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Store     *tracker.Store
	Composer  *chart.Composer
	Notifier  *notifier.TelegramNotifier
	Recorder  recorder.Recorder
	Ctx       context.Context

	ChartPath string

	// Serializes tick bodies so the frequent and daily ticks never interleave.
	tickMu sync.Mutex
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, store *tracker.Store,
	composer *chart.Composer, tn *notifier.TelegramNotifier, rec recorder.Recorder, chartPath string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Store:     store,
		Composer:  composer,
		Notifier:  tn,
		Recorder:  rec,
		Ctx:       ctx,
		ChartPath: chartPath,
	}
}

// RegisterAll registers the frequent and daily tick tasks.
func (s *Scheduler) RegisterAll(frequentCron, dailyCron string) error {
	if _, err := s.Cron.AddFunc(frequentCron, s.frequentTick); err != nil {
		return fmt.Errorf("register frequent tick: %w", err)
	}
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTick); err != nil {
		return fmt.Errorf("register daily tick: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running tick to finish, so
// the final state dump sees no in-flight mutation.
func (s *Scheduler) Stop() {
	ctx := s.Cron.Stop()
	<-ctx.Done()
	s.tickMu.Lock()
	s.tickMu.Unlock()
	log.Println("[INFO] scheduler stopped")
}

// RunTickNow executes a frequent tick immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunTickNow() {
	s.frequentTick()
}

func (s *Scheduler) frequentTick() {
	log.Println("[INFO] running frequent tick")
	s.runTick(false)
}

// dailyTick records the day's definitive value for every user and raises a
// single aggregate alert for users behind pace.
func (s *Scheduler) dailyTick() {
	log.Println("[INFO] running daily tick")
	result := s.runTick(true)
	if len(result.Behind) > 0 {
		s.trySend(notifier.FormatPaceAlert(result.Behind))
	}
}

func (s *Scheduler) runTick(forced bool) collector.TickResult {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	result := s.Collector.RunTick(forced)
	for _, ing := range result.Ingests {
		if !ing.Appended {
			continue
		}
		if err := s.Recorder.RecordSample(&recorder.SampleEvent{
			User: ing.User, At: result.At, Words: ing.Words, Forced: forced,
		}); err != nil {
			log.Printf("[ERROR] record sample: %v", err)
		}
	}
	for _, p := range result.Behind {
		if err := s.Recorder.RecordPaceAlert(&recorder.PaceAlertEvent{
			User: p.User, At: result.At, NeededPerDay: p.NeededPerDay,
		}); err != nil {
			log.Printf("[ERROR] record pace alert: %v", err)
		}
	}
	return result
}

// HandleCommand processes one inbound command line and returns the reply.
// Accepts both "/nano stats simon" and "stats simon" forms.
func (s *Scheduler) HandleCommand(command string) notifier.Reply {
	fields := strings.Fields(command)
	if len(fields) > 0 && (fields[0] == "/nano" || fields[0] == "nano") {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return notifier.Reply{Text: notifier.HelpText()}
	}

	verb := strings.TrimPrefix(fields[0], "/")
	args := fields[1:]

	switch verb {
	case "stats":
		return s.statsCommand(args)
	case "chart", "graph":
		return s.chartCommand(args)
	case "compare":
		return s.compareCommand(args)
	default:
		return notifier.Reply{Text: notifier.HelpText()}
	}
}

func (s *Scheduler) statsCommand(args []string) notifier.Reply {
	if len(args) != 1 {
		return notifier.Reply{Text: "No user given!\nUse: /nano stats (username)"}
	}
	user := args[0]
	record, err := s.Collector.Fetcher.FetchStats(user)
	if err != nil {
		log.Printf("[WARN] stats command: %v", err)
		return notifier.Reply{Text: fmt.Sprintf("No data for %s", user)}
	}
	return notifier.Reply{Text: notifier.FormatStats(user, record)}
}

func (s *Scheduler) chartCommand(args []string) notifier.Reply {
	users := args
	if len(users) == 0 {
		users = s.Collector.Users
	}

	state := s.Store.All()
	extras := s.adHocSeries(state, users)

	series, err := s.Composer.Compose(state, users, extras, time.Now().UTC())
	if err != nil {
		return notifier.Reply{Text: fmt.Sprintf("Error retrieving data: %v", err)}
	}
	if err := s.Composer.Render(s.ChartPath, series); err != nil {
		log.Printf("[ERROR] render chart: %v", err)
		return notifier.Reply{Text: fmt.Sprintf("Error drawing chart: %v", err)}
	}
	return notifier.Reply{
		PhotoPath: s.ChartPath,
		Caption:   "Stats for " + strings.Join(users, ", "),
	}
}

// adHocSeries covers requested users the tracker hasn't seen: their per-day
// array is fetched fresh and decoded into a day-indexed curve. The first such
// record's goal array, cut to the days elapsed so far, comes along as a
// personal goal curve.
func (s *Scheduler) adHocSeries(state model.TrackerState, users []string) []model.Series {
	var extras []model.Series
	goalAdded := false

	for _, user := range users {
		if len(state[user]) > 0 {
			continue
		}
		record, err := s.Collector.Fetcher.FetchStats(user)
		if err != nil {
			log.Printf("[WARN] chart: fetch %s: %v", user, err)
			continue
		}
		raw, ok := record.Text(model.RawKeyChart)
		if !ok {
			log.Printf("[WARN] chart: no per-day data for %s", user)
			continue
		}
		days, err := calculator.DecodePointSeries(raw)
		if err != nil {
			log.Printf("[WARN] chart: decode %s: %v", user, err)
			continue
		}
		extras = append(extras, s.Composer.DayMapSeries(user, days))

		if goal, ok := record.Text(model.RawKeyWordGoal); ok && !goalAdded {
			elapsed := int(time.Since(s.Store.PeriodStart()).Hours() / 24)
			if goalDays, err := calculator.DecodePointSeriesN(goal, elapsed); err == nil {
				extras = append(extras, s.Composer.DayMapSeries(user+" goal", goalDays))
				goalAdded = true
			} else {
				log.Printf("[WARN] chart: decode goal for %s: %v", user, err)
			}
		}
	}
	return extras
}

func (s *Scheduler) compareCommand(args []string) notifier.Reply {
	users := args
	if len(users) == 0 {
		users = s.Collector.Users
	}
	cmp := analyzer.Compare(s.Collector.Fetcher.FetchStats, users)
	if cmp.Empty() {
		return notifier.Reply{Text: "No data for any requested user"}
	}
	return notifier.Reply{Text: notifier.FormatComparison(cmp)}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}

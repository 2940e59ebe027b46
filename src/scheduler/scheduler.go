// Package scheduler refreshes the live widget tables on a cron schedule and
// hands them to the websocket hub.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"widget-backend/src/helpers"
	"widget-backend/src/interfaces"
	"widget-backend/src/logger"
	"widget-backend/src/models"
	"widget-backend/src/widgets"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the refresh task.
type Scheduler struct {
	Cron            *cron.Cron
	Service         interfaces.IWidgetService
	Exchanger       interfaces.IDataExchanger
	Markets         interfaces.IMarketClock
	Errors          *helpers.ErrorHandler
	Logger          *logger.Logger
	Widgets         []string
	MarketHoursOnly bool
	Ctx             context.Context
	Now             func() time.Time
}

// NewScheduler creates a Scheduler for the widgets listed in cfg.Live.
// Schedules accept a leading seconds field and descriptors such as "@every 5m".
func NewScheduler(ctx context.Context, cfg *models.MConfig, svc interfaces.IWidgetService, ex interfaces.IDataExchanger, markets interfaces.IMarketClock, log *logger.Logger) *Scheduler {
	return &Scheduler{
		Cron:            cron.New(cron.WithSeconds()),
		Service:         svc,
		Exchanger:       ex,
		Markets:         markets,
		Errors:          helpers.NewErrorHandler(log),
		Logger:          log,
		Widgets:         append([]string(nil), cfg.Live.Widgets...),
		MarketHoursOnly: cfg.Live.MarketHoursOnly,
		Ctx:             ctx,
		Now:             time.Now,
	}
}

// Register adds the refresh task under spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.RefreshAll); err != nil {
		return fmt.Errorf("register refresh task %q: %w", spec, err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("Scheduler started for %d widgets", len(s.Widgets))
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Info("Scheduler stopped")
}

// RefreshAll rebuilds every live widget once. A failing widget is logged and
// counted; the others still refresh. Errors.ErrorCount reports the failures
// of the latest round.
func (s *Scheduler) RefreshAll() {
	s.Errors.ResetErrorCount()
	defer func() {
		if n := s.Errors.ErrorCount(); n > 0 {
			s.Logger.Warning("Refresh round finished with %d of %d widgets failing", n, len(s.Widgets))
		}
	}()

	for _, id := range s.Widgets {
		if s.Ctx.Err() != nil {
			return
		}
		if s.skip(id) {
			s.Logger.Debug("Markets closed, skipping %s", id)
			continue
		}

		rows, err := s.Service.Refresh(s.Ctx, id)
		if err != nil {
			s.Errors.Handle(err, "refresh "+id)
			continue
		}

		s.Exchanger.Broadcast(&models.MLiveUpdate{
			Type:      "UPDATE",
			Widget:    id,
			Rows:      rows,
			Timestamp: s.Now().Unix(),
		})
	}
}

func (s *Scheduler) skip(id string) bool {
	return id == widgets.OSSCompanyStats && s.MarketHoursOnly && s.Markets != nil && !s.Markets.AnyMarketOpen()
}

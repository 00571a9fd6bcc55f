// Package monitor periodically scans the coming weeks for device types
// committed beyond their workable fleet and pushes alerts through the
// notification worker pool.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/sirupsen/logrus"

	"fleet-scheduler-backend/config"
	"fleet-scheduler-backend/internal/notification"
	"fleet-scheduler-backend/internal/store"
	"fleet-scheduler-backend/internal/week"
)

// alertKey identifies one shortage cell across scans.
type alertKey struct {
	deviceTypeID int64
	weekStart    string
}

// Service owns the scan loop and the dispatch bookkeeping.
type Service struct {
	cfg        *config.Config
	store      store.Store
	workerPool *notification.WorkerPool

	mu sync.Mutex
	// reported holds the deficit already alerted per shortage cell, so
	// an unchanged shortage is not re-sent every interval.
	reported map[alertKey]int
}

// NewService creates and initializes a new monitor service.
func NewService(cfg *config.Config, st store.Store) *Service {
	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	workerPool := notification.NewWorkerPool(cfg.WorkerPool.Size, st.DB(), &webpushOptions)

	return &Service{
		cfg:        cfg,
		store:      st,
		workerPool: workerPool,
		reported:   make(map[alertKey]int),
	}
}

// Run starts the scan loop.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Monitor.Enabled {
		logrus.Info("Shortage monitor is disabled. Not starting.")
		return
	}
	logrus.Info("Starting shortage monitor...")

	// Start the worker pool
	s.workerPool.Start(ctx)

	s.ScanOnce(ctx)

	timer := time.NewTimer(s.cfg.Monitor.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Shortage monitor shutting down.")
			return
		case <-timer.C:
			s.ScanOnce(ctx)
			timer.Reset(s.cfg.Monitor.Interval)
		}
	}
}

// ScanOnce performs a single scan over the configured horizon and
// dispatches an alert for every new or deepened shortage.
func (s *Service) ScanOnce(ctx context.Context) {
	from := week.MondayOf(time.Now().UTC())
	to := from.AddDate(0, 0, 7*(s.cfg.Monitor.HorizonWeeks-1))

	rows, err := s.store.UsageByWeek(ctx, from, to, 0)
	if err != nil {
		logrus.WithError(err).Error("Shortage scan failed")
		return
	}

	alerts := s.collect(rows)
	if len(alerts) == 0 {
		return
	}
	logrus.Infof("Dispatching %d shortage alerts", len(alerts))
	for _, alert := range alerts {
		s.workerPool.Dispatch(alert)
	}
}

// collect diffs the scan against what was already reported. A cell
// alerts when it first goes short and again whenever its deficit grows.
// Cells back under capacity are forgotten, so a later relapse alerts
// once more.
func (s *Service) collect(rows []store.UsageRow) []notification.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := make(map[alertKey]int, len(rows))
	var alerts []notification.Alert
	for _, r := range rows {
		if r.Severity() != store.SeverityShortage {
			continue
		}
		key := alertKey{
			deviceTypeID: r.DeviceTypeID,
			weekStart:    r.WeekStart.UTC().Format(week.DateLayout),
		}
		deficit := r.Deficit()
		current[key] = deficit
		if prev, ok := s.reported[key]; ok && prev >= deficit {
			continue
		}
		alerts = append(alerts, notification.Alert{
			DeviceTypeID:   r.DeviceTypeID,
			DeviceTypeName: r.DeviceTypeName,
			WeekStart:      r.WeekStart,
			Deficit:        deficit,
		})
	}
	s.reported = current
	return alerts
}

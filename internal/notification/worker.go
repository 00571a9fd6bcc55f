package notification

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet-scheduler-backend/internal/model"
	"fleet-scheduler-backend/internal/week"
)

// Alert describes one detected fleet shortage to fan out to subscribers
// of the affected device type.
type Alert struct {
	DeviceTypeID   int64
	DeviceTypeName string
	WeekStart      time.Time
	Deficit        int
}

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers for sending notifications.
type WorkerPool struct {
	size    int
	jobs    chan Alert
	db      *gorm.DB
	webpush *webpush.Options
	sender  NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan Alert, size), // Buffered channel
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{}, // Use the real sender by default
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	logrus.Infof("Notification worker %d started", id)
	for {
		select {
		case alert := <-wp.jobs:
			logrus.Infof("Worker %d processing shortage alert for device type %d", id, alert.DeviceTypeID)
			wp.sendAlert(ctx, alert)
		case <-ctx.Done():
			logrus.Infof("Worker %d shutting down", id)
			return
		}
	}
}

// Dispatch sends an alert to the worker pool.
func (wp *WorkerPool) Dispatch(alert Alert) {
	wp.jobs <- alert
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Alert {
	return wp.jobs
}

// sendAlert fetches the subscriptions watching the alert's device type
// and pushes the shortage message to each of them.
func (wp *WorkerPool) sendAlert(ctx context.Context, alert Alert) {
	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN subscription_device_type_mapping sdtm ON sdtm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("sdtm.device_type_id = ?", alert.DeviceTypeID).
		Find(&subscriptions).Error
	if err != nil {
		logrus.WithError(err).Errorf("Error fetching subscriptions for device type %d", alert.DeviceTypeID)
		return
	}

	if len(subscriptions) == 0 {
		return
	}

	logrus.Infof("Sending %d shortage alerts for device type %d", len(subscriptions), alert.DeviceTypeID)

	label := alert.DeviceTypeName
	if label == "" {
		var dt model.DeviceType
		if err := wp.db.WithContext(ctx).
			Select("name").
			First(&dt, alert.DeviceTypeID).Error; err != nil {
			logrus.WithError(err).Errorf("Error fetching device type %d", alert.DeviceTypeID)
			label = fmt.Sprintf("device type %d", alert.DeviceTypeID)
		} else {
			label = dt.Name
		}
	}

	message := fmt.Sprintf("%s: %d device(s) short in the week of %s",
		label, alert.Deficit, alert.WeekStart.UTC().Format(week.DateLayout))
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	// Manually construct the webpush.Subscription object
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		logrus.WithError(err).Errorf("Error sending notification to %s", sub.Endpoint)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		logrus.Infof("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			logrus.WithError(err).Errorf("Failed to delete expired subscription %s", sub.Endpoint)
		}
	}
}

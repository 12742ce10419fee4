package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"farmstead/internal/model"
	"farmstead/internal/repository"
)

// severeWeatherChecker is satisfied by WeatherService; stubbed in tests.
type severeWeatherChecker interface {
	SevereWeatherExpected(ctx context.Context) (bool, string, error)
}

// NotificationService owns the in-app notification feed and the alert
// sweeps (harvest due, low stock, severe weather). Sweeps are idempotent:
// each record carries a sent flag that is set together with the first
// notification written for it.
type NotificationService struct {
	notifications *repository.NotificationRepository
	alerts        *repository.AlertRepository
	users         *repository.UserRepository
	weather       severeWeatherChecker

	lowStockThreshold float64
	harvestWindow     time.Duration
	now               func() time.Time
}

func NewNotificationService(
	notifications *repository.NotificationRepository,
	alerts *repository.AlertRepository,
	users *repository.UserRepository,
	weather severeWeatherChecker,
	lowStockThreshold float64,
	harvestWindow time.Duration,
) *NotificationService {
	return &NotificationService{
		notifications:     notifications,
		alerts:            alerts,
		users:             users,
		weather:           weather,
		lowStockThreshold: lowStockThreshold,
		harvestWindow:     harvestWindow,
		now:               time.Now,
	}
}

func (s *NotificationService) List(ctx context.Context, userID string) ([]model.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id string, userID string) error {
	return s.notifications.MarkRead(ctx, id, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.notifications.MarkAllRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, id string, userID string) error {
	return s.notifications.Delete(ctx, id, userID)
}

// RunChecksForUser performs all sweeps on behalf of one user and returns the
// number of notifications written.
func (s *NotificationService) RunChecksForUser(ctx context.Context, userID string) (int, error) {
	created := 0

	n, err := s.checkHarvestDue(ctx, userID)
	if err != nil {
		return created, err
	}
	created += n

	n, err = s.checkLowStock(ctx, userID)
	if err != nil {
		return created, err
	}
	created += n

	n, err = s.checkWeather(ctx, userID)
	if err != nil {
		// Weather is a third-party dependency; its failure must not sink the
		// local sweeps that already ran.
		slog.Warn("weather check failed", "error", err)
		return created, nil
	}
	created += n

	return created, nil
}

// RunChecksForAll sweeps on behalf of every registered user. Used by the
// background ticker.
func (s *NotificationService) RunChecksForAll(ctx context.Context) (int, error) {
	userIDs, err := s.users.ListIDs(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, userID := range userIDs {
		n, err := s.RunChecksForUser(ctx, userID)
		total += n
		if err != nil {
			slog.Warn("notification sweep failed for user", "user_id", userID, "error", err)
		}
	}
	return total, nil
}

// StartTicker runs the sweeps on a fixed interval until ctx is cancelled.
func (s *NotificationService) StartTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.RunChecksForAll(ctx)
			if err != nil {
				slog.Error("scheduled notification sweep failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("scheduled notification sweep", "created", n)
			}
		}
	}
}

func (s *NotificationService) checkHarvestDue(ctx context.Context, userID string) (int, error) {
	crops, err := s.alerts.DueHarvestCrops(ctx, s.now().UTC(), s.harvestWindow)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, crop := range crops {
		location := crop.Location
		if location == "" {
			location = "unknown"
		}
		message := fmt.Sprintf("Your %s in field %s is ready for harvest.", crop.CropType, location)
		if err := s.create(ctx, userID, model.NotifyCrop, message, "/crops/"+crop.ID); err != nil {
			return created, err
		}
		if err := s.alerts.MarkHarvestNotified(ctx, crop.ID); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (s *NotificationService) checkLowStock(ctx context.Context, userID string) (int, error) {
	items, err := s.alerts.LowStockItems(ctx, s.lowStockThreshold)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, item := range items {
		unit := item.Unit
		if unit == "" {
			unit = "units"
		}
		message := fmt.Sprintf("Low stock alert: %s (%g %s remaining)", item.Name, item.Quantity, unit)
		if err := s.create(ctx, userID, model.NotifyInventory, message, "/inventory"); err != nil {
			return created, err
		}
		if err := s.alerts.MarkLowStockNotified(ctx, item.ID); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (s *NotificationService) checkWeather(ctx context.Context, userID string) (int, error) {
	if s.weather == nil {
		return 0, nil
	}

	severe, condition, err := s.weather.SevereWeatherExpected(ctx)
	if err != nil || !severe {
		return 0, err
	}

	message := fmt.Sprintf("Weather alert: %s forecasted for your area. Take necessary precautions.", condition)
	if err := s.create(ctx, userID, model.NotifyWeather, message, "/weather"); err != nil {
		return 0, err
	}
	return 1, nil
}

func (s *NotificationService) create(ctx context.Context, userID string, notifyType string, message string, link string) error {
	return s.notifications.Create(ctx, model.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      notifyType,
		Message:   message,
		Read:      false,
		Link:      link,
		CreatedAt: s.now().UTC(),
	})
}

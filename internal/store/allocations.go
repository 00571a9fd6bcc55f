package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"fleet-scheduler-backend/internal/model"
	"fleet-scheduler-backend/internal/week"
)

func deploymentExists(tx *gorm.DB, id int64) error {
	var n int64
	if err := tx.Model(&model.Deployment{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("deployment %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *gormStore) ListAllocations(ctx context.Context, deploymentID int64) ([]model.WeeklyAllocation, error) {
	db := s.db.WithContext(ctx)
	if err := deploymentExists(db, deploymentID); err != nil {
		return nil, err
	}
	var allocs []model.WeeklyAllocation
	err := db.Where("deployment_id = ?", deploymentID).Order("week_start").Find(&allocs).Error
	if err != nil {
		return nil, err
	}
	return allocs, nil
}

func (s *gormStore) SetAllocation(ctx context.Context, id int64, count int) (*model.WeeklyAllocation, error) {
	if count < 0 {
		return nil, invalidf("device_count", "must not be negative")
	}
	var alloc model.WeeklyAllocation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&alloc, id).Error; err != nil {
			return translate(err)
		}
		return translate(tx.Model(&alloc).Update("device_count", count).Error)
	})
	if err != nil {
		return nil, err
	}
	return &alloc, nil
}

func (s *gormStore) BulkSetAllocationsFrom(ctx context.Context, deploymentID int64, count int, from time.Time) (int64, error) {
	if count < 0 {
		return 0, invalidf("device_count", "must not be negative")
	}
	if from.IsZero() {
		return 0, invalidf("from_week", "must be set")
	}
	var changed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deploymentExists(tx, deploymentID); err != nil {
			return err
		}
		res := tx.Model(&model.WeeklyAllocation{}).
			Where("deployment_id = ? AND week_start >= ?", deploymentID, week.Truncate(from)).
			Update("device_count", count)
		if res.Error != nil {
			return translate(res.Error)
		}
		changed = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

// RegenerateAllocations throws away whatever week-by-week overrides the
// deployment had and reseeds the grid from the given range. Weeks that
// fall outside the new range disappear with everything else.
func (s *gormStore) RegenerateAllocations(ctx context.Context, deploymentID int64, start, end time.Time, defaultCount int) ([]model.WeeklyAllocation, error) {
	if start.IsZero() {
		return nil, invalidf("start_date", "must be set")
	}
	if end.IsZero() {
		return nil, invalidf("end_date", "must be set")
	}
	start = week.Truncate(start)
	end = week.Truncate(end)
	if end.Before(start) {
		return nil, invalidf("end_date", "must not precede start_date")
	}
	if defaultCount <= 0 {
		return nil, invalidf("default_device_count", "must be positive")
	}
	var allocs []model.WeeklyAllocation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deploymentExists(tx, deploymentID); err != nil {
			return err
		}
		if err := tx.Where("deployment_id = ?", deploymentID).Delete(&model.WeeklyAllocation{}).Error; err != nil {
			return err
		}
		allocs = seedAllocations(deploymentID, start, end, defaultCount)
		return translate(tx.Create(&allocs).Error)
	})
	if err != nil {
		return nil, err
	}
	return allocs, nil
}

package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"fleet-scheduler-backend/internal/model"
)

func validateFleetCounts(total, repair int) error {
	if total < 0 {
		return invalidf("total_fleet", "must not be negative")
	}
	if repair < 0 {
		return invalidf("under_repair", "must not be negative")
	}
	if repair > total {
		return invalidf("under_repair", "cannot exceed total_fleet (%d > %d)", repair, total)
	}
	return nil
}

func (s *gormStore) ListDeviceTypes(ctx context.Context) ([]model.DeviceType, error) {
	var types []model.DeviceType
	if err := s.db.WithContext(ctx).Order("name").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (s *gormStore) GetDeviceType(ctx context.Context, id int64) (*model.DeviceType, error) {
	var dt model.DeviceType
	if err := s.db.WithContext(ctx).First(&dt, id).Error; err != nil {
		return nil, translate(err)
	}
	return &dt, nil
}

func (s *gormStore) CreateDeviceType(ctx context.Context, dt *model.DeviceType) error {
	dt.Name = strings.TrimSpace(dt.Name)
	if dt.Name == "" {
		return invalidf("name", "must not be empty")
	}
	if err := validateFleetCounts(dt.TotalFleet, dt.UnderRepair); err != nil {
		return err
	}
	if dt.Color == "" {
		dt.Color = model.DefaultColor
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.DeviceType{}).Where("name = ?", dt.Name).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("device type %q already exists: %w", dt.Name, ErrConflict)
		}
		return translate(tx.Create(dt).Error)
	})
}

func (s *gormStore) UpdateDeviceType(ctx context.Context, id int64, patch DeviceTypePatch) (*model.DeviceType, error) {
	var dt model.DeviceType
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&dt, id).Error; err != nil {
			return translate(err)
		}
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return invalidf("name", "must not be empty")
			}
			dt.Name = name
		}
		if patch.TotalFleet != nil {
			dt.TotalFleet = *patch.TotalFleet
		}
		if patch.UnderRepair != nil {
			dt.UnderRepair = *patch.UnderRepair
		}
		if patch.Color != nil {
			dt.Color = *patch.Color
		}
		if err := validateFleetCounts(dt.TotalFleet, dt.UnderRepair); err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&model.DeviceType{}).Where("name = ? AND id <> ?", dt.Name, id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("device type %q already exists: %w", dt.Name, ErrConflict)
		}
		return translate(tx.Save(&dt).Error)
	})
	if err != nil {
		return nil, err
	}
	return &dt, nil
}

func (s *gormStore) DeleteDeviceType(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Deployment{}).Where("device_type_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%d deployments still use device type %d: %w", n, id, ErrConflict)
		}
		res := tx.Delete(&model.DeviceType{}, id)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"fleet-scheduler-backend/internal/model"
	"fleet-scheduler-backend/internal/week"
)

func (s *gormStore) ListDeployments(ctx context.Context, f DeploymentFilter) ([]DeploymentRow, error) {
	q := s.db.WithContext(ctx).Model(&model.Deployment{}).
		Select(`deployments.id, deployments.project_id, deployments.venue, deployments.location,
			deployments.start_date, deployments.end_date, deployments.device_type_id,
			deployments.default_device_count, deployments.app_type, deployments.notes,
			projects.name AS project_name, projects.name_en AS project_name_en,
			projects.status AS project_status, projects.client AS client,
			device_types.name AS device_type_name, device_types.color AS device_type_color`).
		Joins("JOIN projects ON projects.id = deployments.project_id").
		Joins("JOIN device_types ON device_types.id = deployments.device_type_id")
	if !f.IncludeArchived {
		q = q.Where("projects.archived = ?", false)
	}
	if f.ProjectID > 0 {
		q = q.Where("deployments.project_id = ?", f.ProjectID)
	}
	if f.DeviceTypeID > 0 {
		q = q.Where("deployments.device_type_id = ?", f.DeviceTypeID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("projects.status IN ?", f.Statuses)
	}
	if needle := searchNeedle(f.Query); needle != "" {
		q = q.Where(
			"LOWER(deployments.venue) LIKE ? OR LOWER(deployments.location) LIKE ? OR LOWER(projects.name) LIKE ? OR LOWER(projects.name_en) LIKE ?",
			needle, needle, needle, needle,
		)
	}
	if !f.From.IsZero() {
		q = q.Where("deployments.end_date >= ?", week.Truncate(f.From))
	}
	if !f.To.IsZero() {
		q = q.Where("deployments.start_date <= ?", week.Truncate(f.To))
	}
	var rows []DeploymentRow
	if err := q.Order("deployments.start_date, deployments.id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *gormStore) GetDeployment(ctx context.Context, id int64) (*model.Deployment, error) {
	var d model.Deployment
	err := s.db.WithContext(ctx).
		Preload("Allocations", func(db *gorm.DB) *gorm.DB { return db.Order("weekly_allocations.week_start") }).
		First(&d, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (s *gormStore) CreateDeployment(ctx context.Context, d *model.Deployment) error {
	d.Venue = strings.TrimSpace(d.Venue)
	if d.Venue == "" {
		return invalidf("venue", "must not be empty")
	}
	if d.StartDate.IsZero() {
		return invalidf("start_date", "must be set")
	}
	if d.EndDate.IsZero() {
		return invalidf("end_date", "must be set")
	}
	d.StartDate = week.Truncate(d.StartDate)
	d.EndDate = week.Truncate(d.EndDate)
	if d.EndDate.Before(d.StartDate) {
		return invalidf("end_date", "must not precede start_date")
	}
	if d.DefaultDeviceCount <= 0 {
		return invalidf("default_device_count", "must be positive")
	}
	if !model.ValidAppType(d.AppType) {
		return invalidf("app_type", "unknown app type %q", d.AppType)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Project{}).Where("id = ?", d.ProjectID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("project %d: %w", d.ProjectID, ErrNotFound)
		}
		if err := tx.Model(&model.DeviceType{}).Where("id = ?", d.DeviceTypeID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return invalidf("device_type_id", "device type %d does not exist", d.DeviceTypeID)
		}
		if err := tx.Create(d).Error; err != nil {
			return translate(err)
		}
		// End >= start guarantees at least one Monday, so the seed is
		// never empty.
		allocs := seedAllocations(d.ID, d.StartDate, d.EndDate, d.DefaultDeviceCount)
		if err := tx.Create(&allocs).Error; err != nil {
			return translate(err)
		}
		d.Allocations = allocs
		return nil
	})
}

func seedAllocations(deploymentID int64, start, end time.Time, count int) []model.WeeklyAllocation {
	mondays := week.Mondays(start, end)
	allocs := make([]model.WeeklyAllocation, 0, len(mondays))
	for _, monday := range mondays {
		allocs = append(allocs, model.WeeklyAllocation{
			DeploymentID: deploymentID,
			WeekStart:    monday,
			DeviceCount:  count,
		})
	}
	return allocs
}

func (s *gormStore) UpdateDeployment(ctx context.Context, id int64, patch DeploymentPatch) (*model.Deployment, error) {
	var d model.Deployment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&d, id).Error; err != nil {
			return translate(err)
		}
		if patch.Venue != nil {
			venue := strings.TrimSpace(*patch.Venue)
			if venue == "" {
				return invalidf("venue", "must not be empty")
			}
			d.Venue = venue
		}
		if patch.Location != nil {
			d.Location = *patch.Location
		}
		if patch.StartDate != nil {
			d.StartDate = week.Truncate(*patch.StartDate)
		}
		if patch.EndDate != nil {
			d.EndDate = week.Truncate(*patch.EndDate)
		}
		if d.EndDate.Before(d.StartDate) {
			return invalidf("end_date", "must not precede start_date")
		}
		if patch.DeviceTypeID != nil {
			var n int64
			if err := tx.Model(&model.DeviceType{}).Where("id = ?", *patch.DeviceTypeID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return invalidf("device_type_id", "device type %d does not exist", *patch.DeviceTypeID)
			}
			d.DeviceTypeID = *patch.DeviceTypeID
		}
		if patch.DefaultDeviceCount != nil {
			if *patch.DefaultDeviceCount <= 0 {
				return invalidf("default_device_count", "must be positive")
			}
			d.DefaultDeviceCount = *patch.DefaultDeviceCount
		}
		if patch.AppType != nil {
			if !model.ValidAppType(*patch.AppType) {
				return invalidf("app_type", "unknown app type %q", *patch.AppType)
			}
			d.AppType = *patch.AppType
		}
		if patch.Notes != nil {
			d.Notes = *patch.Notes
		}
		// The deployment row changes, the weekly allocations do not.
		// A moved date range only takes effect on the allocation grid
		// when the operator regenerates it.
		return translate(tx.Save(&d).Error)
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *gormStore) DeleteDeployment(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deployment_id = ?", id).Delete(&model.WeeklyAllocation{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Deployment{}, id)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

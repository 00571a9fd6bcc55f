package store

import (
	"context"
	"time"

	"fleet-scheduler-backend/internal/model"
	"fleet-scheduler-backend/internal/week"
)

// UsageByWeek sums the allocated devices per (week, device type) over the
// inclusive window and derives availability from the fleet counts. Weeks
// with no allocations produce no row. Archived projects still tie up
// devices, so their allocations count like everyone else's.
func (s *gormStore) UsageByWeek(ctx context.Context, from, to time.Time, deviceTypeID int64) ([]UsageRow, error) {
	from = week.Truncate(from)
	to = week.Truncate(to)
	q := s.db.WithContext(ctx).Model(&model.WeeklyAllocation{}).
		Select(`weekly_allocations.week_start,
			device_types.id AS device_type_id, device_types.name AS device_type_name,
			device_types.total_fleet, device_types.under_repair,
			SUM(weekly_allocations.device_count) AS total_in_use`).
		Joins("JOIN deployments ON deployments.id = weekly_allocations.deployment_id").
		Joins("JOIN device_types ON device_types.id = deployments.device_type_id").
		Where("weekly_allocations.week_start BETWEEN ? AND ?", from, to).
		Group("weekly_allocations.week_start, device_types.id, device_types.name, device_types.total_fleet, device_types.under_repair").
		Order("weekly_allocations.week_start, device_types.name")
	if deviceTypeID > 0 {
		q = q.Where("device_types.id = ?", deviceTypeID)
	}
	var rows []UsageRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].WeekStart = week.Truncate(rows[i].WeekStart)
		rows[i].Available = rows[i].TotalFleet - rows[i].UnderRepair - rows[i].TotalInUse
	}
	return rows, nil
}

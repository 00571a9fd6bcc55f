package model

import "time"

// WeeklyAllocation is the actual unit commitment of one deployment for one
// calendar week. WeekStart is always the Monday of that week, at midnight UTC;
// the composite unique index keeps one row per (deployment, week).
type WeeklyAllocation struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	DeploymentID int64     `gorm:"uniqueIndex:idx_deployment_week;not null" json:"deployment_id"`
	WeekStart    time.Time `gorm:"uniqueIndex:idx_deployment_week;not null" json:"-"`
	DeviceCount  int       `gorm:"not null;default:0;check:chk_allocation_count,device_count >= 0" json:"device_count"`
	CreatedAt    time.Time `gorm:"not null" json:"-"`
	UpdatedAt    time.Time `gorm:"not null" json:"-"`

	// Associations
	Deployment Deployment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

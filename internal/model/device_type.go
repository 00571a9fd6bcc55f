package model

import "time"

// DefaultColor is assigned to device types created without an explicit display color.
const DefaultColor = "#4C78A8"

// DeviceType is a category of rentable hardware unit (audio guide model, tablet, ...).
// TotalFleet and UnderRepair together define the deployable capacity of the pool:
// capacity = total_fleet - under_repair.
type DeviceType struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:128;not null" json:"name"`
	TotalFleet  int       `gorm:"not null;default:0;check:chk_device_type_counts,total_fleet >= 0 AND under_repair >= 0 AND under_repair <= total_fleet" json:"total_fleet"`
	UnderRepair int       `gorm:"not null;default:0" json:"under_repair"`
	Color       string    `gorm:"size:16;not null;default:'#4C78A8'" json:"color"`
	CreatedAt   time.Time `gorm:"not null" json:"-"`
	UpdatedAt   time.Time `gorm:"not null" json:"-"`

	// Associations
	Deployments []Deployment `gorm:"foreignKey:DeviceTypeID" json:"-"`
}

package model

import "time"

// App-type codes a deployment can carry. AppTypeNone marks plain hardware rentals.
const (
	AppTypeNone   = ""
	AppTypeApp    = "App"
	AppTypeKikubi = "Kikubi"
	AppTypeWebApp = "WebApp"
)

// ValidAppType reports whether code is a recognized app-type code.
func ValidAppType(code string) bool {
	switch code {
	case AppTypeNone, AppTypeApp, AppTypeKikubi, AppTypeWebApp:
		return true
	}
	return false
}

// Deployment assigns a quantity of one device type to a project venue for a
// contiguous, inclusive date range. Its week-by-week commitment lives in the
// WeeklyAllocation rows seeded at creation time; editing the deployment later
// does not touch those rows.
type Deployment struct {
	ID                 int64     `gorm:"primaryKey" json:"id"`
	ProjectID          int64     `gorm:"index;not null" json:"project_id"`
	Venue              string    `gorm:"size:256;not null" json:"venue"`
	Location           string    `gorm:"size:256;not null;default:''" json:"location"`
	StartDate          time.Time `gorm:"not null;check:chk_deployment_dates,end_date >= start_date" json:"-"`
	EndDate            time.Time `gorm:"not null" json:"-"`
	DeviceTypeID       int64     `gorm:"index;not null" json:"device_type_id"`
	DefaultDeviceCount int       `gorm:"not null;default:0" json:"default_device_count"`
	AppType            string    `gorm:"size:16;not null;default:''" json:"app_type"`
	Notes              string    `gorm:"not null;default:''" json:"notes"`
	CreatedAt          time.Time `gorm:"not null" json:"-"`
	UpdatedAt          time.Time `gorm:"not null" json:"-"`

	// Associations
	Project     Project            `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	DeviceType  DeviceType         `json:"-"`
	Allocations []WeeklyAllocation `gorm:"foreignKey:DeploymentID" json:"-"`
}

package model

import "time"

// PushSubscription holds a browser push subscription for shortage alerts.
// A subscription is linked to the device types its owner wants alerts for.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey" json:"endpoint"`
	P256DH    string    `gorm:"column:p256dh;not null" json:"p256dh"`
	Auth      string    `gorm:"not null" json:"auth"`
	CreatedAt time.Time `gorm:"not null" json:"-"`

	// Associations
	DeviceTypes []*DeviceType `gorm:"many2many:subscription_device_type_mapping;" json:"-"`
}

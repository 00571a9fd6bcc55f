package model

import "time"

// Project status codes. The codes themselves are stored and validated here;
// their display labels belong to the frontend.
const (
	StatusConfirmed   = "◎"
	StatusMustWin     = "★"
	StatusNiceToHave  = "☆"
	StatusConditional = "△"
)

// Owning-entity codes carried over from the booking sheets.
const (
	EntityAGJ = "AGJ"
	EntityAP  = "AP"
)

// StatusCodes lists every recognized project status code.
func StatusCodes() []string {
	return []string{StatusConfirmed, StatusMustWin, StatusNiceToHave, StatusConditional}
}

// ValidStatus reports whether code is a recognized project status code.
func ValidStatus(code string) bool {
	switch code {
	case StatusConfirmed, StatusMustWin, StatusNiceToHave, StatusConditional:
		return true
	}
	return false
}

// ValidEntity reports whether code is a recognized owning-entity code.
func ValidEntity(code string) bool {
	return code == EntityAGJ || code == EntityAP
}

// Project is an exhibition or engagement that consumes devices through its deployments.
// Archiving hides a project from default listings without deleting it; its deployments
// keep counting against fleet capacity.
type Project struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:256;not null" json:"name"`
	NameEn    string    `gorm:"size:256;not null;default:''" json:"name_en"`
	Client    string    `gorm:"size:256;not null;default:''" json:"client"`
	Status    string    `gorm:"size:8;not null;default:'◎'" json:"status"`
	Entity    string    `gorm:"size:8;not null;default:'AGJ'" json:"entity"`
	Notes     string    `gorm:"not null;default:''" json:"notes"`
	Archived  bool      `gorm:"not null;default:false" json:"archived"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`

	// Associations
	Deployments []Deployment `gorm:"foreignKey:ProjectID" json:"-"`
}

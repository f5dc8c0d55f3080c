package entities

import "time"

const (
	ProjectUpcoming  = "upcoming"
	ProjectOngoing   = "ongoing"
	ProjectCompleted = "completed"
)

// Project groups properties built by the same developer at one site.
type Project struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id,string"`
	Name        string     `gorm:"type:varchar(200);not null" json:"name"`
	Slug        string     `gorm:"type:varchar(220);uniqueIndex;not null" json:"slug"`
	Developer   string     `gorm:"type:varchar(200)" json:"developer"`
	City        string     `gorm:"type:varchar(120);index" json:"city"`
	Address     string     `gorm:"type:text" json:"address"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"type:varchar(16);not null;default:upcoming" json:"status"`
	Properties  []Property `gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL" json:"properties,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

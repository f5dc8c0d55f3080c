package entities

import "time"

const (
	LeadNew       = "new"
	LeadContacted = "contacted"
	LeadQualified = "qualified"
	LeadClosed    = "closed"
	LeadLost      = "lost"

	LeadSourceWebsite  = "website"
	LeadSourceReferral = "referral"
	LeadSourceWalkIn   = "walk_in"
	LeadSourcePortal   = "portal"
)

// Lead is an enquiry, usually submitted through a public contact form.
type Lead struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id,string"`
	Name       string    `gorm:"type:varchar(120);not null" json:"name"`
	Email      string    `gorm:"type:varchar(255);index" json:"email"`
	Phone      string    `gorm:"type:varchar(32)" json:"phone"`
	Message    string    `gorm:"type:text" json:"message"`
	Source     string    `gorm:"type:varchar(16);not null;default:website" json:"source"`
	Status     string    `gorm:"type:varchar(16);not null;default:new;index" json:"status"`
	PropertyID *int64    `gorm:"index" json:"property_id,string"`
	Property   *Property `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	ProjectID  *int64    `gorm:"index" json:"project_id,string"`
	Project    *Project  `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	AssignedTo *int64    `gorm:"index" json:"assigned_to,string"`
	Assignee   *User     `gorm:"foreignKey:AssignedTo;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

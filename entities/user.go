package entities

import "time"

const (
	RoleAdmin = "admin"
	RoleAgent = "agent"
)

// User is a back-office account (admin or agent).
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id,string"`
	Name         string    `gorm:"type:varchar(120);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"type:varchar(16);not null;default:agent" json:"role"`
	Phone        string    `gorm:"type:varchar(32)" json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

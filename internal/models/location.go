package models

import "time"

// Location is the local copy of a property synced from the property service.
type Location struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	TenantID  string    `gorm:"type:varchar(64);not null;index" json:"tenant_id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

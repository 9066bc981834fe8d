package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Action string `gorm:"size:50;not null;index" json:"action"`

	Entity     string `gorm:"size:50" json:"entity"`
	EntityID   *uint  `json:"entity_id"`
	Email      string `gorm:"size:255;index" json:"email"`
	DoctorName string `gorm:"size:120" json:"doctor_name"`
	TimeSlot   string `gorm:"size:120" json:"time_slot"`
	Metadata   string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}

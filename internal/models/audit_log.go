package models

import "time"

// AuditChanges is the JSON diff stored with an audit entry.
type AuditChanges struct {
	Old   any    `json:"old,omitempty"`
	New   any    `json:"new,omitempty"`
	Reply string `json:"reply,omitempty"`
}

// AuditLog is an append-only record of an admin mutation.
type AuditLog struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	UserID    *string       `json:"user_id" gorm:"type:varchar(36);index"`
	User      *User         `json:"user,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Action    string        `json:"action" gorm:"type:varchar(60);not null;index"`
	Entity    string        `json:"entity" gorm:"type:varchar(60);not null;index"`
	EntityID  string        `json:"entity_id" gorm:"type:varchar(64);not null"`
	Changes   *AuditChanges `json:"changes,omitempty" gorm:"serializer:json;type:text"`
	Timestamp time.Time     `json:"timestamp" gorm:"autoCreateTime;index"`
}

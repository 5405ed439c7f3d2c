package models

import "gorm.io/gorm"

// WaitlistEntry is one waitlist signup. Email carries a unique index; the
// database constraint is the authoritative duplicate guard (the service
// pre-check is advisory only and not race-safe).
type WaitlistEntry struct {
	gorm.Model
	Email string `gorm:"not null;uniqueIndex"`
	Name  string `gorm:"not null"`
}

package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnerScope returns a GORM scope that filters rows by the owning user.
// A zero userID is the admin view and returns every user's rows.
func OwnerScope(userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return ownerScope("user_id", userID)
}

// ownerScope is OwnerScope for a qualified column, e.g. "d.user_id"
func ownerScope(column string, userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if userID == uuid.Nil {
			return db
		}
		return db.Where(column+" = ?", userID)
	}
}

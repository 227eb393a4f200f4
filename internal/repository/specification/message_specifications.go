package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByConversation scopes messages to one (companion, user) pair.
type ByConversation struct {
	CompanionID uuid.UUID
	UserID      uuid.UUID
}

func (s ByConversation) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("companion_id = ? AND user_id = ?", s.CompanionID, s.UserID)
}

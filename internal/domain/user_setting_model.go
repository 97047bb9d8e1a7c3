package domain

import "time"

// UserSetting stores per-user UI preferences as an opaque JSON document.
type UserSetting struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	Settings  string    `gorm:"not null;type:text;default:'{}'" json:"settings"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserSetting) TableName() string {
	return "user_settings"
}

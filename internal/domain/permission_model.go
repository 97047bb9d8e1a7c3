package domain

import "time"

type Permission struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"uniqueIndex;not null;size:255" json:"name"`
	Description *string `json:"description"`

	CanViewForecast   bool `gorm:"not null;default:false" json:"can_view_forecast"`
	CanEditForecast   bool `gorm:"not null;default:false" json:"can_edit_forecast"`
	CanAddNewHire     bool `gorm:"not null;default:false" json:"can_add_new_hire"`
	CanAccessSettings bool `gorm:"not null;default:false" json:"can_access_settings"`
	IsAdmin           bool `gorm:"not null;default:false" json:"is_admin"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type UserPermission struct {
	UserID       uint      `gorm:"primaryKey" json:"user_id"`
	PermissionID uint      `gorm:"primaryKey" json:"permission_id"`
	AssignedAt   time.Time `gorm:"autoCreateTime" json:"assigned_at"`
	AssignedBy   *uint     `json:"assigned_by"`
}

func (UserPermission) TableName() string {
	return "user_permissions"
}

package domain

import "time"

type User struct {
	ID         uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Email      string  `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password   string  `gorm:"not null;size:100;check:length(password) >= 8" json:"-"`
	Name       string  `gorm:"not null;size:255" json:"name"`
	Department *string `gorm:"size:255" json:"department"`
	Role       string  `gorm:"not null;default:'user';check:role IN ('user', 'admin')" json:"role"`
	IsActive   bool    `gorm:"not null;default:true" json:"is_active"`

	LastLoginAt *time.Time `json:"last_login_at"`

	Permissions []Permission `gorm:"many2many:user_permissions;joinForeignKey:UserID;joinReferences:PermissionID" json:"permissions,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

package domain

import "time"

type Department struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"uniqueIndex;not null;size:255" json:"name"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Role struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"uniqueIndex;not null;size:255" json:"name"`
	Category     *string   `gorm:"size:255" json:"category"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Category struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null;size:255" json:"name"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedBy    *uint     `json:"created_by"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Fields []Field `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"fields,omitempty"`
}

type Field struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID   uint      `gorm:"not null;index" json:"category_id"`
	Name         string    `gorm:"not null;size:255" json:"name"`
	FieldType    FieldType `gorm:"not null;size:32" json:"field_type"`
	IsRequired   bool      `gorm:"not null;default:false" json:"is_required"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	ColumnWidth  int       `gorm:"not null;default:120" json:"column_width"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	IsArchived   bool      `gorm:"not null;default:false" json:"is_archived"`
	CreatedBy    *uint     `json:"created_by"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

package domain

import "time"

// ChangeRecord is one immutable audit entry for a single field mutation on an
// employee row. Rows are append-only; nothing in the application updates or
// deletes them.
type ChangeRecord struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeID uint      `gorm:"not null;index" json:"employee_id"`
	FieldName  string    `gorm:"not null;size:64" json:"field_name"`
	OldValue   *string   `gorm:"type:text" json:"old_value"`
	NewValue   *string   `gorm:"type:text" json:"new_value"`
	ChangedAt  time.Time `gorm:"autoCreateTime" json:"changed_at"`
	ChangedBy  uint      `gorm:"not null" json:"changed_by"`

	Author User `gorm:"foreignKey:ChangedBy;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
}

func (ChangeRecord) TableName() string {
	return "change_history"
}

package domain

import "time"

// LoginRecord is one successful sign-in, annotated with the GeoIP country of
// the source address when a database is available.
type LoginRecord struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	IPAddress string    `gorm:"not null;size:64" json:"ip_address"`
	Country   string    `gorm:"size:2" json:"country"`
	UserAgent string    `gorm:"size:512" json:"user_agent"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

package domain

import "time"

const (
	IPRuleAllow = "allow"
	IPRuleDeny  = "deny"
)

// IPRestriction is one configured allow or deny entry for the access gate.
// AddressPattern holds either a dotted-quad IPv4 address or a CIDR block.
type IPRestriction struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AddressPattern string    `gorm:"column:ip_address;not null;size:64" json:"ip_address"`
	RuleType       string    `gorm:"not null;size:8;check:rule_type IN ('allow', 'deny')" json:"rule_type"`
	Description    *string   `gorm:"size:255" json:"description"`
	// No column default: gorm would omit a zero-value false from the INSERT
	// and the database would flip a rule created inactive to active.
	IsActive bool `gorm:"not null" json:"is_active"`
	CreatedBy      *uint     `json:"created_by"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (IPRestriction) TableName() string {
	return "ip_restrictions"
}

package domain

import "time"

const JoinDateLayout = "2006-01-02"

type Employee struct {
	ID             uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeNumber *string `gorm:"size:64;index" json:"employee_number"`
	Name           string  `gorm:"not null;size:255" json:"name"`
	NameKana       *string `gorm:"size:255" json:"name_kana"`
	Gender         *string `gorm:"size:32" json:"gender"`
	Age            *int64  `json:"age"`

	RecruitmentType *RecruitmentType `gorm:"size:32" json:"recruitment_type"`
	EmploymentType  *EmploymentType  `gorm:"size:32" json:"employment_type"`

	Role              *string    `gorm:"size:255" json:"role"`
	Department        *string    `gorm:"size:255;index" json:"department"`
	JoinDate          *time.Time `gorm:"type:date;index" json:"join_date"`
	RecruitmentCost   *int64     `json:"recruitment_cost"`
	ApplicationSource *string    `gorm:"size:255" json:"application_source"`
	RecruiterID       *uint      `json:"recruiter_id"`

	HRStatus      *string `gorm:"column:hr_status;size:64" json:"hr_status"`
	ITStatus      *string `gorm:"column:it_status;size:64" json:"it_status"`
	HRAdminStatus *string `gorm:"column:hr_admin_status;size:64" json:"hr_admin_status"`

	Comments []Comment      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments,omitempty"`
	Changes  []ChangeRecord `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"change_history,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	CreatedBy *uint     `json:"created_by"`
	UpdatedBy *uint     `json:"updated_by"`
}

// PatchableEmployeeFields lists the column names an inline edit may target.
// Keys not in this set are dropped from update payloads before diffing.
var PatchableEmployeeFields = map[string]struct{}{
	"employee_number":    {},
	"name":               {},
	"name_kana":          {},
	"gender":             {},
	"age":                {},
	"recruitment_type":   {},
	"employment_type":    {},
	"role":               {},
	"department":         {},
	"join_date":          {},
	"recruitment_cost":   {},
	"application_source": {},
	"recruiter_id":       {},
	"hr_status":          {},
	"it_status":          {},
	"hr_admin_status":    {},
}

// Snapshot flattens the row into the JSON-shaped scalar map the audit differ
// compares patches against. Numbers come back as float64 and dates as
// JoinDateLayout strings so values line up with a decoded request body.
func (e *Employee) Snapshot() map[string]any {
	snapshot := map[string]any{
		"employee_number":    optString(e.EmployeeNumber),
		"name":               e.Name,
		"name_kana":          optString(e.NameKana),
		"gender":             optString(e.Gender),
		"age":                optInt(e.Age),
		"role":               optString(e.Role),
		"department":         optString(e.Department),
		"recruitment_cost":   optInt(e.RecruitmentCost),
		"application_source": optString(e.ApplicationSource),
		"hr_status":          optString(e.HRStatus),
		"it_status":          optString(e.ITStatus),
		"hr_admin_status":    optString(e.HRAdminStatus),
	}

	if e.RecruitmentType != nil {
		snapshot["recruitment_type"] = string(*e.RecruitmentType)
	} else {
		snapshot["recruitment_type"] = nil
	}
	if e.EmploymentType != nil {
		snapshot["employment_type"] = string(*e.EmploymentType)
	} else {
		snapshot["employment_type"] = nil
	}
	if e.JoinDate != nil {
		snapshot["join_date"] = e.JoinDate.Format(JoinDateLayout)
	} else {
		snapshot["join_date"] = nil
	}
	if e.RecruiterID != nil {
		snapshot["recruiter_id"] = float64(*e.RecruiterID)
	} else {
		snapshot["recruiter_id"] = nil
	}

	return snapshot
}

func optString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func optInt(value *int64) any {
	if value == nil {
		return nil
	}
	return float64(*value)
}

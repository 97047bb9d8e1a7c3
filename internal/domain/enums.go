package domain

// RecruitmentType classifies how a new hire was sourced.
type RecruitmentType string

const (
	RecruitmentNewGraduate RecruitmentType = "new_graduate"
	RecruitmentMidCareer   RecruitmentType = "mid_career"
	RecruitmentContract    RecruitmentType = "contract"
	RecruitmentPartTime    RecruitmentType = "part_time"
	RecruitmentIntern      RecruitmentType = "intern"
)

var recruitmentTypeLabels = map[RecruitmentType]string{
	RecruitmentNewGraduate: "新卒",
	RecruitmentMidCareer:   "中途",
	RecruitmentContract:    "契約",
	RecruitmentPartTime:    "パート",
	RecruitmentIntern:      "インターン",
}

func (r RecruitmentType) Valid() bool {
	_, ok := recruitmentTypeLabels[r]
	return ok
}

// Label returns the human-readable label used by CSV import/export.
func (r RecruitmentType) Label() string {
	return recruitmentTypeLabels[r]
}

// ParseRecruitmentLabel resolves a CSV label back to its RecruitmentType.
func ParseRecruitmentLabel(label string) (RecruitmentType, bool) {
	for value, l := range recruitmentTypeLabels {
		if l == label {
			return value, true
		}
	}
	return "", false
}

// EmploymentType classifies the contract form of a hire.
type EmploymentType string

const (
	EmploymentFullTime  EmploymentType = "full_time"
	EmploymentContract  EmploymentType = "contract"
	EmploymentPartTime  EmploymentType = "part_time"
	EmploymentTemporary EmploymentType = "temporary"
	EmploymentIntern    EmploymentType = "intern"
)

var employmentTypeLabels = map[EmploymentType]string{
	EmploymentFullTime:  "正社員",
	EmploymentContract:  "契約社員",
	EmploymentPartTime:  "パート",
	EmploymentTemporary: "派遣",
	EmploymentIntern:    "インターン",
}

func (e EmploymentType) Valid() bool {
	_, ok := employmentTypeLabels[e]
	return ok
}

func (e EmploymentType) Label() string {
	return employmentTypeLabels[e]
}

func ParseEmploymentLabel(label string) (EmploymentType, bool) {
	for value, l := range employmentTypeLabels {
		if l == label {
			return value, true
		}
	}
	return "", false
}

// FieldType enumerates the input widgets a settings field can render as.
type FieldType string

const (
	FieldText        FieldType = "text"
	FieldSelect      FieldType = "select"
	FieldMultiSelect FieldType = "multiselect"
	FieldDate        FieldType = "date"
	FieldCheckbox    FieldType = "checkbox"
)

func (f FieldType) Valid() bool {
	switch f {
	case FieldText, FieldSelect, FieldMultiSelect, FieldDate, FieldCheckbox:
		return true
	}
	return false
}

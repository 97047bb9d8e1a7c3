package dto

// EmployeeFilter captures the list-screen query: free-text name search,
// column filters, sorting and pagination.
type EmployeeFilter struct {
	Name            string
	Department      string
	Status          string
	RecruitmentType string
	DateFrom        string
	DateTo          string
	SortBy          string
	SortOrder       string
	Page            int
	PageSize        int
}

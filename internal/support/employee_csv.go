package support

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"heron/internal/domain"
)

// csvHeaderFields maps the Japanese spreadsheet headers HR uploads to the
// employee column they populate. Unknown headers pass through unchanged so a
// file exported from this tool re-imports cleanly.
var csvHeaderFields = map[string]string{
	"社員番号":  "employee_number",
	"氏名":    "name",
	"ふりがな":  "name_kana",
	"性別":    "gender",
	"年齢":    "age",
	"採用区分":  "recruitment_type",
	"雇用形態":  "employment_type",
	"ロール":   "role",
	"部署":    "department",
	"入社日":   "join_date",
	"採用コスト": "recruitment_cost",
	"応募経路":  "application_source",
}

var csvExportColumns = []string{
	"社員番号", "氏名", "ふりがな", "性別", "年齢", "採用区分", "雇用形態",
	"ロール", "部署", "入社日", "採用コスト", "応募経路",
}

// ParseEmployeeCSV parses an uploaded CSV into employee rows. Rows that fail
// validation are reported by line number and skipped; valid rows still import.
func ParseEmployeeCSV(content string) ([]domain.Employee, []string) {
	// Spreadsheets exported on Windows lead with a UTF-8 BOM.
	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(content, "\uFEFF")))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, []string{fmt.Sprintf("could not parse CSV: %v", err)}
	}
	if len(rows) < 2 {
		return nil, []string{"no importable rows found"}
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		header = strings.TrimSpace(header)
		if field, ok := csvHeaderFields[header]; ok {
			headers[i] = field
		} else {
			headers[i] = header
		}
	}

	var (
		employees []domain.Employee
		problems  []string
	)

	for rowIndex, row := range rows[1:] {
		lineNum := rowIndex + 2 // account for the header line

		employee, rowErr := buildEmployeeRow(headers, row)
		if rowErr != "" {
			problems = append(problems, fmt.Sprintf("row %d: %s", lineNum, rowErr))
			continue
		}
		employees = append(employees, employee)
	}

	return employees, problems
}

func buildEmployeeRow(headers []string, row []string) (domain.Employee, string) {
	var employee domain.Employee

	for i, header := range headers {
		if i >= len(row) {
			break
		}
		value := strings.TrimSpace(row[i])
		if value == "" {
			continue
		}

		switch header {
		case "employee_number":
			employee.EmployeeNumber = &value
		case "name":
			employee.Name = value
		case "name_kana":
			employee.NameKana = &value
		case "gender":
			employee.Gender = &value
		case "age":
			age, err := parseCSVNumber(value)
			if err != nil {
				return employee, "age is not a number"
			}
			employee.Age = &age
		case "recruitment_type":
			parsed, ok := domain.ParseRecruitmentLabel(value)
			if !ok {
				parsed = domain.RecruitmentType(value)
				if !parsed.Valid() {
					return employee, fmt.Sprintf("unknown recruitment type %q", value)
				}
			}
			employee.RecruitmentType = &parsed
		case "employment_type":
			parsed, ok := domain.ParseEmploymentLabel(value)
			if !ok {
				parsed = domain.EmploymentType(value)
				if !parsed.Valid() {
					return employee, fmt.Sprintf("unknown employment type %q", value)
				}
			}
			employee.EmploymentType = &parsed
		case "role":
			employee.Role = &value
		case "department":
			employee.Department = &value
		case "join_date":
			normalized := strings.ReplaceAll(value, "/", "-")
			joined, err := time.Parse(domain.JoinDateLayout, normalized)
			if err != nil {
				return employee, fmt.Sprintf("invalid join date %q", value)
			}
			employee.JoinDate = &joined
		case "recruitment_cost":
			cost, err := parseCSVNumber(value)
			if err != nil {
				return employee, "recruitment cost is not a number"
			}
			employee.RecruitmentCost = &cost
		case "application_source":
			employee.ApplicationSource = &value
		}
	}

	if employee.Name == "" {
		return employee, "name is required"
	}
	if employee.Age != nil && (*employee.Age < 18 || *employee.Age > 100) {
		return employee, "age must be between 18 and 100"
	}
	if employee.RecruitmentCost != nil && *employee.RecruitmentCost < 0 {
		return employee, "recruitment cost must not be negative"
	}

	return employee, ""
}

// parseCSVNumber tolerates currency formatting like "¥500,000".
func parseCSVNumber(value string) (int64, error) {
	var digits strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		} else if r == '-' && digits.Len() == 0 {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, fmt.Errorf("no digits in %q", value)
	}
	return strconv.ParseInt(digits.String(), 10, 64)
}

// EmployeesToCSV renders rows with the same Japanese headers and labels the
// importer accepts.
func EmployeesToCSV(employees []domain.Employee) (string, error) {
	var out strings.Builder
	writer := csv.NewWriter(&out)

	if err := writer.Write(csvExportColumns); err != nil {
		return "", err
	}

	for _, employee := range employees {
		record := []string{
			deref(employee.EmployeeNumber),
			employee.Name,
			deref(employee.NameKana),
			deref(employee.Gender),
			formatOptInt(employee.Age),
			recruitmentLabel(employee.RecruitmentType),
			employmentLabel(employee.EmploymentType),
			deref(employee.Role),
			deref(employee.Department),
			formatJoinDate(employee.JoinDate),
			formatOptInt(employee.RecruitmentCost),
			deref(employee.ApplicationSource),
		}
		if err := writer.Write(record); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return out.String(), nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func formatOptInt(value *int64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatInt(*value, 10)
}

func formatJoinDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format(domain.JoinDateLayout)
}

func recruitmentLabel(value *domain.RecruitmentType) string {
	if value == nil {
		return ""
	}
	return value.Label()
}

func employmentLabel(value *domain.EmploymentType) string {
	if value == nil {
		return ""
	}
	return value.Label()
}

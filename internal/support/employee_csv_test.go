package support

import (
	"strings"
	"testing"

	"heron/internal/domain"
)

const sampleCSV = `社員番号,氏名,ふりがな,年齢,採用区分,雇用形態,部署,入社日,採用コスト
E-1001,田中太郎,たなかたろう,28,中途,正社員,営業,2026/04/01,"¥500,000"
E-1002,鈴木花子,すずきはなこ,23,新卒,正社員,開発,2026-04-01,300000
`

func TestParseEmployeeCSV(t *testing.T) {
	employees, problems := ParseEmployeeCSV(sampleCSV)
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if len(employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(employees))
	}

	first := employees[0]
	if first.Name != "田中太郎" {
		t.Errorf("name = %q", first.Name)
	}
	if first.RecruitmentType == nil || *first.RecruitmentType != domain.RecruitmentMidCareer {
		t.Errorf("recruitment type = %v, want mid_career", first.RecruitmentType)
	}
	if first.EmploymentType == nil || *first.EmploymentType != domain.EmploymentFullTime {
		t.Errorf("employment type = %v, want full_time", first.EmploymentType)
	}
	if first.RecruitmentCost == nil || *first.RecruitmentCost != 500000 {
		t.Errorf("recruitment cost = %v, want 500000", first.RecruitmentCost)
	}
	if first.JoinDate == nil || first.JoinDate.Format(domain.JoinDateLayout) != "2026-04-01" {
		t.Errorf("join date = %v, want 2026-04-01", first.JoinDate)
	}

	second := employees[1]
	if second.JoinDate == nil || second.JoinDate.Format(domain.JoinDateLayout) != "2026-04-01" {
		t.Errorf("dashed join date = %v, want 2026-04-01", second.JoinDate)
	}
}

func TestParseEmployeeCSV_RawEnumValuesAccepted(t *testing.T) {
	csvText := "氏名,採用区分\n山田,mid_career\n"
	employees, problems := ParseEmployeeCSV(csvText)
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if employees[0].RecruitmentType == nil || *employees[0].RecruitmentType != domain.RecruitmentMidCareer {
		t.Fatalf("raw enum value not accepted: %v", employees[0].RecruitmentType)
	}
}

func TestParseEmployeeCSV_RowValidation(t *testing.T) {
	csvText := "氏名,年齢,採用区分\n" +
		",30,中途\n" + // missing name
		"佐藤,17,中途\n" + // under-age
		"高橋,30,謎の区分\n" + // unknown recruitment label
		"伊藤,30,中途\n" // valid

	employees, problems := ParseEmployeeCSV(csvText)
	if len(employees) != 1 || employees[0].Name != "伊藤" {
		t.Fatalf("expected only the valid row to import, got %#v", employees)
	}
	if len(problems) != 3 {
		t.Fatalf("expected 3 row problems, got %v", problems)
	}
	for i, want := range []string{"row 2:", "row 3:", "row 4:"} {
		if !strings.HasPrefix(problems[i], want) {
			t.Errorf("problem %d = %q, want prefix %q", i, problems[i], want)
		}
	}
}

func TestParseEmployeeCSV_StripsByteOrderMark(t *testing.T) {
	employees, problems := ParseEmployeeCSV("\uFEFF" + sampleCSV)
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if len(employees) != 2 || employees[0].EmployeeNumber == nil || *employees[0].EmployeeNumber != "E-1001" {
		t.Fatalf("BOM broke the first header column: %#v", employees)
	}
}

func TestParseEmployeeCSV_EmptyFile(t *testing.T) {
	if employees, problems := ParseEmployeeCSV("氏名\n"); len(employees) != 0 || len(problems) == 0 {
		t.Fatalf("header-only file should report a problem, got %v / %v", employees, problems)
	}
}

func TestEmployeesToCSV_RoundTrip(t *testing.T) {
	employees, problems := ParseEmployeeCSV(sampleCSV)
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}

	rendered, err := EmployeesToCSV(employees)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	again, problems := ParseEmployeeCSV(rendered)
	if len(problems) != 0 {
		t.Fatalf("re-import problems: %v", problems)
	}
	if len(again) != len(employees) {
		t.Fatalf("round trip lost rows: %d != %d", len(again), len(employees))
	}
	if again[0].Name != employees[0].Name {
		t.Errorf("round trip name mismatch: %q != %q", again[0].Name, employees[0].Name)
	}
	if *again[0].RecruitmentType != *employees[0].RecruitmentType {
		t.Errorf("round trip recruitment type mismatch")
	}
}

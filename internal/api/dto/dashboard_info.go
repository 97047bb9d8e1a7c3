package dto

import "heron/internal/domain"

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type DashboardInfo struct {
	TotalEmployees       int64             `json:"totalEmployees"`
	TotalRecruitmentCost int64             `json:"totalRecruitmentCost"`
	ByDepartment         []DepartmentCount `json:"byDepartment"`
	ByHRStatus           []StatusCount     `json:"byHrStatus"`
	UpcomingJoiners      []domain.Employee `json:"upcomingJoiners"`
}

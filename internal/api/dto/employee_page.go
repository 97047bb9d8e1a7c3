package dto

import "heron/internal/domain"

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

type EmployeePage struct {
	Employees  []domain.Employee `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

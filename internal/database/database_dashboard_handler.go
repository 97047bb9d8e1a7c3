package database

import (
	"context"
	"fmt"
	"time"

	"heron/internal/api/dto"
	"heron/internal/domain"
)

// GetDashboardInfo aggregates the forecast table for the landing screen:
// headcount, spend, per-department and per-status breakdowns, and everyone
// joining inside the configured window.
func GetDashboardInfo(ctx context.Context, upcomingWindow time.Duration) (dto.DashboardInfo, error) {
	info := dto.DashboardInfo{}
	tx := DB.WithContext(ctx)

	if err := tx.Model(&domain.Employee{}).Count(&info.TotalEmployees).Error; err != nil {
		return info, fmt.Errorf("dashboard: count employees: %w", err)
	}

	if err := tx.Model(&domain.Employee{}).
		Select("COALESCE(SUM(recruitment_cost), 0)").
		Scan(&info.TotalRecruitmentCost).Error; err != nil {
		return info, fmt.Errorf("dashboard: sum recruitment cost: %w", err)
	}

	if err := tx.Model(&domain.Employee{}).
		Select("department, COUNT(*) AS count").
		Where("department IS NOT NULL").
		Group("department").
		Order("count DESC").
		Scan(&info.ByDepartment).Error; err != nil {
		return info, fmt.Errorf("dashboard: department breakdown: %w", err)
	}

	if err := tx.Model(&domain.Employee{}).
		Select("hr_status AS status, COUNT(*) AS count").
		Where("hr_status IS NOT NULL").
		Group("hr_status").
		Order("count DESC").
		Scan(&info.ByHRStatus).Error; err != nil {
		return info, fmt.Errorf("dashboard: status breakdown: %w", err)
	}

	now := time.Now()
	if err := tx.
		Where("join_date >= ? AND join_date <= ?", now.Format(domain.JoinDateLayout), now.Add(upcomingWindow).Format(domain.JoinDateLayout)).
		Order("join_date ASC").
		Find(&info.UpcomingJoiners).Error; err != nil {
		return info, fmt.Errorf("dashboard: upcoming joiners: %w", err)
	}

	return info, nil
}

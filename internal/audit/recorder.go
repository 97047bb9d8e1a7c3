package audit

import (
	"context"

	"github.com/charmbracelet/log"

	"heron/internal/database"
	"heron/internal/domain"
)

// Record appends the change list to the audit store. The insert is best-effort
// relative to the primary write: a failure is logged and swallowed so it can
// never roll back or fail the update that produced the diff.
func Record(ctx context.Context, records []domain.ChangeRecord) {
	if len(records) == 0 {
		return
	}

	if err := database.InsertChangeRecords(ctx, records); err != nil {
		log.Error("Failed to persist change history", "employee_id", records[0].EmployeeID, "count", len(records), "error", err)
	}
}

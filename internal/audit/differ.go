package audit

import (
	"fmt"
	"strconv"

	"heron/internal/domain"
)

// Diff computes the field-level change records an update produces. Only keys
// present in patch are compared; a key missing from before counts as a change
// from null. Equal values emit nothing, so re-diffing an applied patch against
// the merged result yields an empty list.
func Diff(employeeID uint, before, patch map[string]any, actorID uint) []domain.ChangeRecord {
	if len(patch) == 0 {
		return nil
	}

	records := make([]domain.ChangeRecord, 0, len(patch))
	for field, proposed := range patch {
		current := normalize(before[field])
		next := normalize(proposed)
		if current == next {
			continue
		}

		records = append(records, domain.ChangeRecord{
			EmployeeID: employeeID,
			FieldName:  field,
			OldValue:   format(current),
			NewValue:   format(next),
			ChangedBy:  actorID,
		})
	}

	if len(records) == 0 {
		return nil
	}
	return records
}

// normalize collapses the numeric types a snapshot or decoded JSON body can
// carry into a single comparable form. Distinct kinds stay distinct: the
// string "30" never equals the number 30. Composite values (slices, maps from
// a decoded body) are rendered to text so the comparison cannot panic.
func normalize(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case string, bool:
		return value
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint64:
		return float64(v)
	default:
		return fmt.Sprintf("%v", value)
	}
}

func format(value any) *string {
	if value == nil {
		return nil
	}

	var text string
	switch v := value.(type) {
	case string:
		text = v
	case float64:
		text = strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		text = strconv.FormatBool(v)
	default:
		return nil
	}
	return &text
}

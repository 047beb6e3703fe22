package audit

import (
	"fmt"

	"github.com/communityhours/hours-dashboard/internal/audit/model"
	backendmodel "github.com/communityhours/hours-dashboard/internal/backend/model"
	"github.com/communityhours/hours-dashboard/internal/system/constants"
)

// Filter returns the entries matching both the action and school filter. The
// input slice is left untouched.
func Filter(entries []backendmodel.RecentActivityEntry, f model.Filter) []backendmodel.RecentActivityEntry {
	result := make([]backendmodel.RecentActivityEntry, 0, len(entries))
	for _, e := range entries {
		if matches(f.Action, string(e.Action)) && matches(f.School, e.School()) {
			result = append(result, e)
		}
	}
	return result
}

func matches(want, got string) bool {
	return want == "" || want == constants.FilterAll || want == got
}

// validateFilter rejects unknown action names
func validateFilter(f model.Filter) error {
	if matches(f.Action, "") {
		return nil
	}
	for _, a := range backendmodel.AuditActions {
		if string(a) == f.Action {
			return nil
		}
	}
	return fmt.Errorf("unknown action filter: %s", f.Action)
}

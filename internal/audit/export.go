package audit

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	backendmodel "github.com/communityhours/hours-dashboard/internal/backend/model"
	"github.com/communityhours/hours-dashboard/internal/system/utils"
)

var csvHeader = []string{"timestamp", "school", "student", "action", "performer", "role", "organization", "hours"}

// ExportCSV writes the entries as CSV with a header row. Missing optional
// values are written as empty cells.
func ExportCSV(w io.Writer, entries []backendmodel.RecentActivityEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, e := range entries {
		record := []string{
			utils.ISO(e.Timestamp),
			e.School(),
			e.StudentName,
			string(e.Action),
			e.PerformedByName,
			e.PerformedByRole,
			optional(e.OrgName),
			optionalHours(e.SubmissionHours),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record %s: %w", e.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalHours(h *float64) string {
	if h == nil {
		return ""
	}
	return strconv.FormatFloat(*h, 'f', -1, 64)
}

package audit

import (
	"fmt"

	"github.com/communityhours/hours-dashboard/internal/audit/model"
	backendmodel "github.com/communityhours/hours-dashboard/internal/backend/model"
	"github.com/communityhours/hours-dashboard/internal/formatter"
)

// DescribeActivity renders one feed entry as a sentence. The school is
// appended only when withSchool is set, as on the cross-school view.
func DescribeActivity(e backendmodel.RecentActivityEntry, withSchool bool) string {
	at := ""
	if withSchool && e.School() != "" {
		at = " at " + e.School()
	}

	switch e.Action {
	case backendmodel.ActionCreated:
		return fmt.Sprintf("%s created a new submission%s", e.StudentName, at)
	case backendmodel.ActionSubmitted:
		return fmt.Sprintf("%s submitted for review%s", e.StudentName, at)
	case backendmodel.ActionApproved:
		return fmt.Sprintf("%s approved %s's submission%s", e.PerformedByName, e.StudentName, at)
	case backendmodel.ActionRejected:
		return fmt.Sprintf("%s rejected %s's submission%s", e.PerformedByName, e.StudentName, at)
	}
	return fmt.Sprintf("%s performed %s%s", e.PerformedByName, e.Action, at)
}

func describeAll(entries []backendmodel.RecentActivityEntry, withSchool bool) []model.DescribedEntry {
	described := make([]model.DescribedEntry, 0, len(entries))
	for _, e := range entries {
		described = append(described, model.DescribedEntry{
			RecentActivityEntry: e,
			Description:         DescribeActivity(e, withSchool),
			DisplayTime:         formatter.FormatTimestamp(e.Timestamp),
		})
	}
	return described
}

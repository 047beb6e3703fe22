// Package audit builds the audit dashboards from the backend's statistics and
// recent activity feed.
package audit

import (
	"sort"

	"github.com/communityhours/hours-dashboard/internal/audit/model"
	backendmodel "github.com/communityhours/hours-dashboard/internal/backend/model"
	"github.com/communityhours/hours-dashboard/internal/system/constants"
)

// RollupBySchool groups the feed by school name and ranks schools by how many
// actions they logged. Ties are ordered by school name.
func RollupBySchool(entries []backendmodel.RecentActivityEntry) []model.SchoolActivity {
	bySchool := make(map[string]*model.SchoolActivity)
	for _, e := range entries {
		name := e.School()
		if name == "" {
			name = constants.UnknownSchool
		}
		s, ok := bySchool[name]
		if !ok {
			s = &model.SchoolActivity{School: name}
			bySchool[name] = s
		}

		switch e.Action {
		case backendmodel.ActionCreated:
			s.Created++
		case backendmodel.ActionSubmitted:
			s.Submitted++
		case backendmodel.ActionApproved:
			s.Approved++
		case backendmodel.ActionRejected:
			s.Rejected++
		}
		s.TotalActions++
		if e.SubmissionHours != nil {
			s.TotalHours += *e.SubmissionHours
		}
		if e.Timestamp.After(s.LastActivity) {
			s.LastActivity = e.Timestamp
		}
	}

	result := make([]model.SchoolActivity, 0, len(bySchool))
	for _, s := range bySchool {
		s.ApprovalRate = approvalRate(s.Approved, s.Rejected)
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalActions != result[j].TotalActions {
			return result[i].TotalActions > result[j].TotalActions
		}
		return result[i].School < result[j].School
	})
	return result
}

// approvalRate is 0 when nothing was decided
func approvalRate(approved, rejected int) float64 {
	decided := approved + rejected
	if decided == 0 {
		return 0
	}
	return float64(approved) / float64(decided) * 100
}

// AvailableSchools lists the distinct non-empty school names of the feed
func AvailableSchools(entries []backendmodel.RecentActivityEntry) []string {
	seen := make(map[string]struct{})
	schools := make([]string, 0)
	for _, e := range entries {
		name := e.School()
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		schools = append(schools, name)
	}
	sort.Strings(schools)
	return schools
}

// top returns at most n leading schools
func top(schools []model.SchoolActivity, n int) []model.SchoolActivity {
	if n <= 0 || len(schools) <= n {
		return schools
	}
	return schools[:n]
}

package dashboard

import (
	"sort"
	"strings"
	"time"

	backendmodel "github.com/communityhours/hours-dashboard/internal/backend/model"
	"github.com/communityhours/hours-dashboard/internal/dashboard/model"
	"github.com/communityhours/hours-dashboard/internal/formatter"
	"github.com/communityhours/hours-dashboard/internal/system/constants"
	"github.com/communityhours/hours-dashboard/internal/system/utils"
)

// RecentWindowDays is the window counted by the recent activity badge
const RecentWindowDays = 7

// Summarize computes the headline totals over users
func Summarize(users []backendmodel.User) model.Summary {
	summary := model.Summary{TotalUsers: len(users)}
	for _, u := range users {
		summary.TotalSubmissions += len(u.Submissions)
		summary.TotalSubmittedSubmissions += formatter.SubmissionStats(u.Submissions).Submitted
		summary.TotalHours += formatter.TotalHours(u.Submissions)
		if u.HasSignature() {
			summary.UsersWithSignatures++
		}
	}
	return summary
}

// RollupSchools groups users by school id, sorted by id
func RollupSchools(users []backendmodel.User) []model.SchoolOverview {
	bySchool := make(map[string]*model.SchoolOverview)
	for _, u := range users {
		id := u.School()
		if id == "" {
			id = constants.UnknownSchool
		}
		o, ok := bySchool[id]
		if !ok {
			o = &model.SchoolOverview{SchoolID: id}
			bySchool[id] = o
		}
		o.TotalStudents++
		o.TotalSubmissions += len(u.Submissions)
		o.TotalHours += formatter.TotalHours(u.Submissions)
	}

	overviews := make([]model.SchoolOverview, 0, len(bySchool))
	for _, o := range bySchool {
		overviews = append(overviews, *o)
	}
	sort.Slice(overviews, func(i, j int) bool {
		return overviews[i].SchoolID < overviews[j].SchoolID
	})
	return overviews
}

// SearchSchools keeps the overviews whose school id contains term, ignoring case
func SearchSchools(overviews []model.SchoolOverview, term string) []model.SchoolOverview {
	term = strings.ToLower(strings.TrimSpace(term))
	result := make([]model.SchoolOverview, 0, len(overviews))
	for _, o := range overviews {
		if strings.Contains(strings.ToLower(o.SchoolID), term) {
			result = append(result, o)
		}
	}
	return result
}

// SearchUsers keeps the users whose name, email, school id or OEN contains term
func SearchUsers(users []backendmodel.User, term string) []backendmodel.User {
	term = strings.ToLower(strings.TrimSpace(term))
	result := make([]backendmodel.User, 0, len(users))
	for _, u := range users {
		if term == "" || userMatches(u, term) {
			result = append(result, u)
		}
	}
	return result
}

func userMatches(u backendmodel.User, term string) bool {
	fields := []string{u.Name, u.Email, u.School()}
	if u.OEN != nil {
		fields = append(fields, *u.OEN)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// PendingCount counts submissions awaiting a decision
func PendingCount(users []backendmodel.User) int {
	count := 0
	for _, u := range users {
		count += formatter.SubmissionStats(u.Submissions).Submitted
	}
	return count
}

// RecentCount counts submissions dated within days of now. The submission
// date is used when present, else the creation time.
func RecentCount(users []backendmodel.User, now time.Time, days int) int {
	window := time.Duration(days) * 24 * time.Hour
	count := 0
	for _, u := range users {
		for _, s := range u.Submissions {
			raw := s.CreatedAt
			if s.SubmissionDate != nil && *s.SubmissionDate != "" {
				raw = *s.SubmissionDate
			}
			t, err := utils.ParseTime(raw)
			if err != nil {
				continue
			}
			if now.Sub(t) <= window {
				count++
			}
		}
	}
	return count
}

// StudentCards builds one card per user in the given order
func StudentCards(users []backendmodel.User) []model.StudentCard {
	cards := make([]model.StudentCard, 0, len(users))
	for _, u := range users {
		stats := formatter.SubmissionStats(u.Submissions)
		cards = append(cards, model.StudentCard{
			UserID:         u.ID,
			Name:           u.Name,
			Email:          u.Email,
			SchoolID:       u.School(),
			Initials:       formatter.Initials(u.Name),
			TotalHours:     formatter.TotalHours(u.Submissions),
			Stats:          stats,
			CompletionRate: formatter.CompletionRate(stats),
			MemberSince:    formatter.FormatDate(u.CreatedAt),
		})
	}
	return cards
}

// filterBySchool keeps users whose school id equals schoolID
func filterBySchool(users []backendmodel.User, schoolID string) []backendmodel.User {
	result := make([]backendmodel.User, 0, len(users))
	for _, u := range users {
		if u.School() == schoolID {
			result = append(result, u)
		}
	}
	return result
}

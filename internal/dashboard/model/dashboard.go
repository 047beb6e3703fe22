package model

import (
	"time"

	"github.com/communityhours/hours-dashboard/internal/formatter"
)

// Summary holds the headline totals of a set of users
type Summary struct {
	TotalUsers                int     `json:"totalUsers"`
	TotalSubmissions          int     `json:"totalSubmissions"`
	TotalSubmittedSubmissions int     `json:"totalSubmittedSubmissions"`
	TotalHours                float64 `json:"totalHours"`
	UsersWithSignatures       int     `json:"usersWithSignatures"`
}

// SchoolOverview is the per-school rollup of the board view
type SchoolOverview struct {
	SchoolID         string  `json:"schoolId"`
	TotalStudents    int     `json:"totalStudents"`
	TotalSubmissions int     `json:"totalSubmissions"`
	TotalHours       float64 `json:"totalHours"`
}

// StudentCard is one student's tile on the school view
type StudentCard struct {
	UserID         string          `json:"userId"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	SchoolID       string          `json:"schoolId"`
	Initials       string          `json:"initials"`
	TotalHours     float64         `json:"totalHours"`
	Stats          formatter.Stats `json:"stats"`
	CompletionRate float64         `json:"completionRate"`
	MemberSince    string          `json:"memberSince,omitempty"`
}

// BoardDashboard is the board administrator's cross-school view
type BoardDashboard struct {
	Summary      Summary          `json:"summary"`
	TotalSchools int              `json:"totalSchools"`
	Schools      []SchoolOverview `json:"schools"`
	PendingCount int              `json:"pendingCount"`
	RecentCount  int              `json:"recentCount"`
	GeneratedAt  time.Time        `json:"generatedAt"`
}

// SchoolDashboard is the per-school view of one school's students
type SchoolDashboard struct {
	SchoolID     string        `json:"schoolId"`
	Summary      Summary       `json:"summary"`
	Students     []StudentCard `json:"students"`
	PendingCount int           `json:"pendingCount"`
	RecentCount  int           `json:"recentCount"`
	GeneratedAt  time.Time     `json:"generatedAt"`
}

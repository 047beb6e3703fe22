package model

// ReportTypeOnSIS is the ministry compliance report generated for the board
const ReportTypeOnSIS = "ONSIS_COMPLIANCE"

// Snapshot is one persisted board report
type Snapshot struct {
	ID                  string       `db:"REPORT_ID" json:"id"`
	ReportType          string       `db:"REPORT_TYPE" json:"reportType"`
	GeneratedBy         string       `db:"GENERATED_BY" json:"generatedBy"`
	GeneratedTime       int64        `db:"GENERATED_TIME" json:"generatedTime"`
	GeneratedAt         string       `db:"-" json:"generatedAt"`
	TotalUsers          int          `db:"TOTAL_USERS" json:"totalUsers"`
	TotalSubmissions    int          `db:"TOTAL_SUBMISSIONS" json:"totalSubmissions"`
	TotalSubmitted      int          `db:"TOTAL_SUBMITTED" json:"totalSubmittedSubmissions"`
	TotalHours          float64      `db:"TOTAL_HOURS" json:"totalHours"`
	UsersWithSignatures int          `db:"USERS_WITH_SIGNATURES" json:"usersWithSignatures"`
	Schools             []SchoolLine `db:"-" json:"schools,omitempty"`
}

// SchoolLine is one school's totals within a snapshot
type SchoolLine struct {
	ReportID         string  `db:"REPORT_ID" json:"-"`
	SchoolID         string  `db:"SCHOOL_ID" json:"schoolId"`
	TotalStudents    int     `db:"TOTAL_STUDENTS" json:"totalStudents"`
	TotalSubmissions int     `db:"TOTAL_SUBMISSIONS" json:"totalSubmissions"`
	TotalHours       float64 `db:"TOTAL_HOURS" json:"totalHours"`
}

// ListResponse is a page of snapshots without their school lines
type ListResponse struct {
	Data       []Snapshot `json:"data"`
	TotalCount int        `json:"totalCount"`
	Limit      int        `json:"limit"`
	Offset     int        `json:"offset"`
}

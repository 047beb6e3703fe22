package model

// User is a backend user record with its submissions nested in backend order
type User struct {
	ID                   string       `json:"id"`
	AuthProviderID       string       `json:"authProviderId"`
	Email                string       `json:"email"`
	Name                 string       `json:"name"`
	SchoolID             *string      `json:"schoolId"`
	OEN                  *string      `json:"oen"`
	Principal            *string      `json:"principal"`
	DateOfBirth          *string      `json:"dateOfBirth"`
	ParentSignatureURL   *string      `json:"parentSignatureUrl"`
	ParentSignatureDate  *string      `json:"parentSignatureDate"`
	StudentSignatureURL  *string      `json:"studentSignatureUrl"`
	StudentSignatureDate *string      `json:"studentSignatureDate"`
	Role                 string       `json:"role,omitempty"`
	CreatedAt            string       `json:"createdAt"`
	UpdatedAt            string       `json:"updatedAt"`
	Submissions          []Submission `json:"Submissions"`
}

// School returns the user's school id, or "" when unset
func (u User) School() string {
	if u.SchoolID == nil {
		return ""
	}
	return *u.SchoolID
}

// HasSignature reports whether a student or parent signature is on file
func (u User) HasSignature() bool {
	return nonEmpty(u.StudentSignatureURL) || nonEmpty(u.ParentSignatureURL)
}

// FindSubmission returns the user's submission with the given id
func (u User) FindSubmission(id string) (Submission, bool) {
	for _, s := range u.Submissions {
		if s.ID == id {
			return s, true
		}
	}
	return Submission{}, false
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}

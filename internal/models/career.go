// internal/models/career.go
package models

// SalaryRange is expressed in whole currency units per year.
type SalaryRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// WorkEnvironment is the career-side counterpart of EnvironmentPreference.
type WorkEnvironment struct {
	TeamSize TeamSize `json:"teamSize"`
	Pace     Pace     `json:"pace"`
}

// Career is a catalog record. The three profile pointers are optional; a
// career missing any of them cannot be scored.
type Career struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Category        string           `json:"category"`
	SalaryRange     SalaryRange      `json:"salaryRange"`
	InterestProfile *RIASECProfile   `json:"interestProfile,omitempty"`
	ValueProfile    *ValueProfile    `json:"valueProfile,omitempty"`
	WorkEnvironment *WorkEnvironment `json:"workEnvironment,omitempty"`
}

// Scoreable reports whether all three authored profiles are present.
func (c Career) Scoreable() bool {
	return c.InterestProfile != nil && c.ValueProfile != nil && c.WorkEnvironment != nil
}

// MatchResult is the request-scoped outcome of comparing one student to one career.
type MatchResult struct {
	CareerID         string            `json:"careerId"`
	Title            string            `json:"title,omitempty"`
	MatchPercentage  int               `json:"matchPercentage"`
	InterestScore    int               `json:"interestScore"`
	ValueScore       int               `json:"valueScore"`
	EnvironmentScore int               `json:"environmentScore"`
	TopRIASEC        []RIASECDimension `json:"topRIASEC"`
	MatchReasons     []string          `json:"matchReasons"`
}

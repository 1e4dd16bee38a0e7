// internal/models/profile.go
package models

// RIASECDimension names one of the six Holland interest dimensions.
type RIASECDimension string

const (
	Realistic     RIASECDimension = "realistic"
	Investigative RIASECDimension = "investigative"
	Artistic      RIASECDimension = "artistic"
	Social        RIASECDimension = "social"
	Enterprising  RIASECDimension = "enterprising"
	Conventional  RIASECDimension = "conventional"
)

// RIASECDimensions is the declaration order used for tie-breaking.
var RIASECDimensions = []RIASECDimension{
	Realistic, Investigative, Artistic, Social, Enterprising, Conventional,
}

// Label returns the capitalized display name.
func (d RIASECDimension) Label() string {
	switch d {
	case Realistic:
		return "Realistic"
	case Investigative:
		return "Investigative"
	case Artistic:
		return "Artistic"
	case Social:
		return "Social"
	case Enterprising:
		return "Enterprising"
	case Conventional:
		return "Conventional"
	}
	return string(d)
}

// ValueDimension names one of the six work-value dimensions.
type ValueDimension string

const (
	Impact    ValueDimension = "impact"
	Income    ValueDimension = "income"
	Autonomy  ValueDimension = "autonomy"
	Balance   ValueDimension = "balance"
	Growth    ValueDimension = "growth"
	Stability ValueDimension = "stability"
)

var ValueDimensions = []ValueDimension{
	Impact, Income, Autonomy, Balance, Growth, Stability,
}

type TeamSize string

const (
	TeamSolo        TeamSize = "solo"
	TeamIndependent TeamSize = "independent"
	TeamSmall       TeamSize = "small"
	TeamLarge       TeamSize = "large"
	TeamLeader      TeamSize = "leader"
	TeamMinimal     TeamSize = "minimal"
)

type Pace string

const (
	PaceSteady         Pace = "steady"
	PaceModerate       Pace = "moderate"
	PaceIntense        Pace = "intense"
	PaceFlexible       Pace = "flexible"
	PaceDeadlineDriven Pace = "deadline-driven"
	PacePredictable    Pace = "predictable"
)

// RIASECProfile holds additive interest scores. The zero value has all six
// dimensions present at 0.
type RIASECProfile struct {
	Realistic     float64 `json:"realistic"`
	Investigative float64 `json:"investigative"`
	Artistic      float64 `json:"artistic"`
	Social        float64 `json:"social"`
	Enterprising  float64 `json:"enterprising"`
	Conventional  float64 `json:"conventional"`
}

// Get returns the score for d, or 0 for an unknown dimension.
func (p RIASECProfile) Get(d RIASECDimension) float64 {
	switch d {
	case Realistic:
		return p.Realistic
	case Investigative:
		return p.Investigative
	case Artistic:
		return p.Artistic
	case Social:
		return p.Social
	case Enterprising:
		return p.Enterprising
	case Conventional:
		return p.Conventional
	}
	return 0
}

// Add increments d by delta. Unknown dimensions are ignored.
func (p *RIASECProfile) Add(d RIASECDimension, delta float64) {
	switch d {
	case Realistic:
		p.Realistic += delta
	case Investigative:
		p.Investigative += delta
	case Artistic:
		p.Artistic += delta
	case Social:
		p.Social += delta
	case Enterprising:
		p.Enterprising += delta
	case Conventional:
		p.Conventional += delta
	}
}

// Vector returns the profile keyed by dimension name.
func (p RIASECProfile) Vector() map[string]float64 {
	out := make(map[string]float64, len(RIASECDimensions))
	for _, d := range RIASECDimensions {
		out[string(d)] = p.Get(d)
	}
	return out
}

// ValueProfile holds additive work-value scores.
type ValueProfile struct {
	Impact    float64 `json:"impact"`
	Income    float64 `json:"income"`
	Autonomy  float64 `json:"autonomy"`
	Balance   float64 `json:"balance"`
	Growth    float64 `json:"growth"`
	Stability float64 `json:"stability"`
}

func (p ValueProfile) Get(d ValueDimension) float64 {
	switch d {
	case Impact:
		return p.Impact
	case Income:
		return p.Income
	case Autonomy:
		return p.Autonomy
	case Balance:
		return p.Balance
	case Growth:
		return p.Growth
	case Stability:
		return p.Stability
	}
	return 0
}

func (p *ValueProfile) Add(d ValueDimension, delta float64) {
	switch d {
	case Impact:
		p.Impact += delta
	case Income:
		p.Income += delta
	case Autonomy:
		p.Autonomy += delta
	case Balance:
		p.Balance += delta
	case Growth:
		p.Growth += delta
	case Stability:
		p.Stability += delta
	}
}

func (p ValueProfile) Vector() map[string]float64 {
	out := make(map[string]float64, len(ValueDimensions))
	for _, d := range ValueDimensions {
		out[string(d)] = p.Get(d)
	}
	return out
}

// EnvironmentPreference is categorical and set by overwrite, never accumulated.
type EnvironmentPreference struct {
	TeamSize TeamSize `json:"teamSize" validate:"omitempty,oneof=solo independent small large leader minimal"`
	Pace     Pace     `json:"pace" validate:"omitempty,oneof=steady moderate intense flexible deadline-driven predictable"`
}

// StudentProfile is built once per assessment submission and treated as immutable.
type StudentProfile struct {
	RIASEC      RIASECProfile         `json:"riasec"`
	Values      ValueProfile          `json:"values"`
	Environment EnvironmentPreference `json:"environment"`
}

// internal/models/quiz.go
package models

// QuizDimension names one of the six behavioral dimensions scored by reality quizzes.
type QuizDimension string

const (
	Technical       QuizDimension = "technical"
	Pressure        QuizDimension = "pressure"
	Collaboration   QuizDimension = "collaboration"
	Creativity      QuizDimension = "creativity"
	Independence    QuizDimension = "independence"
	WorkLifeBalance QuizDimension = "workLifeBalance"
)

var QuizDimensions = []QuizDimension{
	Technical, Pressure, Collaboration, Creativity, Independence, WorkLifeBalance,
}

type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// Option is one selectable answer. Scores is partial: unlisted dimensions contribute nothing.
type Option struct {
	Text    string                    `json:"text" yaml:"text" validate:"required"`
	Insight string                    `json:"insight,omitempty" yaml:"insight"`
	Scores  map[QuizDimension]float64 `json:"scores" yaml:"scores"`
}

type Question struct {
	ID            string   `json:"id" yaml:"id" validate:"required"`
	Scenario      string   `json:"scenario" yaml:"scenario" validate:"required"`
	Options       []Option `json:"options" yaml:"options" validate:"min=2,max=6,dive"`
	CorrectAnswer *int     `json:"correctAnswer,omitempty" yaml:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty" yaml:"explanation"`
	RealityNote   string   `json:"realityNote,omitempty" yaml:"realityNote"`
}

// GuideEntry bounds one dimension for normalization and weights it in the readiness mean.
type GuideEntry struct {
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Weight float64 `json:"weight" yaml:"weight" validate:"gte=0"`
}

type ResultTier struct {
	Min     int    `json:"min" yaml:"min" validate:"gte=0,lte=100"`
	Title   string `json:"title" yaml:"title" validate:"required"`
	Message string `json:"message" yaml:"message"`
}

type ResultTiers struct {
	High   ResultTier `json:"high" yaml:"high"`
	Medium ResultTier `json:"medium" yaml:"medium"`
	Low    ResultTier `json:"low" yaml:"low"`
}

// Quiz is authored, read-only content. One quiz exists per career.
type Quiz struct {
	CareerID     string                       `json:"careerId" yaml:"careerId" validate:"required"`
	Version      int                          `json:"version" yaml:"version"`
	Title        string                       `json:"title" yaml:"title" validate:"required"`
	Description  string                       `json:"description" yaml:"description"`
	Duration     string                       `json:"duration" yaml:"duration"`
	Questions    []Question                   `json:"questions" yaml:"questions" validate:"min=1,dive"`
	ScoringGuide map[QuizDimension]GuideEntry `json:"scoringGuide" yaml:"scoringGuide" validate:"dive"`
	Results      ResultTiers                  `json:"results" yaml:"results"`
}

// QuizResult is computed once when a session completes.
type QuizResult struct {
	Scores              map[QuizDimension]int `json:"scores"`
	ReadinessPercentage int                   `json:"readinessPercentage"`
	ResultTier          Tier                  `json:"resultTier"`
	Title               string                `json:"title"`
	Message             string                `json:"message"`
}

// internal/workers/assessment/match-careers/models.go
package matchcareers

import "career-workers/internal/models"

// Input carries either raw assessment answers or an already built profile.
// When both are present the profile wins.
type Input struct {
	StudentID string                 `json:"studentId" validate:"required"`
	Answers   map[string]int         `json:"answers,omitempty"`
	Profile   *models.StudentProfile `json:"profile,omitempty" validate:"-"`
	Limit     int                    `json:"limit,omitempty" validate:"gte=0"`
	Category  string                 `json:"category,omitempty"`
	Persist   bool                   `json:"persist,omitempty"`
}

type Output struct {
	StudentID    string                   `json:"studentId"`
	Matches      []models.MatchResult     `json:"matches"`
	TopRIASEC    []models.RIASECDimension `json:"topRIASEC"`
	CatalogSize  int                      `json:"catalogSize"`
	AssessmentID string                   `json:"assessmentId,omitempty"`
}

var inputSchema = []byte(`{
  "type": "object",
  "required": ["studentId"],
  "anyOf": [
    {"required": ["answers"]},
    {"required": ["profile"]}
  ],
  "properties": {
    "studentId": {"type": "string", "minLength": 1},
    "answers": {
      "type": "object",
      "additionalProperties": {"type": "integer"}
    },
    "profile": {
      "type": "object",
      "required": ["riasec", "values", "environment"],
      "properties": {
        "riasec": {"type": "object", "additionalProperties": {"type": "number"}},
        "values": {"type": "object", "additionalProperties": {"type": "number"}},
        "environment": {"type": "object"}
      }
    },
    "limit": {"type": "integer", "minimum": 0},
    "category": {"type": "string"},
    "persist": {"type": "boolean"}
  }
}`)

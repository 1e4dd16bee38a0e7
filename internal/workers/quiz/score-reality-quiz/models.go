// internal/workers/quiz/score-reality-quiz/models.go
package scorerealityquiz

import "career-workers/internal/models"

type Input struct {
	StudentID string         `json:"studentId" validate:"required"`
	CareerID  string         `json:"careerId" validate:"required"`
	Answers   map[string]int `json:"answers" validate:"required"`
}

type Output struct {
	StudentID     string            `json:"studentId"`
	CareerID      string            `json:"careerId"`
	QuizVersion   int               `json:"quizVersion"`
	Result        models.QuizResult `json:"result"`
	AnsweredCount int               `json:"answeredCount"`
	QuestionCount int               `json:"questionCount"`
	ResultID      string            `json:"resultId,omitempty"`
	Saved         bool              `json:"saved"`

	// PreviousReadiness is the student's last stored readiness for this career.
	PreviousReadiness *int `json:"previousReadiness,omitempty"`
}

var inputSchema = []byte(`{
  "type": "object",
  "required": ["studentId", "careerId", "answers"],
  "properties": {
    "studentId": {"type": "string", "minLength": 1},
    "careerId": {"type": "string", "minLength": 1},
    "answers": {
      "type": "object",
      "additionalProperties": {"type": "integer"}
    }
  }
}`)

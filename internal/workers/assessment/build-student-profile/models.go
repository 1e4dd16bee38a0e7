// internal/workers/assessment/build-student-profile/models.go
package buildstudentprofile

import "career-workers/internal/models"

type Input struct {
	StudentID string         `json:"studentId" validate:"required"`
	Answers   map[string]int `json:"answers" validate:"required"`
}

type Output struct {
	StudentID string                   `json:"studentId"`
	Profile   models.StudentProfile    `json:"profile"`
	TopRIASEC []models.RIASECDimension `json:"topRIASEC"`
	TopValue  models.ValueDimension    `json:"topValue"`
}

var inputSchema = []byte(`{
  "type": "object",
  "required": ["studentId", "answers"],
  "properties": {
    "studentId": {"type": "string", "minLength": 1},
    "answers": {
      "type": "object",
      "additionalProperties": {"type": "integer"}
    }
  }
}`)

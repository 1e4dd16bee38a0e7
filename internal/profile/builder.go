// Package profile turns assessment answers into a three-part student profile.
package profile

import (
	"sort"

	"career-workers/internal/models"
)

const (
	DefaultTeamSize = models.TeamSmall
	DefaultPace     = models.PaceModerate
)

// Answer is one (question, selected option) pair in submission order.
type Answer struct {
	QuestionID string `json:"questionId"`
	Option     int    `json:"option"`
}

// Build scores an answer map. Answers are applied in assessment order, so
// when several answers set the environment the later question wins.
func Build(answers map[string]int) models.StudentProfile {
	seq := make([]Answer, 0, len(answers))
	for _, q := range AssessmentQuestions {
		if opt, ok := answers[q.ID]; ok {
			seq = append(seq, Answer{QuestionID: q.ID, Option: opt})
		}
	}
	return BuildFromSequence(seq)
}

// BuildFromSequence scores answers in the given order. Unknown questions and
// out-of-range options contribute nothing.
func BuildFromSequence(answers []Answer) models.StudentProfile {
	p := models.StudentProfile{
		Environment: models.EnvironmentPreference{
			TeamSize: DefaultTeamSize,
			Pace:     DefaultPace,
		},
	}

	for _, a := range answers {
		c, ok := Contribution(a.QuestionID, a.Option)
		if !ok {
			continue
		}
		for _, d := range c.RIASEC {
			p.RIASEC.Add(d.Dimension, d.Points)
		}
		for _, d := range c.Values {
			p.Values.Add(d.Dimension, d.Points)
		}
		if c.TeamSize != nil {
			p.Environment.TeamSize = *c.TeamSize
		}
		if c.Pace != nil {
			p.Environment.Pace = *c.Pace
		}
	}

	return p
}

// Top3RIASEC returns the three highest-scoring dimensions. Ties keep
// declaration order.
func Top3RIASEC(p models.RIASECProfile) []models.RIASECDimension {
	dims := make([]models.RIASECDimension, len(models.RIASECDimensions))
	copy(dims, models.RIASECDimensions)

	sort.SliceStable(dims, func(i, j int) bool {
		return p.Get(dims[i]) > p.Get(dims[j])
	})

	return dims[:3]
}

// TopValue returns the highest-scoring value dimension, first in declaration
// order on ties.
func TopValue(p models.ValueProfile) models.ValueDimension {
	best := models.ValueDimensions[0]
	for _, d := range models.ValueDimensions[1:] {
		if p.Get(d) > p.Get(best) {
			best = d
		}
	}
	return best
}

package quizbank

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-workers/internal/models"
	"career-workers/internal/realityquiz"
)

const minimalQuiz = `careerId: test-career
version: 1
title: Test
questions:
  - id: one
    scenario: Pick one.
    options:
      - text: A
        scores: {technical: 10}
      - text: B
        scores: {pressure: 5}
    correctAnswer: 0
scoringGuide:
  technical: {min: 0, max: 10, weight: 1}
results:
  high: {min: 80, title: High}
  medium: {min: 40, title: Medium}
  low: {min: 0, title: Low}
`

func TestEmbedded(t *testing.T) {
	b, err := Embedded()
	require.NoError(t, err)

	list := b.List()
	require.Len(t, list, 3)
	assert.Equal(t, "graphic-designer", list[0].CareerID)
	assert.Equal(t, "registered-nurse", list[1].CareerID)
	assert.Equal(t, "software-engineer", list[2].CareerID)
	for _, s := range list {
		assert.NotEmpty(t, s.Title)
		assert.Positive(t, s.Questions)
	}

	q, err := b.Get("software-engineer")
	require.NoError(t, err)
	assert.Equal(t, 5, len(q.Questions))
	assert.Equal(t, 0, q.Results.Low.Min)
}

func TestEmbedded_EveryAnswerCombinationScoresInRange(t *testing.T) {
	b, err := Embedded()
	require.NoError(t, err)

	for _, s := range b.List() {
		q, err := b.Get(s.CareerID)
		require.NoError(t, err)

		t.Run(s.CareerID, func(t *testing.T) {
			for opt := 0; opt < 6; opt++ {
				answers := map[string]int{}
				for _, question := range q.Questions {
					answers[question.ID] = opt % len(question.Options)
				}
				res := realityquiz.Score(*q, answers)
				assert.GreaterOrEqual(t, res.ReadinessPercentage, 0)
				assert.LessOrEqual(t, res.ReadinessPercentage, 100)
				assert.NotEmpty(t, res.Title)
			}
		})
	}
}

func TestGet_NotFound(t *testing.T) {
	b, err := Embedded()
	require.NoError(t, err)

	_, err = b.Get("astronaut")
	assert.True(t, errors.Is(err, ErrQuizNotFound))
}

func TestParse(t *testing.T) {
	q, err := Parse([]byte(minimalQuiz))
	require.NoError(t, err)

	assert.Equal(t, "test-career", q.CareerID)
	require.Len(t, q.Questions, 1)
	assert.Equal(t, 10.0, q.Questions[0].Options[0].Scores[models.Technical])
	require.NotNil(t, q.Questions[0].CorrectAnswer)
	assert.Equal(t, 0, *q.Questions[0].CorrectAnswer)
	assert.Equal(t, models.GuideEntry{Min: 0, Max: 10, Weight: 1}, q.ScoringGuide[models.Technical])
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		message string
	}{
		{
			name:   "not yaml",
			mutate: func(string) string { return "careerId: [unclosed" },
		},
		{
			name:    "missing results",
			mutate:  func(s string) string { return s[:strings.Index(s, "results:")] },
			message: "results",
		},
		{
			name: "single option",
			mutate: func(s string) string {
				return strings.Replace(s, "      - text: B\n        scores: {pressure: 5}\n", "", 1)
			},
			message: "options",
		},
		{
			name:    "unknown score dimension",
			mutate:  func(s string) string { return strings.Replace(s, "{pressure: 5}", "{charisma: 5}", 1) },
			message: "charisma",
		},
		{
			name:    "low tier not zero",
			mutate:  func(s string) string { return strings.Replace(s, "low: {min: 0", "low: {min: 10", 1) },
			message: "results.low.min must be 0",
		},
		{
			name:    "tiers out of order",
			mutate:  func(s string) string { return strings.Replace(s, "medium: {min: 40", "medium: {min: 90", 1) },
			message: "high >= medium >= low",
		},
		{
			name:    "correct answer out of range",
			mutate:  func(s string) string { return strings.Replace(s, "correctAnswer: 0", "correctAnswer: 4", 1) },
			message: "correctAnswer 4 out of range",
		},
		{
			name: "inverted guide",
			mutate: func(s string) string {
				return strings.Replace(s, "technical: {min: 0, max: 10, weight: 1}", "technical: {min: 10, max: 0, weight: 1}", 1)
			},
			message: "max 0 below min 10",
		},
		{
			name:    "bad career id",
			mutate:  func(s string) string { return strings.Replace(s, "careerId: test-career", "careerId: Test Career", 1) },
			message: "careerId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.mutate(minimalQuiz)))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDefinition), "got %v", err)
			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestValidate_DuplicateQuestionIDs(t *testing.T) {
	q, err := Parse([]byte(minimalQuiz))
	require.NoError(t, err)

	q.Questions = append(q.Questions, q.Questions[0])

	err = Validate(q)
	assert.ErrorIs(t, err, ErrInvalidDefinition)
	assert.Contains(t, err.Error(), `duplicate question id "one"`)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadDir(t *testing.T) {
	t.Run("loads yaml and yml files", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.yaml", minimalQuiz)
		writeFile(t, dir, "b.yml", strings.Replace(minimalQuiz, "test-career", "other-career", 1))
		writeFile(t, dir, "notes.txt", "ignored")

		b, err := LoadDir(dir)
		require.NoError(t, err)
		assert.Equal(t, 2, b.Len())
	})

	t.Run("duplicate career id", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.yaml", minimalQuiz)
		writeFile(t, dir, "b.yaml", minimalQuiz)

		_, err := LoadDir(dir)
		assert.ErrorIs(t, err, ErrInvalidDefinition)
		assert.Contains(t, err.Error(), "duplicate careerId")
	})

	t.Run("reports every bad file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.yaml", "title: nope")
		writeFile(t, dir, "b.yaml", "careerId: [")

		_, err := LoadDir(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "a.yaml")
		assert.Contains(t, err.Error(), "b.yaml")
	})

	t.Run("missing dir", func(t *testing.T) {
		_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})
}

func TestMerge(t *testing.T) {
	base, err := Embedded()
	require.NoError(t, err)

	override, err := Parse([]byte(strings.Replace(minimalQuiz, "test-career", "software-engineer", 1)))
	require.NoError(t, err)
	extra, err := New(override)
	require.NoError(t, err)

	merged := base.Merge(extra)

	q, err := merged.Get("software-engineer")
	require.NoError(t, err)
	assert.Equal(t, "Test", q.Title)
	assert.Equal(t, base.Len(), merged.Len())

	orig, err := base.Get("software-engineer")
	require.NoError(t, err)
	assert.NotEqual(t, "Test", orig.Title, "merge must not modify the receiver")
}

func TestNew_RejectsInvalid(t *testing.T) {
	_, err := New(&models.Quiz{CareerID: "x"})
	assert.ErrorIs(t, err, ErrInvalidDefinition)

	_, err = New(nil)
	assert.ErrorIs(t, err, ErrInvalidDefinition)
}

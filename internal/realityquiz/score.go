// Package realityquiz runs scenario quizzes and scores career readiness.
package realityquiz

import (
	"math"

	"career-workers/internal/models"
)

// ZeroRangeScore is used for a dimension whose guide has max == min.
const ZeroRangeScore = 50.0

// Score accumulates option deltas for every answered question, normalizes each
// dimension against the scoring guide and selects a result tier. Unknown
// question ids and out-of-range options are ignored.
func Score(quiz models.Quiz, answers map[string]int) models.QuizResult {
	raw := make(map[models.QuizDimension]float64, len(models.QuizDimensions))
	for _, q := range quiz.Questions {
		opt, ok := answers[q.ID]
		if !ok || opt < 0 || opt >= len(q.Options) {
			continue
		}
		for d, delta := range q.Options[opt].Scores {
			raw[d] += delta
		}
	}

	scores := make(map[models.QuizDimension]int, len(models.QuizDimensions))
	var weighted, totalWeight float64
	for _, d := range models.QuizDimensions {
		g := quiz.ScoringGuide[d]
		n := Normalize(raw[d], g)
		scores[d] = int(math.Round(n))
		weighted += n * g.Weight
		totalWeight += g.Weight
	}

	readiness := 0
	if totalWeight > 0 {
		readiness = int(math.Round(weighted / totalWeight))
	}
	readiness = clampInt(readiness, 0, 100)

	tier, rt := SelectTier(quiz.Results, readiness)

	return models.QuizResult{
		Scores:              scores,
		ReadinessPercentage: readiness,
		ResultTier:          tier,
		Title:               rt.Title,
		Message:             rt.Message,
	}
}

// Normalize maps raw onto 0..100 using the guide's min and max.
func Normalize(raw float64, g models.GuideEntry) float64 {
	if g.Max == g.Min {
		return ZeroRangeScore
	}
	n := (raw - g.Min) / (g.Max - g.Min) * 100
	return math.Min(math.Max(n, 0), 100)
}

// SelectTier checks high, then medium, then low and takes the first whose
// threshold is met. Low is returned when nothing qualifies.
func SelectTier(results models.ResultTiers, readiness int) (models.Tier, models.ResultTier) {
	switch {
	case readiness >= results.High.Min:
		return models.TierHigh, results.High
	case readiness >= results.Medium.Min:
		return models.TierMedium, results.Medium
	default:
		return models.TierLow, results.Low
	}
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Package matcher ranks careers against a student profile.
package matcher

import (
	"context"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"career-workers/internal/models"
	"career-workers/internal/profile"
	"career-workers/internal/reasons"
	"career-workers/internal/similarity"
)

const (
	DefaultLimit = 10

	InterestWeight    = 0.5
	ValueWeight       = 0.3
	EnvironmentWeight = 0.2
)

type Options struct {
	// Parallelism bounds the number of careers scored concurrently. Values
	// below 2 score sequentially.
	Parallelism int
}

// Match scores one career. A career missing any authored profile yields a
// zero result with MissingDataReason. The only error is a vector key
// mismatch, which cannot happen with the typed profiles in models.
func Match(student models.StudentProfile, career models.Career) (models.MatchResult, error) {
	result := models.MatchResult{
		CareerID:  career.ID,
		Title:     career.Title,
		TopRIASEC: profile.Top3RIASEC(student.RIASEC),
	}

	if !career.Scoreable() {
		result.MatchReasons = []string{reasons.MissingDataReason}
		return result, nil
	}

	interest, err := similarity.CosineSimilarity(student.RIASEC.Vector(), career.InterestProfile.Vector())
	if err != nil {
		return models.MatchResult{}, fmt.Errorf("career %s interest profile: %w", career.ID, err)
	}
	value, err := similarity.CosineSimilarity(student.Values.Vector(), career.ValueProfile.Vector())
	if err != nil {
		return models.MatchResult{}, fmt.Errorf("career %s value profile: %w", career.ID, err)
	}
	env := EnvironmentFit(student.Environment, *career.WorkEnvironment)

	result.MatchPercentage = percent(InterestWeight*interest + ValueWeight*value + EnvironmentWeight*env)
	result.InterestScore = percent(interest)
	result.ValueScore = percent(value)
	result.EnvironmentScore = percent(env)

	result.MatchReasons = reasons.Generate(student, career)
	if len(result.MatchReasons) == 0 {
		result.MatchReasons = []string{reasons.FallbackReason}
	}

	return result, nil
}

// EnvironmentFit awards half credit each for a matching team size and pace.
func EnvironmentFit(pref models.EnvironmentPreference, env models.WorkEnvironment) float64 {
	fit := 0.0
	if pref.TeamSize == env.TeamSize {
		fit += 0.5
	}
	if pref.Pace == env.Pace {
		fit += 0.5
	}
	return fit
}

// MatchStudentToCareers scores every career, sorts by match percentage
// (ties keep catalog order) and truncates to limit. A non-positive limit
// means DefaultLimit.
func MatchStudentToCareers(ctx context.Context, student models.StudentProfile, careers []models.Career, limit int, opts Options) ([]models.MatchResult, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	results := make([]models.MatchResult, len(careers))

	if opts.Parallelism < 2 {
		for i, c := range careers {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			r, err := Match(student, c)
			if err != nil {
				return nil, err
			}
			results[i] = r
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Parallelism)
		for i := range careers {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				r, err := Match(student, careers[i])
				if err != nil {
					return err
				}
				results[i] = r
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchPercentage > results[j].MatchPercentage
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func percent(x float64) int {
	p := int(math.Round(x * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Package results persists quiz results and assessment snapshots.
package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"career-workers/internal/common/logger"
	"career-workers/internal/models"
)

const (
	insertQuizResultQuery = `INSERT INTO quiz_results (id, student_id, career_id, quiz_version, scores, readiness_percentage, result_tier, answers) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	insertAssessmentQuery = `INSERT INTO assessments (id, student_id, profile, matches) VALUES ($1, $2, $3, $4)`
	latestQuizResultQuery = `SELECT id, scores, readiness_percentage, result_tier FROM quiz_results WHERE student_id = $1 AND career_id = $2 ORDER BY created_at DESC LIMIT 1`
)

// QuizSubmission is one completed quiz attempt.
type QuizSubmission struct {
	StudentID   string
	CareerID    string
	QuizVersion int
	Answers     map[string]int
	Result      models.QuizResult
}

// StoredQuizResult is the persisted subset read back for a student.
type StoredQuizResult struct {
	ID                  string
	Scores              map[models.QuizDimension]int
	ReadinessPercentage int
	ResultTier          models.Tier
}

// Store writes to the quiz_results and assessments tables.
type Store struct {
	db     *sql.DB
	logger logger.Logger
	newID  func() string
}

func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "results-store"}),
		newID:  uuid.NewString,
	}
}

// SaveQuizResult inserts a completed attempt and returns its id.
func (s *Store) SaveQuizResult(ctx context.Context, sub QuizSubmission) (string, error) {
	scores, err := json.Marshal(sub.Result.Scores)
	if err != nil {
		return "", fmt.Errorf("encode scores: %w", err)
	}
	answers, err := json.Marshal(sub.Answers)
	if err != nil {
		return "", fmt.Errorf("encode answers: %w", err)
	}

	id := s.newID()
	if _, err := s.db.ExecContext(ctx, insertQuizResultQuery,
		id, sub.StudentID, sub.CareerID, sub.QuizVersion,
		scores, sub.Result.ReadinessPercentage, string(sub.Result.ResultTier), answers,
	); err != nil {
		return "", fmt.Errorf("insert quiz result: %w", err)
	}

	s.logger.Info("quiz result saved", map[string]interface{}{
		"resultId":  id,
		"studentId": sub.StudentID,
		"careerId":  sub.CareerID,
		"tier":      sub.Result.ResultTier,
	})
	return id, nil
}

// SaveAssessment snapshots a student profile with the matches it produced.
func (s *Store) SaveAssessment(ctx context.Context, studentID string, profile models.StudentProfile, matches []models.MatchResult) (string, error) {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("encode profile: %w", err)
	}
	matchesJSON, err := json.Marshal(matches)
	if err != nil {
		return "", fmt.Errorf("encode matches: %w", err)
	}

	id := s.newID()
	if _, err := s.db.ExecContext(ctx, insertAssessmentQuery, id, studentID, profileJSON, matchesJSON); err != nil {
		return "", fmt.Errorf("insert assessment: %w", err)
	}

	s.logger.Info("assessment saved", map[string]interface{}{
		"assessmentId": id,
		"studentId":    studentID,
		"matchCount":   len(matches),
	})
	return id, nil
}

// LatestQuizResult returns the most recent attempt, or sql.ErrNoRows.
func (s *Store) LatestQuizResult(ctx context.Context, studentID, careerID string) (*StoredQuizResult, error) {
	var (
		out    StoredQuizResult
		scores []byte
		tier   string
	)
	err := s.db.QueryRowContext(ctx, latestQuizResultQuery, studentID, careerID).
		Scan(&out.ID, &scores, &out.ReadinessPercentage, &tier)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(scores, &out.Scores); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	out.ResultTier = models.Tier(tier)
	return &out, nil
}

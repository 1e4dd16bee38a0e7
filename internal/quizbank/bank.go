// Package quizbank loads and validates authored reality quiz definitions.
package quizbank

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"career-workers/internal/common/validation"
	"career-workers/internal/models"
)

//go:embed definitions/*.yaml
var definitions embed.FS

//go:embed schema.json
var schemaJSON []byte

var (
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrInvalidDefinition = errors.New("invalid quiz definition")
)

// Summary is the listing view of a quiz.
type Summary struct {
	CareerID    string `json:"careerId"`
	Version     int    `json:"version"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Questions   int    `json:"questions"`
}

// Bank is a read-only set of quizzes keyed by career id. Safe for concurrent use.
type Bank struct {
	quizzes map[string]*models.Quiz
}

// Embedded returns the quizzes compiled into the binary.
func Embedded() (*Bank, error) {
	return Load(definitions, "definitions")
}

// LoadDir reads every *.yaml and *.yml file in dir.
func LoadDir(dir string) (*Bank, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("quiz definitions dir: %w", err)
	}
	return Load(os.DirFS(dir), ".")
}

// Load parses all YAML files directly under root. Every file is checked and
// all failures are reported together.
func Load(fsys fs.FS, root string) (*Bank, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := fs.Glob(fsys, path.Join(root, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	b := &Bank{quizzes: make(map[string]*models.Quiz, len(files))}
	var errs []error
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		q, err := Parse(data)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		if _, dup := b.quizzes[q.CareerID]; dup {
			errs = append(errs, fmt.Errorf("%s: %w: duplicate careerId %q", name, ErrInvalidDefinition, q.CareerID))
			continue
		}
		b.quizzes[q.CareerID] = q
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return b, nil
}

// New builds a bank from in-memory quizzes, validating each.
func New(quizzes ...*models.Quiz) (*Bank, error) {
	b := &Bank{quizzes: make(map[string]*models.Quiz, len(quizzes))}
	for _, q := range quizzes {
		if err := Validate(q); err != nil {
			return nil, err
		}
		b.quizzes[q.CareerID] = q
	}
	return b, nil
}

// Merge returns a new bank with other's quizzes replacing b's on the same career id.
func (b *Bank) Merge(other *Bank) *Bank {
	out := &Bank{quizzes: make(map[string]*models.Quiz, len(b.quizzes)+len(other.quizzes))}
	for id, q := range b.quizzes {
		out.quizzes[id] = q
	}
	for id, q := range other.quizzes {
		out.quizzes[id] = q
	}
	return out
}

func (b *Bank) Get(careerID string) (*models.Quiz, error) {
	q, ok := b.quizzes[careerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrQuizNotFound, careerID)
	}
	return q, nil
}

// List returns summaries ordered by career id.
func (b *Bank) List() []Summary {
	out := make([]Summary, 0, len(b.quizzes))
	for _, q := range b.quizzes {
		out = append(out, Summary{
			CareerID:    q.CareerID,
			Version:     q.Version,
			Title:       q.Title,
			Description: q.Description,
			Duration:    q.Duration,
			Questions:   len(q.Questions),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CareerID < out[j].CareerID })
	return out
}

func (b *Bank) Len() int { return len(b.quizzes) }

// Parse decodes one YAML definition, checks it against the JSON schema and
// then against the invariants in Validate.
func Parse(data []byte) (*models.Quiz, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}

	res, err := validation.ValidateDocument(schemaJSON, doc)
	if err != nil {
		return nil, err
	}
	if !res.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDefinition, strings.Join(res.GetErrorMessages(), "; "))
	}

	var q models.Quiz
	if err := yaml.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	if err := Validate(&q); err != nil {
		return nil, err
	}
	return &q, nil
}

// Validate enforces the structural rules a quiz must satisfy to be scored.
func Validate(q *models.Quiz) error {
	if q == nil {
		return fmt.Errorf("%w: nil quiz", ErrInvalidDefinition)
	}
	if err := validation.ValidateStruct(q).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}

	var problems []string
	known := make(map[models.QuizDimension]bool, len(models.QuizDimensions))
	for _, d := range models.QuizDimensions {
		known[d] = true
	}

	seen := make(map[string]bool, len(q.Questions))
	for _, question := range q.Questions {
		if seen[question.ID] {
			problems = append(problems, fmt.Sprintf("duplicate question id %q", question.ID))
		}
		seen[question.ID] = true

		if ca := question.CorrectAnswer; ca != nil && (*ca < 0 || *ca >= len(question.Options)) {
			problems = append(problems, fmt.Sprintf("question %q: correctAnswer %d out of range", question.ID, *ca))
		}
		for i, opt := range question.Options {
			for d := range opt.Scores {
				if !known[d] {
					problems = append(problems, fmt.Sprintf("question %q option %d: unknown dimension %q", question.ID, i, d))
				}
			}
		}
	}

	for d, g := range q.ScoringGuide {
		if !known[d] {
			problems = append(problems, fmt.Sprintf("scoringGuide: unknown dimension %q", d))
		}
		if g.Max < g.Min {
			problems = append(problems, fmt.Sprintf("scoringGuide.%s: max %v below min %v", d, g.Max, g.Min))
		}
	}

	r := q.Results
	if r.Low.Min != 0 {
		problems = append(problems, "results.low.min must be 0")
	}
	if r.High.Min < r.Medium.Min || r.Medium.Min < r.Low.Min {
		problems = append(problems, "results thresholds must satisfy high >= medium >= low")
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("%w: %s: %s", ErrInvalidDefinition, q.CareerID, strings.Join(problems, "; "))
	}
	return nil
}

package realityquiz

import (
	"errors"
	"fmt"

	"career-workers/internal/models"
)

var (
	ErrInvalidTransition = errors.New("invalid quiz transition")
	ErrOptionOutOfRange  = errors.New("option out of range")
	ErrNoQuestions       = errors.New("quiz has no questions")
)

type Phase int

const (
	NotStarted Phase = iota
	Answering
	Explaining
	Completed
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case Answering:
		return "answering"
	case Explaining:
		return "explaining"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Session is an immutable quiz stepper. Every transition returns a new
// Session and leaves the receiver untouched, so callers can keep history.
type Session struct {
	quiz     *models.Quiz
	phase    Phase
	index    int
	selected int
	answers  map[string]int
	result   *models.QuizResult
}

// Reveal is what the student sees while a selection is being explained.
type Reveal struct {
	Question models.Question
	Selected int
	Option   models.Option
	// Correct is nil when the question has no single right answer.
	Correct *bool
}

func NewSession(quiz *models.Quiz) Session {
	return Session{
		quiz:     quiz,
		phase:    NotStarted,
		selected: -1,
		answers:  map[string]int{},
	}
}

func (s Session) Quiz() *models.Quiz { return s.quiz }
func (s Session) Phase() Phase       { return s.phase }
func (s Session) Index() int         { return s.index }

// Selected returns the pending selection for the current question.
func (s Session) Selected() (int, bool) {
	return s.selected, s.selected >= 0
}

// Answers returns a copy of the recorded answers.
func (s Session) Answers() map[string]int {
	out := make(map[string]int, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// Current returns the question at the current index while answering or explaining.
func (s Session) Current() (models.Question, bool) {
	if s.phase != Answering && s.phase != Explaining {
		return models.Question{}, false
	}
	return s.quiz.Questions[s.index], true
}

func (s Session) Reveal() (Reveal, bool) {
	if s.phase != Explaining {
		return Reveal{}, false
	}
	q := s.quiz.Questions[s.index]
	r := Reveal{Question: q, Selected: s.selected, Option: q.Options[s.selected]}
	if q.CorrectAnswer != nil {
		ok := *q.CorrectAnswer == s.selected
		r.Correct = &ok
	}
	return r, true
}

// Result is available once the session is Completed.
func (s Session) Result() (models.QuizResult, bool) {
	if s.phase != Completed || s.result == nil {
		return models.QuizResult{}, false
	}
	return *s.result, true
}

func (s Session) Start() (Session, error) {
	if s.phase != NotStarted {
		return s, s.invalid("start")
	}
	if s.quiz == nil || len(s.quiz.Questions) == 0 {
		return s, ErrNoQuestions
	}
	s.phase = Answering
	s.index = 0
	s.selected = -1
	return s, nil
}

// Select picks an option for the current question and shows its explanation.
func (s Session) Select(option int) (Session, error) {
	if s.phase != Answering {
		return s, s.invalid("select")
	}
	q := s.quiz.Questions[s.index]
	if option < 0 || option >= len(q.Options) {
		return s, fmt.Errorf("%w: %d for question %s with %d options", ErrOptionOutOfRange, option, q.ID, len(q.Options))
	}
	s.phase = Explaining
	s.selected = option
	return s, nil
}

// Advance records the selection. After the last question the session is
// scored and moves to Completed.
func (s Session) Advance() (Session, error) {
	if s.phase != Explaining {
		return s, s.invalid("advance")
	}

	answers := s.Answers()
	answers[s.quiz.Questions[s.index].ID] = s.selected
	s.answers = answers

	if s.index == len(s.quiz.Questions)-1 {
		res := Score(*s.quiz, s.answers)
		s.phase = Completed
		s.selected = -1
		s.result = &res
		return s, nil
	}

	s.phase = Answering
	s.index++
	s.selected = -1
	return s, nil
}

// Back steps from Explaining(i) to Answering(i), or from Answering(i) to
// Explaining(i-1) with the recorded answer selected.
func (s Session) Back() (Session, error) {
	switch {
	case s.phase == Explaining:
		s.phase = Answering
		return s, nil
	case s.phase == Answering && s.index > 0:
		prev := s.quiz.Questions[s.index-1]
		opt, ok := s.answers[prev.ID]
		if !ok {
			return s, s.invalid("back")
		}
		s.phase = Explaining
		s.index--
		s.selected = opt
		return s, nil
	}
	return s, s.invalid("back")
}

// Retake discards all answers and returns to NotStarted.
func (s Session) Retake() Session {
	return NewSession(s.quiz)
}

func (s Session) invalid(action string) error {
	return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, action, s.phase)
}

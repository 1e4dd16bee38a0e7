package realityquiz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-workers/internal/models"
)

func play(t *testing.T, s Session, choices ...int) Session {
	t.Helper()
	var err error
	for _, c := range choices {
		s, err = s.Select(c)
		require.NoError(t, err)
		s, err = s.Advance()
		require.NoError(t, err)
	}
	return s
}

func TestSession_HappyPath(t *testing.T) {
	quiz := sampleQuiz()
	s := NewSession(&quiz)
	assert.Equal(t, NotStarted, s.Phase())

	s, err := s.Start()
	require.NoError(t, err)
	assert.Equal(t, Answering, s.Phase())
	assert.Equal(t, 0, s.Index())
	_, selected := s.Selected()
	assert.False(t, selected)

	s, err = s.Select(0)
	require.NoError(t, err)
	assert.Equal(t, Explaining, s.Phase())
	assert.Empty(t, s.Answers(), "selection is not recorded until advance")

	rev, ok := s.Reveal()
	require.True(t, ok)
	assert.Equal(t, "Dig into the logs", rev.Option.Text)
	require.NotNil(t, rev.Correct)
	assert.True(t, *rev.Correct)

	s, err = s.Advance()
	require.NoError(t, err)
	assert.Equal(t, Answering, s.Phase())
	assert.Equal(t, 1, s.Index())
	assert.Equal(t, map[string]int{"bug": 0}, s.Answers())

	s = play(t, s, 0, 0)
	assert.Equal(t, Completed, s.Phase())

	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, Score(quiz, map[string]int{"bug": 0, "review": 0, "design": 0}), res)
}

func TestSession_RevealWithoutCorrectAnswer(t *testing.T) {
	quiz := sampleQuiz()
	s, err := NewSession(&quiz).Start()
	require.NoError(t, err)
	s = play(t, s, 1)

	s, err = s.Select(2)
	require.NoError(t, err)

	rev, ok := s.Reveal()
	require.True(t, ok)
	assert.Nil(t, rev.Correct)
	assert.Equal(t, 2, rev.Selected)
}

func TestSession_InvalidTransitions(t *testing.T) {
	quiz := sampleQuiz()
	fresh := NewSession(&quiz)
	started, err := fresh.Start()
	require.NoError(t, err)
	explaining, err := started.Select(1)
	require.NoError(t, err)
	done := play(t, started, 0, 0, 0)

	tests := []struct {
		name string
		run  func() (Session, error)
	}{
		{"select before start", func() (Session, error) { return fresh.Select(0) }},
		{"advance before start", fresh.Advance},
		{"back before start", fresh.Back},
		{"start twice", started.Start},
		{"advance without selection", started.Advance},
		{"back from first question", started.Back},
		{"select while explaining", func() (Session, error) { return explaining.Select(0) }},
		{"select after completion", func() (Session, error) { return done.Select(0) }},
		{"advance after completion", done.Advance},
		{"back after completion", done.Back},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.run()
			assert.True(t, errors.Is(err, ErrInvalidTransition), "got %v", err)
		})
	}
}

func TestSession_SelectOutOfRange(t *testing.T) {
	quiz := sampleQuiz()
	s, err := NewSession(&quiz).Start()
	require.NoError(t, err)

	for _, opt := range []int{-1, 2, 10} {
		next, err := s.Select(opt)
		assert.ErrorIs(t, err, ErrOptionOutOfRange)
		assert.Equal(t, Answering, next.Phase())
	}
}

func TestSession_StartEmptyQuiz(t *testing.T) {
	_, err := NewSession(&models.Quiz{}).Start()
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestSession_Back(t *testing.T) {
	quiz := sampleQuiz()
	s, err := NewSession(&quiz).Start()
	require.NoError(t, err)
	s = play(t, s, 1)

	t.Run("explaining returns to answering with selection kept", func(t *testing.T) {
		e, err := s.Select(2)
		require.NoError(t, err)

		a, err := e.Back()
		require.NoError(t, err)
		assert.Equal(t, Answering, a.Phase())
		assert.Equal(t, 1, a.Index())
		_, hasExplanation := a.Reveal()
		assert.False(t, hasExplanation)
	})

	t.Run("answering returns to previous explanation prefilled", func(t *testing.T) {
		e, err := s.Back()
		require.NoError(t, err)
		assert.Equal(t, Explaining, e.Phase())
		assert.Equal(t, 0, e.Index())
		sel, ok := e.Selected()
		assert.True(t, ok)
		assert.Equal(t, 1, sel)

		// Re-answering from here overwrites the recorded choice.
		a, err := e.Back()
		require.NoError(t, err)
		a, err = a.Select(0)
		require.NoError(t, err)
		a, err = a.Advance()
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"bug": 0}, a.Answers())
	})

	t.Run("receiver is unchanged", func(t *testing.T) {
		assert.Equal(t, Answering, s.Phase())
		assert.Equal(t, 1, s.Index())
		assert.Equal(t, map[string]int{"bug": 1}, s.Answers())
	})
}

func TestSession_TransitionsDoNotShareAnswers(t *testing.T) {
	quiz := sampleQuiz()
	s, err := NewSession(&quiz).Start()
	require.NoError(t, err)

	first := play(t, s, 0)
	second := play(t, first, 1)

	assert.Equal(t, map[string]int{"bug": 0}, first.Answers())
	assert.Equal(t, map[string]int{"bug": 0, "review": 1}, second.Answers())

	leaked := second.Answers()
	leaked["bug"] = 1
	assert.Equal(t, 0, second.Answers()["bug"])
}

func TestSession_RetakeIsIdempotent(t *testing.T) {
	quiz := sampleQuiz()
	s, err := NewSession(&quiz).Start()
	require.NoError(t, err)
	done := play(t, s, 0, 2, 0)
	first, ok := done.Result()
	require.True(t, ok)

	again := done.Retake()
	assert.Equal(t, NotStarted, again.Phase())
	assert.Empty(t, again.Answers())
	_, ok = again.Result()
	assert.False(t, ok)

	again, err = again.Start()
	require.NoError(t, err)
	again = play(t, again, 0, 2, 0)

	second, ok := again.Result()
	require.True(t, ok)
	assert.Equal(t, first, second)
}

func TestSession_RetakeMidQuiz(t *testing.T) {
	quiz := sampleQuiz()
	s, err := NewSession(&quiz).Start()
	require.NoError(t, err)
	s = play(t, s, 1)
	s, err = s.Select(0)
	require.NoError(t, err)

	r := s.Retake()
	assert.Equal(t, NotStarted, r.Phase())
	assert.Empty(t, r.Answers())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "not_started", NotStarted.String())
	assert.Equal(t, "answering", Answering.String())
	assert.Equal(t, "explaining", Explaining.String())
	assert.Equal(t, "completed", Completed.String())
	assert.Equal(t, "phase(9)", Phase(9).String())
}

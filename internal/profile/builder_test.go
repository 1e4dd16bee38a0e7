package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-workers/internal/models"
)

// ==========================
// Scoring table
// ==========================

func TestAssessmentQuestions_Shape(t *testing.T) {
	require.Len(t, AssessmentQuestions, 12)

	kinds := map[QuestionKind]int{}
	seen := map[string]bool{}
	for _, q := range AssessmentQuestions {
		assert.False(t, seen[q.ID], "duplicate question id %s", q.ID)
		seen[q.ID] = true
		kinds[q.Kind]++
		assert.NotEmpty(t, q.Prompt)
		assert.GreaterOrEqual(t, len(q.Options), 2, q.ID)
		for _, o := range q.Options {
			assert.NotEmpty(t, o.Text, q.ID)
		}
	}

	assert.Equal(t, 8, kinds[KindInterest])
	assert.Equal(t, 2, kinds[KindValue])
	assert.Equal(t, 2, kinds[KindEnvironment])
}

func TestContribution(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		option int
		ok     bool
	}{
		{"known answer", "q1", 0, true},
		{"last option", "q12", 5, true},
		{"unknown question", "q99", 0, false},
		{"negative option", "q1", -1, false},
		{"option past end", "q1", 6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Contribution(tt.id, tt.option)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

// ==========================
// Build
// ==========================

func TestBuild_Empty(t *testing.T) {
	p := Build(nil)

	assert.Equal(t, models.RIASECProfile{}, p.RIASEC)
	assert.Equal(t, models.ValueProfile{}, p.Values)
	assert.Equal(t, models.TeamSmall, p.Environment.TeamSize)
	assert.Equal(t, models.PaceModerate, p.Environment.Pace)
	assert.Len(t, p.RIASEC.Vector(), 6)
	assert.Len(t, p.Values.Vector(), 6)
}

func TestBuild_RealisticInvestigativeScenario(t *testing.T) {
	p := Build(map[string]int{"q1": 0, "q2": 0})

	assert.Equal(t, 35.0, p.RIASEC.Realistic)
	assert.Equal(t, 25.0, p.RIASEC.Investigative)
	for _, d := range []models.RIASECDimension{models.Artistic, models.Social, models.Enterprising, models.Conventional} {
		assert.Less(t, p.RIASEC.Get(d), p.RIASEC.Investigative, string(d))
	}

	top := Top3RIASEC(p.RIASEC)
	assert.Contains(t, top, models.Realistic)
	assert.Contains(t, top, models.Investigative)
}

func TestBuild_Accumulates(t *testing.T) {
	answers := map[string]int{}
	for i := 1; i <= 8; i++ {
		answers[AssessmentQuestions[i-1].ID] = 3
	}
	p := Build(answers)

	assert.Equal(t, 20.0+20+20+20+20+25+15+15, p.RIASEC.Social)
	assert.Greater(t, p.RIASEC.Social, 100.0)
	assert.Equal(t, 0.0, p.RIASEC.Realistic)
}

func TestBuild_ValuesAndEnvironment(t *testing.T) {
	p := Build(map[string]int{"q9": 1, "q10": 1, "q11": 0, "q12": 4})

	assert.Equal(t, 50.0, p.Values.Income)
	assert.Equal(t, 10.0, p.Values.Growth)
	assert.Equal(t, models.TeamSolo, p.Environment.TeamSize)
	assert.Equal(t, models.PaceDeadlineDriven, p.Environment.Pace)
	assert.Equal(t, models.Income, TopValue(p.Values))
}

func TestBuild_SkipsInvalidAnswers(t *testing.T) {
	p := Build(map[string]int{
		"q1":      0,
		"q2":      42,
		"q3":      -1,
		"unknown": 0,
	})

	assert.Equal(t, 20.0, p.RIASEC.Realistic)
	assert.Equal(t, 10.0, p.RIASEC.Investigative)
}

func TestBuild_EnvironmentLastWriteWins(t *testing.T) {
	t.Run("later dedicated question overwrites interest answer", func(t *testing.T) {
		p := Build(map[string]int{"q8": 4, "q11": 1})
		assert.Equal(t, models.TeamIndependent, p.Environment.TeamSize)
	})

	t.Run("interest answer sets team size without dedicated question", func(t *testing.T) {
		p := Build(map[string]int{"q8": 4})
		assert.Equal(t, models.TeamLeader, p.Environment.TeamSize)
		assert.Equal(t, models.PaceModerate, p.Environment.Pace)
	})

	t.Run("explicit sequence order is honored", func(t *testing.T) {
		p := BuildFromSequence([]Answer{
			{QuestionID: "q11", Option: 1},
			{QuestionID: "q8", Option: 4},
		})
		assert.Equal(t, models.TeamLeader, p.Environment.TeamSize)
	})
}

func TestBuild_Deterministic(t *testing.T) {
	answers := map[string]int{"q1": 1, "q4": 2, "q8": 4, "q9": 0, "q11": 2, "q12": 0}
	first := Build(answers)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Build(answers))
	}
}

// ==========================
// Top3RIASEC / TopValue
// ==========================

func TestTop3RIASEC(t *testing.T) {
	tests := []struct {
		name     string
		profile  models.RIASECProfile
		expected []models.RIASECDimension
	}{
		{
			name:     "all zero keeps declaration order",
			profile:  models.RIASECProfile{},
			expected: []models.RIASECDimension{models.Realistic, models.Investigative, models.Artistic},
		},
		{
			name:     "descending by score",
			profile:  models.RIASECProfile{Social: 90, Conventional: 80, Artistic: 70, Realistic: 10},
			expected: []models.RIASECDimension{models.Social, models.Conventional, models.Artistic},
		},
		{
			name:     "ties broken by declaration order",
			profile:  models.RIASECProfile{Enterprising: 50, Social: 50, Investigative: 50, Conventional: 50},
			expected: []models.RIASECDimension{models.Investigative, models.Social, models.Enterprising},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top := Top3RIASEC(tt.profile)
			assert.Equal(t, tt.expected, top)
		})
	}
}

func TestTop3RIASEC_DistinctAndStable(t *testing.T) {
	p := models.RIASECProfile{Realistic: 5, Investigative: 5, Artistic: 5, Social: 5, Enterprising: 5, Conventional: 5}
	top := Top3RIASEC(p)

	require.Len(t, top, 3)
	assert.NotEqual(t, top[0], top[1])
	assert.NotEqual(t, top[1], top[2])
	assert.NotEqual(t, top[0], top[2])
	assert.Equal(t, top, Top3RIASEC(p))
	assert.Equal(t, models.Realistic, models.RIASECDimensions[0], "shared ordering must not be mutated")
}

func TestTopValue(t *testing.T) {
	assert.Equal(t, models.Impact, TopValue(models.ValueProfile{}))
	assert.Equal(t, models.Stability, TopValue(models.ValueProfile{Stability: 3, Growth: 2}))
	assert.Equal(t, models.Autonomy, TopValue(models.ValueProfile{Autonomy: 7, Balance: 7}))
}

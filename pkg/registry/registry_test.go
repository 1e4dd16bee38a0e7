package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRegistry_ProjectFile(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join("..", "..", "configs", "activity-registry.json"))
	require.NoError(t, err)

	assert.Empty(t, reg.Validate())
	for _, taskType := range []string{"build-student-profile", "match-careers", "score-reality-quiz"} {
		a, ok := reg.Find(taskType)
		require.True(t, ok, taskType)
		assert.NotEmpty(t, a.ErrorCodes, taskType)
	}
}

func TestLoadRegistry_Errors(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"activities": [`), 0o600))
	_, err = LoadRegistry(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	reg := &ActivityRegistry{Activities: []Activity{
		{ID: "a", TaskType: "a", ImplementationStatus: StatusCompleted, Timeout: "5s"},
		{ID: "a", TaskType: "a", ImplementationStatus: "done", Timeout: "soon", Retries: -1},
		{ImplementationStatus: StatusPlanned},
	}}

	errs := reg.Validate()
	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	assert.ElementsMatch(t, []string{
		"a: duplicate id",
		"a: duplicate taskType a",
		`a: unknown implementationStatus "done"`,
		`a: invalid timeout "soon"`,
		"a: retries must not be negative",
		"activity[2]: id is required",
		"activity[2]: taskType is required",
	}, msgs)
}

func TestFind_Missing(t *testing.T) {
	_, ok := (&ActivityRegistry{}).Find("nope")
	assert.False(t, ok)
}

package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/qcviz/internal/config"
	"github.com/san-kum/qcviz/internal/storage"
)

// copyScenario places the batch file and its inputs in a temp dir so
// outputs never land in testdata.
func copyScenario(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"batch.yaml", "bell.json", "final.json"} {
		data, err := os.ReadFile(filepath.Join("testdata", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
	}
	return filepath.Join(dir, "batch.yaml")
}

func TestRunScenario(t *testing.T) {
	path := copyScenario(t)
	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", sc.Name)
	require.Len(t, sc.Jobs, 3)

	base := config.DefaultConfig()
	base.Render.Width, base.Render.Height = 20, 10
	st := storage.New(t.TempDir())

	reports, err := RunScenario(context.Background(), sc, base, st, nil)
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.Equal(t, 2*8+4, reports[0].Frames)
	assert.Equal(t, 2*6+3, reports[1].Frames)
	assert.NotEmpty(t, reports[1].RunID)
	assert.Empty(t, reports[0].RunID)
	assert.Len(t, reports[2].Files, 3)

	want := filepath.Join(filepath.Dir(path), "out", "01_bloch", "bloch_evolution.gif")
	assert.Equal(t, want, reports[0].Files[0])
	assert.FileExists(t, want)

	runs, err := st.List()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRunScenarioStopsOnError(t *testing.T) {
	path := copyScenario(t)
	sc, err := LoadScenario(path)
	require.NoError(t, err)
	sc.Jobs[1].View = "entanglement"
	sc.Jobs[1].Input = "final.json"

	reports, err := RunScenario(context.Background(), sc, config.DefaultConfig(), nil, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "job 2")
	assert.Len(t, reports, 1)
}

func TestRunScenarioUnknownPreset(t *testing.T) {
	sc := &Scenario{Jobs: []Job{{Input: "testdata/bell.json", View: "bloch", Preset: "loud"}}}
	_, err := RunScenario(context.Background(), sc, config.DefaultConfig(), nil, nil)
	assert.ErrorIs(t, err, config.ErrUnknownPreset)
}

func TestLoadScenarioEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: nothing\n"), 0644))
	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestRunSweep(t *testing.T) {
	results, err := RunSweep(context.Background(), &PenaltySweep{
		Input: "testdata/bell.json", Min: 0, Max: 1, NumSteps: 3,
	}, config.DefaultConfig())
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, 0.5, results[1].Penalty)
	for _, r := range results {
		assert.InDelta(t, 1.0, r.Peak, 1e-9)
	}
	assert.GreaterOrEqual(t, results[0].Mean, results[2].Mean)

	_, err = RunSweep(context.Background(), &PenaltySweep{Input: "testdata/final.json", NumSteps: 2}, config.DefaultConfig())
	assert.Error(t, err)
}

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speclab-backend/config"
	"speclab-backend/logger"
)

func testApp(t *testing.T) *App {
	t.Helper()
	return &App{
		Config: config.Config{
			Env:                     "test",
			DBDriver:                config.DriverSQLite,
			SQLitePath:              filepath.Join(t.TempDir(), "speclab.db"),
			TokenTTL:                time.Hour,
			PrerequisiteCyclePolicy: config.CyclePolicyAllow,
			FirstSuperuserEmail:     "admin@speclab.kr",
			FirstSuperuserPassword:  "changeme",
		},
		Log: logger.Nop(),
	}
}

func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootRegistersCommands(t *testing.T) {
	root := NewRootCmd(testApp(t))
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.True(t, names["seed"])
}

func TestMigrateCommand(t *testing.T) {
	out, err := execute(t, testApp(t), "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "migration complete")
}

func TestSeedCommandIsRepeatable(t *testing.T) {
	app := testApp(t)
	out, err := execute(t, app, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 16 certifications, 7 prerequisites, 7 careers, 7 requirements")

	out, err = execute(t, app, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 0 certifications")
}

func TestSeedCommandFromFile(t *testing.T) {
	app := testApp(t)
	file := filepath.Join(t.TempDir(), "data.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
certifications:
  - {name: "A", code: "A1", level: "기사"}
  - {name: "B", code: "B1", level: "기술사"}
prerequisites:
  - {prerequisite: "A", certification: "B"}
`), 0o600))

	out, err := execute(t, app, "seed", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 2 certifications, 1 prerequisites, 0 careers, 0 requirements")
}

func TestInvalidConfigIsRejected(t *testing.T) {
	app := testApp(t)
	app.Config.PrerequisiteCyclePolicy = "sometimes"
	_, err := execute(t, app, "migrate")
	assert.Error(t, err)
}

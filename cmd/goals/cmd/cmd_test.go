package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyzahq/fyza/internal/app"
	"github.com/fyzahq/fyza/internal/client"
	"github.com/fyzahq/fyza/internal/config"
	"github.com/fyzahq/fyza/internal/db/dbtest"
	"github.com/fyzahq/fyza/internal/model"
	"github.com/fyzahq/fyza/internal/routes"
)

// startAPI runs the goals API with one profile (id 1) and returns its URL
func startAPI(t *testing.T) string {
	t.Helper()
	return startAPIWithConfig(t, &config.Config{AppEnv: "test", RateLimitRPS: 1000, RateLimitBurst: 1000})
}

func startAPIWithConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()

	handler, _ := routes.SetupRoutes(app.NewWithDB(cfg, dbtest.New(t)))
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	api, err := client.New(srv.URL)
	require.NoError(t, err)
	p, err := api.CreateProfile(context.Background(), &model.Profile{FirstName: "Asha", LastName: "Rao"})
	require.NoError(t, err)
	require.Equal(t, int64(1), p.ID)

	return srv.URL
}

func run(t *testing.T, apiURL string, args ...string) (string, string, error) {
	t.Helper()

	root := RootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--api", apiURL, "--user", "1"}, args...))

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func listJSON(t *testing.T, apiURL string) []goalRecord {
	t.Helper()
	out, _, err := run(t, apiURL, "list", "--json")
	require.NoError(t, err)

	var records []goalRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	return records
}

func TestAddSetRemove(t *testing.T) {
	api := startAPI(t)

	out, _, err := run(t, api, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No financial goals found")

	out, _, err = run(t, api, "add", "--name", "Emergency Fund", "--amount", "500000", "--date", "2099-12-31", "--priority", "High")
	require.NoError(t, err)
	assert.Contains(t, out, "Created ")
	assert.Contains(t, out, "(Emergency Fund)")

	out, _, err = run(t, api, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Emergency Fund")
	assert.Contains(t, out, "500,000.00")
	assert.Contains(t, out, "2099-12-31")

	records := listJSON(t, api)
	require.Len(t, records, 1)
	id := records[0].GoalID
	assert.Equal(t, model.PriorityHigh, records[0].Priority)

	out, _, err = run(t, api, "set", id[:8], "priority", "Low")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated "+id)

	_, _, err = run(t, api, "set", id, "amount", "lots")
	assert.ErrorContains(t, err, "invalid field value")

	records = listJSON(t, api)
	require.Len(t, records, 1)
	assert.Equal(t, model.PriorityLow, records[0].Priority)
	assert.Equal(t, 500000.0, records[0].TargetAmount)

	_, _, err = run(t, api, "rm", "ffffffff")
	assert.ErrorContains(t, err, "no financial goal matches")

	out, _, err = run(t, api, "rm", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted "+id)
	assert.Empty(t, listJSON(t, api))
}

func TestAddRejectedByServer(t *testing.T) {
	api := startAPI(t)

	_, _, err := run(t, api, "add", "--name", "Old", "--amount", "10", "--date", "2001-01-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create financial goal")
	assert.Empty(t, listJSON(t, api))
}

func TestImport(t *testing.T) {
	api := startAPI(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "goals.yaml")
	require.NoError(t, os.WriteFile(good, []byte(`
goals:
  - goal_name: Emergency Fund
    target_amount: 500000
    target_date: 2099-12-31
    priority: High
  - goal_name: House
    target_amount: 9000000
    target_date: 2099-06-30
`), 0o600))

	out, _, err := run(t, api, "import", good)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 goals")

	records := listJSON(t, api)
	require.Len(t, records, 2)
	names := []string{records[0].GoalName, records[1].GoalName}
	assert.ElementsMatch(t, []string{"Emergency Fund", "House"}, names)

	partial := filepath.Join(dir, "partial.json")
	require.NoError(t, os.WriteFile(partial, []byte(`[
  {"goal_name": "Car", "target_amount": 800000, "target_date": "2099-01-01", "priority": "Medium"},
  {"goal_name": "Old", "target_amount": 1, "target_date": "2001-01-01", "priority": "Low"}
]`), 0o600))

	out, stderr, err := run(t, api, "import", partial)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save 1 of 2 financial goals")
	assert.Contains(t, out, "Imported 1 of 2 goals")
	assert.Contains(t, stderr, "failed: Old")

	assert.Len(t, listJSON(t, api), 3)

	out, _, err = run(t, api, "import", good)
	require.NoError(t, err)
	assert.Contains(t, out, "Skipped 2 goals that already exist")
	assert.Contains(t, out, "Nothing to import")

	out, stderr, err = run(t, api, "import", partial)
	require.Error(t, err)
	assert.Contains(t, out, "Skipped 1 goals that already exist")
	assert.Contains(t, out, "Imported 0 of 1 goals")
	assert.Contains(t, stderr, "failed: Old")
	assert.NotContains(t, stderr, "failed: Car")

	assert.Len(t, listJSON(t, api), 3)
}

func TestImportSkipsDuplicatesWithinFile(t *testing.T) {
	api := startAPI(t)
	path := filepath.Join(t.TempDir(), "dupes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- goal_name: Car
  target_amount: 800000
  target_date: 2099-01-01
- goal_name: Car
  target_amount: 800000.0
  target_date: 2099-01-01
- goal_name: Car
  target_amount: 900000
  target_date: 2099-01-01
`), 0o600))

	out, _, err := run(t, api, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Skipped 1 goals that already exist")
	assert.Contains(t, out, "Imported 2 goals")
	assert.Len(t, listJSON(t, api), 2)
}

// Both sides run with their shipped rate limit settings.
func TestImportWithDefaultLimits(t *testing.T) {
	if testing.Short() {
		t.Skip("paced import takes a few seconds")
	}
	for _, key := range []string{"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "FYZA_SAVE_CONCURRENCY", "FYZA_WRITE_RATE", "FYZA_WRITE_BURST", "FYZA_HTTP_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := config.Load()
	cfg.AppEnv = "test"
	api := startAPIWithConfig(t, cfg)

	var file strings.Builder
	for i := range 25 {
		fmt.Fprintf(&file, "- goal_name: Goal %02d\n  target_amount: %d\n  target_date: 2099-01-01\n", i+1, (i+1)*1000)
	}
	path := filepath.Join(t.TempDir(), "many.yaml")
	require.NoError(t, os.WriteFile(path, []byte(file.String()), 0o600))

	out, stderr, err := run(t, api, "import", path)
	require.NoError(t, err, stderr)
	assert.Contains(t, out, "Imported 25 goals")
	assert.NotContains(t, stderr, "429")

	out, _, err = run(t, api, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Skipped 25 goals that already exist")

	assert.Len(t, listJSON(t, api), 25)
}

func TestImportRejectsInvalidValuesBeforeSending(t *testing.T) {
	api := startAPI(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- goal_name: Car\n  target_amount: lots\n"), 0o600))

	_, _, err := run(t, api, "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "goal 1 (Car)")
	assert.Empty(t, listJSON(t, api))
}

func TestProfile(t *testing.T) {
	api := startAPI(t)

	out, _, err := run(t, api, "profile", "save", "--city", "Pune", "--risk", "moderate", "--income", "1200000")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved profile 1 (Asha Rao)")

	out, _, err = run(t, api, "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Pune")
	assert.Contains(t, out, "moderate")
	assert.Contains(t, out, "1,200,000.00")

	_, _, err = run(t, api, "--user", "2", "profile", "show")
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))
}

func TestParseImport(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		entries, err := parseImport(strings.NewReader("- goal_name: Car\n  target_amount: 12.5\n  target_date: 2030-01-01\n"))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, importedGoal{GoalName: "Car", TargetAmount: "12.5", TargetDate: "2030-01-01"}, entries[0])
		assert.Len(t, entries[0].fields(), 3)
	})

	t.Run("empty file", func(t *testing.T) {
		entries, err := parseImport(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("scalar document", func(t *testing.T) {
		_, err := parseImport(strings.NewReader("just text"))
		assert.Error(t, err)
	})
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "500,000.00", formatAmount(500000))
	assert.Equal(t, "0.00", formatAmount(0))
	assert.Equal(t, "1,234.50", formatAmount(1234.5))
}

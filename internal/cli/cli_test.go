package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickwise/internal/config"
)

const catalogYAML = `- key: a
  label: Alpha
  group: prod
- key: b
  group: dev
- key: c
`

type fixture struct {
	dir        string
	configPath string
	itemsPath  string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:        dir,
		configPath: filepath.Join(dir, "config.toml"),
		itemsPath:  filepath.Join(dir, "items.yaml"),
	}
	require.NoError(t, os.WriteFile(f.itemsPath, []byte(catalogYAML), 0644))

	cfg := fmt.Sprintf(`version = 1
items_file = %q

[views.ops]
keys = ["c", "gone", "a"]
filter = "group:prod"

[views.all]
keys = ["a", "b", "c"]
`, f.itemsPath)
	require.NoError(t, os.WriteFile(f.configPath, []byte(cfg), 0644))
	return f
}

func (f fixture) run(args ...string) (string, string, error) {
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--config", f.configPath, "--log-file", filepath.Join(f.dir, "pickwise.log")))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "pickwise", cmd.Use)

	for _, name := range []string{"pick", "views", "apply"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestPickFlags(t *testing.T) {
	cmd := NewRootCommand()
	pick, _, err := cmd.Find([]string{"pick"})
	require.NoError(t, err)

	for _, name := range []string{"items", "view", "page-size", "watch"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "root %s", name)
		assert.NotNil(t, pick.Flags().Lookup(name), "pick %s", name)
	}
}

func TestInvalidFormat(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.run("views", "list", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestViewsList(t *testing.T) {
	f := newFixture(t)

	out, _, err := f.run("views", "list")
	require.NoError(t, err)
	assert.Equal(t, "all\t3 keys\nops\t3 keys\tfilter: group:prod\n", out)

	out, _, err = f.run("views", "list", "--format", "json")
	require.NoError(t, err)
	var summaries []ViewSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summaries))
	require.Len(t, summaries, 2)
	assert.Equal(t, ViewSummary{Name: "ops", Keys: []string{"c", "gone", "a"}, Filter: "group:prod"}, summaries[1])
}

func TestViewsListEmpty(t *testing.T) {
	dir := t.TempDir()
	f := fixture{dir: dir, configPath: filepath.Join(dir, "missing.toml")}

	out, _, err := f.run("views", "list")
	require.NoError(t, err)
	assert.Equal(t, "No saved views\n", out)
}

func TestViewsShow(t *testing.T) {
	f := newFixture(t)

	out, errOut, err := f.run("views", "show", "ops")
	require.NoError(t, err)
	assert.Equal(t, "c\ngone\na\n", out)
	assert.Equal(t, "filter: group:prod\n", errOut)

	_, _, err = f.run("views", "show", "nope")
	assert.ErrorIs(t, err, config.ErrViewNotFound)
}

func TestViewsDelete(t *testing.T) {
	f := newFixture(t)

	out, _, err := f.run("views", "delete", "ops")
	require.NoError(t, err)
	assert.Equal(t, "Deleted view \"ops\"\n", out)

	cfg, err := config.NewConfigService(f.configPath).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"all"}, cfg.ViewNames())

	_, _, err = f.run("views", "delete", "ops")
	assert.ErrorIs(t, err, config.ErrViewNotFound)
}

func TestApply(t *testing.T) {
	f := newFixture(t)

	// Hidden by the view's filter but still selected; catalog order
	out, _, err := f.run("apply", "ops")
	require.NoError(t, err)
	assert.Equal(t, "a\nc\n", out)
}

func TestApplyJSON(t *testing.T) {
	f := newFixture(t)

	out, _, err := f.run("apply", "ops", "--format", "json", "--filter", "b")
	require.NoError(t, err)

	var result ApplyResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, ApplyResult{View: "ops", Keys: []string{"a", "c"}, Missing: []string{"gone"}}, result)
}

func TestApplyItemsOverride(t *testing.T) {
	f := newFixture(t)
	other := filepath.Join(f.dir, "other.yaml")
	require.NoError(t, os.WriteFile(other, []byte("- key: b\n- key: c\n"), 0644))

	out, _, err := f.run("apply", "all", "--items", other)
	require.NoError(t, err)
	assert.Equal(t, "b\nc\n", out)
}

func TestApplyErrors(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.run("apply", "nope")
	assert.ErrorIs(t, err, config.ErrViewNotFound)

	_, _, err = f.run("apply", "ops", "--items", filepath.Join(f.dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = f.run("apply")
	assert.Error(t, err)
}

func TestResolveItemsFile(t *testing.T) {
	cfg := config.DefaultConfig()

	_, err := resolveItemsFile("", cfg)
	assert.Error(t, err)

	cfg.ItemsFile = "/srv/items.yaml"
	path, err := resolveItemsFile("", cfg)
	require.NoError(t, err)
	assert.Equal(t, "/srv/items.yaml", path)

	path, err = resolveItemsFile("/tmp/x.yaml", cfg)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.yaml", path)
}

func TestNewLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pickwise.log")

	logger, err := NewLogger(path, false)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("shown")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "shown")
	assert.NotContains(t, string(data), "hidden")

	verbose, err := NewLogger(path, true)
	require.NoError(t, err)
	verbose.Debug("diagnostic")
	_ = verbose.Sync()

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "diagnostic")

	_, err = NewLogger(filepath.Join(t.TempDir(), "no", "such", "dir", "x.log"), false)
	assert.Error(t, err)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCancelled, GetExitCode(NewExitError(ExitCancelled, "selection cancelled")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("boom")))
	assert.Equal(t, ExitCancelled, GetExitCode(fmt.Errorf("wrapped: %w", NewExitError(ExitCancelled, "x"))))
}

func TestKeysOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&OutputFormatter{Format: "json", Writer: &buf}).Keys(nil))
	assert.JSONEq(t, "[]", buf.String())

	buf.Reset()
	require.NoError(t, (&OutputFormatter{Format: "text", Writer: &buf}).Keys([]string{"a", "b"}))
	assert.Equal(t, "a\nb\n", buf.String())
}

package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomagicln/propcheck/internal/testutil"
	"github.com/nomagicln/propcheck/pkg/cli"
	"github.com/nomagicln/propcheck/pkg/config"
	"github.com/nomagicln/propcheck/pkg/logging"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRun_PassingProperty(t *testing.T) {
	testutil.IsolateConfigDir(t)

	out, _, err := execute(t, "run", "increment-positive", "--seed", "3", "-n", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "PASS increment-positive")
	assert.Contains(t, out, "20 passed")
	assert.Contains(t, out, "1/1 properties held")
}

func TestRun_ExpectedFailureIsNotAnError(t *testing.T) {
	testutil.IsolateConfigDir(t)

	out, errOut, err := execute(t, "run", "identity-even", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "FAIL identity-even")
	assert.Contains(t, out, "replay with --seed 3")
	assert.Contains(t, errOut, "Test identity-even failed")
}

func TestRun_UnexpectedOutcome(t *testing.T) {
	testutil.IsolateConfigDir(t)

	// Rejecting everything exhausts a property that should pass.
	_, _, err := execute(t, "run", "add-commutes", "--seed", "3", "-n", "2", "--reject", "ArgLess(1, 0) || !ArgLess(1, 0)")
	assert.ErrorIs(t, err, errPropertiesFailed)
}

func TestRun_Errors(t *testing.T) {
	testutil.IsolateConfigDir(t)

	_, _, err := execute(t, "run", "identty-even")
	var unknown *cli.UnknownPropertyError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "identty-even", unknown.Name)

	_, _, err = execute(t, "run", "--log", "loud")
	assert.ErrorContains(t, err, "unknown log level")

	_, _, err = execute(t, "run", "--log-format", "xml", "--no-history")
	assert.ErrorContains(t, err, "unknown log format")

	_, _, err = execute(t, "run", "--tests", "0")
	var invalid *config.InvalidConfigError
	assert.True(t, errors.As(err, &invalid))

	_, _, err = execute(t, "run", "add-commutes", "--no-history", "--reject", "ArgLess(")
	assert.ErrorContains(t, err, "invalid constraint expression")
}

func TestRun_ConfigFile(t *testing.T) {
	testutil.IsolateConfigDir(t)
	path := testutil.TempConfig(t, testutil.MinimalConfig)

	out, errOut, err := execute(t, "--config", path, "run", "sort-idempotent", "--no-history")
	require.NoError(t, err)
	assert.Contains(t, out, "25 passed")
	assert.Contains(t, errOut, "sort-idempotent did not fail to be idempotent")
}

func TestLoadRunConfig_FlagsOverrideFile(t *testing.T) {
	testutil.IsolateConfigDir(t)
	path := testutil.TempConfig(t, testutil.MinimalConfig)

	cmd := newRootCmd(&bytes.Buffer{}, &bytes.Buffer{})
	run, _, err := cmd.Find([]string{"run"})
	require.NoError(t, err)
	require.NoError(t, cmd.PersistentFlags().Set("config", path))
	require.NoError(t, run.Flags().Set("log", "all"))
	require.NoError(t, run.Flags().Set("no-minimize", "true"))

	cfg, err := loadRunConfig(run, runFlags{level: "all", noMinimize: true})
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.MinimumTests)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, logging.All, cfg.LogLevel)
	assert.False(t, cfg.Minimize)
	assert.Equal(t, 2, cfg.MaxMinimizationDepth)
}

func TestRun_ConfigFlagIsHonored(t *testing.T) {
	testutil.IsolateConfigDir(t)
	path := testutil.TempConfig(t, testutil.MinimalConfig)

	out, _, err := execute(t, "--config", path, "run", "increment-positive", "--no-history")
	require.NoError(t, err)
	assert.Contains(t, out, "25 passed")

	// Flags still win over the file.
	out, _, err = execute(t, "run", "increment-positive", "--config", path, "-n", "7", "--no-history")
	require.NoError(t, err)
	assert.Contains(t, out, "7 passed")
}

func TestRun_JSONLogsAndMetrics(t *testing.T) {
	testutil.IsolateConfigDir(t)

	out, errOut, err := execute(t, "run", "identity-even", "--seed", "5", "--log-format", "json", "--metrics", "--no-history")
	require.NoError(t, err)
	assert.Contains(t, errOut, `"verbosity":"failures"`)
	assert.Contains(t, out, `propcheck_runs_total{status="failed",test="identity-even"} 1`)
}

func TestHistory(t *testing.T) {
	testutil.IsolateConfigDir(t)

	out, _, err := execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded.")

	_, _, err = execute(t, "run", "increment-positive", "--seed", "8", "-n", "5")
	require.NoError(t, err)
	_, _, err = execute(t, "run", "identity-even", "--seed", "9")
	require.NoError(t, err)

	out, _, err = execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "increment-positive")
	assert.Contains(t, out, "seed=9")

	out, _, err = execute(t, "history", "increment-positive", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "seed=8 passed=5")
	assert.NotContains(t, out, "identity-even")
}

func TestList(t *testing.T) {
	out, _, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Properties")
	assert.Contains(t, out, "add-commutes")
	assert.Contains(t, out, "reverse every string (expected to fail)")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "propcheck dev (commit: unknown, built: unknown)\n", out)
}

func TestCompletion(t *testing.T) {
	out, _, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "propcheck")

	_, _, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

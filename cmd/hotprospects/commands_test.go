package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uuidPattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

func run(t *testing.T, dataDir, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, logs bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&logs)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--data-dir", dataDir, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCLI_ScanToggleList(t *testing.T) {
	dir := t.TempDir()

	// Arrange: two prospects, one from an argument and one from stdin
	out, err := run(t, dir, "", "scan", `Abdul Hudson\nzaul@hackingwithswift.com`)
	require.NoError(t, err)
	require.Contains(t, out, "Added")
	abdul := uuidPattern.FindString(out)
	require.NotEmpty(t, abdul)

	out, err = run(t, dir, "Bea\nbea@example.com\n", "scan")
	require.NoError(t, err)
	require.Contains(t, out, "Bea")

	// Act
	out, err = run(t, dir, "", "toggle", abdul)
	require.NoError(t, err)
	assert.Contains(t, out, "Abdul Hudson is now contacted")

	// Assert
	out, err = run(t, dir, "", "list", "contacted")
	require.NoError(t, err)
	assert.Contains(t, out, "Contacted People")
	assert.Contains(t, out, "Abdul Hudson")
	assert.NotContains(t, out, "Bea")

	out, err = run(t, dir, "", "list", "--sort", "email")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Bea"), strings.Index(out, "Abdul Hudson"))

	_, err = os.Stat(filepath.Join(dir, "SavedData"))
	assert.NoError(t, err)
}

func TestCLI_MalformedScanAddsNothing(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "", "scan", "OnlyOneLine")

	require.NoError(t, err)
	assert.Contains(t, out, "Nothing added")
	out, err = run(t, dir, "", "list")
	require.NoError(t, err)
	assert.Equal(t, "Everyone\n", out)
}

func TestCLI_Remind(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, dir, "", "--backend", "sqlite", "scan", `Jo\njo@example.com`)
	require.NoError(t, err)
	id := uuidPattern.FindString(out)

	out, err = run(t, dir, "", "--backend", "sqlite", "remind", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Contact Jo")

	_, err = run(t, dir, "", "--backend", "sqlite", "toggle", id)
	require.NoError(t, err)
	_, err = run(t, dir, "", "--backend", "sqlite", "remind", id)
	assert.Error(t, err)
}

func TestCLI_BadArguments(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "", "toggle", "not-a-uuid")
	assert.Error(t, err)

	_, err = run(t, dir, "", "list", "sometimes")
	assert.Error(t, err)

	_, err = run(t, dir, "", "--backend", "postgres", "list")
	assert.Error(t, err)
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const squareWKT = "POLYGON((0 0,10 0,10 10,0 10,0 0))"

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MAPEDIT_LOGSDIR", filepath.Join(dir, "logs"))
	t.Cleanup(viper.Reset)
	return dir
}

func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	base := []string{"-config", dir, "-env", filepath.Join(dir, ".env")}
	err := run(append(base, args...), &out)
	return strings.TrimSpace(out.String()), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseScript(t *testing.T) {
	s, err := ParseScript([]byte(`
name: harbour
geometry: POLYGON((0 0,10 0,10 10,0 10,0 0))
events:
  - command: ":MARKER:ADD:"
    args: ["0,5"]
    as: mid
  - command: ":HOLE:START:"
`))
	require.NoError(t, err)

	assert.Equal(t, "harbour", s.Name)
	assert.Equal(t, squareWKT, s.Geometry)
	require.Len(t, s.Events, 2)
	assert.Equal(t, ":MARKER:ADD:", s.Events[0].Command)
	assert.Equal(t, []string{"0,5"}, s.Events[0].Args)
	assert.Equal(t, "mid", s.Events[0].As)
	assert.Empty(t, s.Events[1].Args)
}

func TestParseScript_MissingCommand(t *testing.T) {
	_, err := ParseScript([]byte("events:\n  - args: [\"1,1\"]\n"))
	assert.ErrorContains(t, err, "missing command")
}

func TestParseScript_Invalid(t *testing.T) {
	_, err := ParseScript([]byte("events: [\n"))
	assert.Error(t, err)
}

func TestSubstitute(t *testing.T) {
	got, err := substitute([]string{"$mid", "1,1"}, map[string]string{"mid": "m7"})
	require.NoError(t, err)
	assert.Equal(t, []string{"m7", "1,1"}, got)

	_, err = substitute([]string{"$nope"}, nil)
	assert.ErrorContains(t, err, "undefined reference $nope")
}

func TestRun_PrintsGeometry(t *testing.T) {
	dir := isolate(t)

	out, err := runCLI(t, dir, "-wkt", squareWKT)
	require.NoError(t, err)
	assert.Equal(t, squareWKT, out)
}

func TestRun_ReplaysScript(t *testing.T) {
	dir := isolate(t)
	script := writeFile(t, dir, "edit.yaml", `
name: harbour
geometry: POLYGON((0 0,10 0,10 10,0 10,0 0))
events:
  - command: ":MARKER:ADD:"
    args: ["0,5"]
    as: mid
  - command: ":MARKER:MOVE:"
    args: ["$mid", "-1,5"]
`)

	out, err := runCLI(t, dir, "-script", script)
	require.NoError(t, err)
	assert.Equal(t, "POLYGON((0 0,5 -1,10 0,10 10,0 10,0 0))", out)
}

func TestRun_ScriptFailureStops(t *testing.T) {
	dir := isolate(t)
	script := writeFile(t, dir, "edit.yaml", `
events:
  - command: ":MARKER:DELETE:"
    args: ["nope"]
`)

	_, err := runCLI(t, dir, "-wkt", squareWKT, "-script", script)
	assert.ErrorContains(t, err, "event 0 (:MARKER:DELETE:)")
}

func TestRun_NoGeometry(t *testing.T) {
	dir := isolate(t)

	_, err := runCLI(t, dir)
	assert.ErrorContains(t, err, "no geometry given")
}

func TestRun_SaveAndOpen(t *testing.T) {
	dir := isolate(t)
	t.Setenv("MAPEDIT_STORAGE_SQLITE_PATH", filepath.Join(dir, "features.db"))

	_, err := runCLI(t, dir, "-wkt", "LINESTRING(0 0,2 1)", "-name", "road", "-save")
	require.NoError(t, err)

	out, err := runCLI(t, dir, "-open", "-name", "road")
	require.NoError(t, err)
	assert.Equal(t, "LINESTRING(0 0,2 1)", out)
}

func TestRun_EnvFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, ".env", "MAPEDIT_LOGLEVEL=debug\n")
	t.Cleanup(func() { os.Unsetenv("MAPEDIT_LOGLEVEL") })

	_, err := runCLI(t, dir, "-wkt", squareWKT)
	require.NoError(t, err)
	assert.Equal(t, "debug", viper.GetString("logLevel"))
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lumenlang/lumenc/internal/ansi"
	"github.com/lumenlang/lumenc/internal/driver"
	"github.com/stretchr/testify/require"
)

func TestFormatDiagnosticColorsBySeverity(t *testing.T) {
	errDiag := driver.Diagnostic{Severity: driver.SeverityError, Message: "boom"}
	warnDiag := driver.Diagnostic{Severity: driver.SeverityWarning, Message: "careful"}

	require.Equal(t, ansi.Color(ansi.DefaultTheme.Error, "%s", errDiag.Error()), formatDiagnostic(errDiag))
	require.Equal(t, ansi.Color(ansi.DefaultTheme.Warning, "%s", warnDiag.Error()), formatDiagnostic(warnDiag))
	require.NotEqual(t, formatDiagnostic(errDiag), formatDiagnostic(warnDiag))
}

func TestResolveSourcesEmptyInputIsFatal(t *testing.T) {
	_, err := resolveSources(&Manifest{})
	require.Error(t, err)
	var fatal driver.FatalConfigError
	require.ErrorAs(t, err, &fatal)
	require.Equal(t, "No files to compile.", fatal.Error())
}

func TestRunLexOnlyMainFunction(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.lm")
	require.NoError(t, os.WriteFile(path, []byte("fn int main() { return 0; }"), 0644))

	var buf bytes.Buffer
	require.NoError(t, runLexOnly(&buf, []string{path}))

	abs, err := filepath.Abs(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "# "+abs, lines[0])
	require.Equal(t, "FN INT IDENT LPAREN RPAREN LBRACE RETURN INTEGER SEMI RBRACE EOF", lines[1])
}

func TestRunLexOnlyPropagatesLexError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.lm")
	require.NoError(t, os.WriteFile(path, []byte("fn main() { # }"), 0644))

	var buf bytes.Buffer
	require.Error(t, runLexOnly(&buf, []string{path}))
}

func TestRunPipelineHeadersOnly(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.lm", "b.lm"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("fn int main() { return 0; }"), 0644))
	}
	sources, err := resolveSources(&Manifest{Sources: []string{dir + "/*"}})
	require.NoError(t, err)
	require.Len(t, sources, 2)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	var buf bytes.Buffer
	m := &Manifest{OutputHeaders: true}
	require.NoError(t, runPipeline(&buf, m, []string{"a.lm", "b.lm"}))

	require.FileExists(t, filepath.Join(dir, "a.h"))
	require.FileExists(t, filepath.Join(dir, "b.h"))
}

func TestRunPipelineParseOnlyDumpsAnalysis(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.lm")
	require.NoError(t, os.WriteFile(path, []byte("fn int main() { return 0; }"), 0644))

	var buf bytes.Buffer
	m := &Manifest{ParseOnly: true}
	require.NoError(t, runPipeline(&buf, m, []string{path}))
	require.Contains(t, buf.String(), "# "+path)
}

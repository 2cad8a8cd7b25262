package pdfgen

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePDFLatex writes a shell script standing in for pdflatex. It records
// each call in calls and copies pdf into the output directory.
func fakePDFLatex(t *testing.T, body string) (binary, calls string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in requires a POSIX shell")
	}

	dir := t.TempDir()
	calls = filepath.Join(dir, "calls")
	binary = filepath.Join(dir, "pdflatex")
	script := "#!/bin/sh\n" +
		"echo \"$@\" >> " + calls + "\n" +
		body + "\n"
	require.NoError(t, os.WriteFile(binary, []byte(script), 0o755))
	return binary, calls
}

func nativePDF(t *testing.T) string {
	t.Helper()
	data, err := (&NativeEngine{}).Render(context.Background(), sampleJob())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "fixture.pdf")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLaTeXEngine_RunsTwiceAndCleansUp(t *testing.T) {
	fixture := nativePDF(t)
	binary, calls := fakePDFLatex(t, `cp "`+fixture+`" "$3/resume.pdf"`)
	root := t.TempDir()

	engine := &LaTeXEngine{Root: root, Binary: binary}
	data, err := engine.Render(context.Background(), sampleJob())
	require.NoError(t, err)

	pages, err := CountPages(data)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)

	log, err := os.ReadFile(calls)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(log)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "-interaction=nonstopmode -output-directory "+root))
	assert.True(t, strings.HasSuffix(lines[0], "resume.tex"))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "working directory should be removed")
}

func TestLaTeXEngine_WritesSource(t *testing.T) {
	binary, _ := fakePDFLatex(t, `cp "$4" "$3/resume.pdf"`)
	root := t.TempDir()

	engine := &LaTeXEngine{Root: root, Binary: binary, KeepWorkDir: true}
	data, err := engine.Render(context.Background(), sampleJob())
	require.NoError(t, err)
	assert.Contains(t, string(data), `\documentclass[11pt]{article}`)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLaTeXEngine_Failure(t *testing.T) {
	binary, _ := fakePDFLatex(t, "echo '! Undefined control sequence.'\nexit 1")

	engine := &LaTeXEngine{Root: t.TempDir(), Binary: binary}
	_, err := engine.Render(context.Background(), sampleJob())

	var compileErr *CompilationError
	require.ErrorAs(t, err, &compileErr)
	assert.Contains(t, compileErr.LogOutput, "Undefined control sequence")
	assert.Contains(t, compileErr.Message, "pass 1")
}

func TestLaTeXEngine_NoPDF(t *testing.T) {
	binary, _ := fakePDFLatex(t, "exit 0")

	engine := &LaTeXEngine{Root: t.TempDir(), Binary: binary}
	_, err := engine.Render(context.Background(), sampleJob())

	var compileErr *CompilationError
	require.ErrorAs(t, err, &compileErr)
	assert.Contains(t, compileErr.Message, "PDF was not generated")
}

func TestLaTeXEngine_Timeout(t *testing.T) {
	binary, _ := fakePDFLatex(t, "exec sleep 5")

	engine := &LaTeXEngine{Root: t.TempDir(), Binary: binary, Timeout: 100 * time.Millisecond}
	_, err := engine.Render(context.Background(), sampleJob())

	var compileErr *CompilationError
	require.ErrorAs(t, err, &compileErr)
	assert.Contains(t, compileErr.Message, "timed out")
}

func TestLaTeXEngine_MissingBinary(t *testing.T) {
	engine := &LaTeXEngine{Root: t.TempDir(), Binary: "definitely-not-pdflatex-binary"}
	_, err := engine.Render(context.Background(), sampleJob())

	var compileErr *CompilationError
	require.ErrorAs(t, err, &compileErr)
	assert.Contains(t, err.Error(), "not found in PATH")
}

func TestLaTeXEngine_BadTemplate(t *testing.T) {
	binary, _ := fakePDFLatex(t, "exit 0")

	engine := &LaTeXEngine{Root: t.TempDir(), Binary: binary, Template: "/nonexistent/template.tex"}
	_, err := engine.Render(context.Background(), sampleJob())
	assert.Error(t, err)
}

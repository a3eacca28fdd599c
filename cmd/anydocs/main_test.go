package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/fwojciec/anydocs/cmd/anydocs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkdir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// app runs the CLI against an isolated home directory.
type app struct {
	t   *testing.T
	env map[string]string
}

func newApp(t *testing.T) *app {
	t.Helper()
	home := t.TempDir()
	return &app{t: t, env: map[string]string{"HOME": home}}
}

func (a *app) run(stdin string, args ...string) (string, string, error) {
	a.t.Helper()
	m := main.NewMain()
	m.Getenv = envFunc(a.env)
	m.Stdin = strings.NewReader(stdin)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), args, stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func sourceDocs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"guide.md":  "# Guide\n\nIntro.\n\n## Install\n\nRun:\n\n```bash\nnpm install demo\n```\n\n## Configure hooks\n\nHooks run before each build.\n",
		"api.html":  "<html><body><h1>API Reference</h1><h2>Client</h2><p>Create a client.</p></body></html>",
		"notes.txt": "ignored",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestMain_Run_EndToEnd(t *testing.T) {
	t.Parallel()

	a := newApp(t)
	src := sourceDocs(t)

	// Given an imported documentation set
	out, _, err := a.run("", "import", "demo", src, "--source-url", "https://docs.example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 files")
	assert.Contains(t, out, `Imported "demo": 2 pages`)

	stored := filepath.Join(a.env["HOME"], ".anydocs", "docs", "demo")
	_, err = os.Stat(filepath.Join(stored, "api.md"))
	require.NoError(t, err)

	// Then it is listed
	out, _, err = a.run("", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "demo  2 pages")
	assert.Contains(t, out, "https://docs.example.com")

	// And searchable by name
	out, _, err = a.run("", "--docs", "demo", "search", "npm", "install")
	require.NoError(t, err)
	assert.Contains(t, out, "## Install")
	assert.Contains(t, out, "npm install demo")

	// And navigable
	out, _, err = a.run("", "--docs", "demo", "files")
	require.NoError(t, err)
	assert.Equal(t, "api\nguide\n", out)

	out, _, err = a.run("", "--docs", "demo", "toc", "guide")
	require.NoError(t, err)
	assert.Equal(t, "- Guide\n  - Install\n  - Configure hooks\n", out)

	out, _, err = a.run("", "--docs", "demo", "find", "hooks")
	require.NoError(t, err)
	assert.Equal(t, "guide-2  Guide > Configure hooks\n", out)

	out, _, err = a.run("", "--docs", "demo", "section", "guide-1")
	require.NoError(t, err)
	assert.Contains(t, out, "```bash\nnpm install demo\n```")

	out, _, err = a.run("", "--docs", "demo", "overview")
	require.NoError(t, err)
	assert.Contains(t, out, "# demo Documentation Overview")
	assert.Contains(t, out, "  - API Reference")

	out, _, err = a.run("", "--docs", "demo", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Files:       2")

	// And the configured active set is used without --docs
	a.env["ANYDOCS_ACTIVE"] = "demo"
	out, _, err = a.run("", "search", "client")
	require.NoError(t, err)
	assert.Contains(t, out, "## Client")

	// When it is deleted
	out, _, err = a.run("", "delete", "demo", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted documentation set "demo"`)

	// Then it is gone
	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))
	_, stderr, err := a.run("", "search", "client")
	require.Error(t, err)
	assert.Contains(t, stderr, `documentation set "demo" not found`)
}

func TestMain_Run_Path(t *testing.T) {
	t.Parallel()

	a := newApp(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("# Readme\n\n## Usage\n\nCall it."), 0o644))

	out, _, err := a.run("", "--path", dir, "search", "usage", "--in", "title")

	require.NoError(t, err)
	assert.Contains(t, out, "**ID:** readme-1")
}

func TestMain_Run_NoActiveIndex(t *testing.T) {
	t.Parallel()

	a := newApp(t)

	_, stderr, err := a.run("", "files")

	require.Error(t, err)
	assert.Contains(t, stderr, "no documentation index is active")
}

func TestMain_Run_ImportMissingDir(t *testing.T) {
	t.Parallel()

	a := newApp(t)

	_, _, err := a.run("", "import", "demo", filepath.Join(t.TempDir(), "missing"))

	require.Error(t, err)
}

func TestMain_Run_AskRequiresAPIKey(t *testing.T) {
	t.Parallel()

	a := newApp(t)

	_, stderr, err := a.run("", "ask", "what", "is", "this")

	require.Error(t, err)
	assert.Contains(t, stderr, "GEMINI_API_KEY")
}

func TestMain_Run_Serve(t *testing.T) {
	t.Parallel()

	a := newApp(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guide.md"), []byte("# Guide\n\nHello."), 0o644))

	stdin := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}}}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}` + "\n"

	out, _, err := a.run(stdin, "--path", dir, "serve")

	require.NoError(t, err)
	assert.Contains(t, out, `"name":"anydocs"`)
	assert.Contains(t, out, "search_docs")
	assert.Contains(t, out, "switch_docs")
}

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jamesainslie/genindex/pkg/genindex/indexer"
	"github.com/spf13/pflag"
)

// executeRoot runs the CLI with args in an isolated environment and
// returns its standard output.
func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	// Flag values persist between executions of the same command tree.
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.Flags().VisitAll(reset)
	rootCmd.PersistentFlags().VisitAll(reset)
	cfgFile = ""

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), err
}

func writeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"a.txt":     "alpha",
		"b.md":      "# bravo",
		"sub/c.txt": "charlie",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestRootCommand_RecursiveGlob(t *testing.T) {
	root := writeTree(t)

	out, err := executeRoot(t, "-r", "-f", "*.txt", root)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	page, err := os.ReadFile(filepath.Join(root, "index.html"))
	if err != nil {
		t.Fatalf("root page not written: %v", err)
	}
	if !strings.Contains(string(page), "a.txt") {
		t.Error("root page does not list a.txt")
	}
	if strings.Contains(string(page), "b.md") {
		t.Error("root page lists b.md despite the filter")
	}
	if !strings.Contains(string(page), `href="sub/"`) {
		t.Error("root page does not link the subdirectory")
	}

	if _, err := os.Stat(filepath.Join(root, "sub", "index.html")); err != nil {
		t.Errorf("sub page not written: %v", err)
	}
	if !strings.Contains(out, "Indexed") {
		t.Errorf("summary missing from output: %q", out)
	}
}

func TestRootCommand_NonRecursive(t *testing.T) {
	root := writeTree(t)

	if _, err := executeRoot(t, "-q", root); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "index.html")); err != nil {
		t.Errorf("root page not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "sub", "index.html")); !os.IsNotExist(err) {
		t.Errorf("sub page written without -r: %v", err)
	}
}

func TestRootCommand_QuietPrintsNothing(t *testing.T) {
	root := writeTree(t)

	out, err := executeRoot(t, "-q", root)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "" {
		t.Errorf("output = %q, want empty", out)
	}
}

func TestRootCommand_DryRun(t *testing.T) {
	root := writeTree(t)

	out, err := executeRoot(t, "-n", "-r", root)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "index.html")); !os.IsNotExist(err) {
		t.Errorf("dry run wrote a page: %v", err)
	}
	if !strings.Contains(out, "Dry run") {
		t.Errorf("output = %q, want dry run summary", out)
	}
}

func TestRootCommand_OutputFile(t *testing.T) {
	root := writeTree(t)

	if _, err := executeRoot(t, "-q", "-o", "listing.html", root); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "listing.html")); err != nil {
		t.Errorf("custom page not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "index.html")); !os.IsNotExist(err) {
		t.Errorf("default page written: %v", err)
	}
}

func TestRootCommand_Errors(t *testing.T) {
	root := writeTree(t)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"invalid regex", []string{"-x", "(", root}, indexer.ErrInvalidFilterPattern},
		{"invalid glob", []string{"-f", "[abc", root}, indexer.ErrInvalidFilterPattern},
		{"output file escapes", []string{"-r", "-o", "../escaped.html", filepath.Join(root, "sub")}, indexer.ErrInvalidFilterPattern},
		{"missing root", []string{filepath.Join(root, "missing")}, indexer.ErrPathNotFound},
		{"root is a file", []string{filepath.Join(root, "a.txt")}, indexer.ErrPathNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeRoot(t, append([]string{"-q"}, tt.args...)...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Execute() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(root, "index.html")); !os.IsNotExist(err) {
		t.Errorf("a failed run wrote a page: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "escaped.html")); !os.IsNotExist(err) {
		t.Errorf("an escaping output file was written: %v", err)
	}
}

func TestRootCommand_RecordAndHistory(t *testing.T) {
	root := writeTree(t)
	historyDir := t.TempDir()
	t.Setenv("GENINDEX_HISTORY_PATH", historyDir)

	if _, err := executeRoot(t, "-q", "--record", root); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	files, err := filepath.Glob(filepath.Join(historyDir, "run-*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("history files = %v, want exactly one", files)
	}

	out, err := executeRoot(t, "history")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	if !strings.Contains(out, root) {
		t.Errorf("history output does not mention %s:\n%s", root, out)
	}

	id := strings.TrimSuffix(filepath.Base(files[0]), ".json")
	out, err = executeRoot(t, "history", "show", id)
	if err != nil {
		t.Fatalf("history show error = %v", err)
	}
	if !strings.Contains(out, filepath.Join(root, "index.html")) {
		t.Errorf("history show does not list the written page:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := executeRoot(t, "version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(out, "genindex dev") {
		t.Errorf("output = %q, want prefix %q", out, "genindex dev")
	}
}

func TestConfigCommands(t *testing.T) {
	out, err := executeRoot(t, "config", "path")
	if err != nil {
		t.Fatalf("config path error = %v", err)
	}
	path := strings.TrimSpace(out)
	if filepath.Base(path) != "config.yaml" {
		t.Fatalf("config path = %q, want a config.yaml path", path)
	}

	if _, err := executeRoot(t, "config", "init"); err != nil {
		t.Fatalf("config init error = %v", err)
	}

	out, err = executeRoot(t, "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	if !strings.Contains(out, "output_file: index.html") {
		t.Errorf("config show output missing output_file:\n%s", out)
	}
}

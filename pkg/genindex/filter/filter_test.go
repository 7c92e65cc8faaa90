package filter

import (
	"errors"
	"testing"
	"time"

	"github.com/jamesainslie/genindex/pkg/genindex/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func file(name string) types.DirectoryEntry {
	return types.DirectoryEntry{
		Name:       name,
		Kind:       types.KindFile,
		TargetKind: types.KindFile,
		IsHidden:   types.IsHiddenName(name),
	}
}

func dir(name string) types.DirectoryEntry {
	return types.DirectoryEntry{
		Name:       name,
		Kind:       types.KindDirectory,
		TargetKind: types.KindDirectory,
		Size:       -1,
		IsHidden:   types.IsHiddenName(name),
	}
}

func names(entries []types.DirectoryEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestNew_Defaults(t *testing.T) {
	f, err := New()
	require.NoError(t, err)

	assert.Equal(t, SortName, f.SortBy)
	assert.Equal(t, "index.html", f.OutputFile)
	assert.False(t, f.SortDescending)
	assert.False(t, f.IncludeHidden)
	assert.Empty(t, f.Glob)
	assert.Empty(t, f.ExcludeRegex)
}

func TestNew_OutputFile(t *testing.T) {
	f, err := New(WithOutputFile("listing.html"))
	require.NoError(t, err)
	assert.Equal(t, "listing.html", f.OutputFile)

	f, err = New(WithOutputFile(""))
	require.NoError(t, err)
	assert.Equal(t, "index.html", f.OutputFile, "empty name falls back to the default")
}

func TestNew_InvalidPatterns(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{name: "unterminated glob range", opts: []Option{WithGlob("[abc")}},
		{name: "unbalanced regex group", opts: []Option{WithExcludeRegex("(build")}},
		{name: "bad regex repetition", opts: []Option{WithExcludeRegex("*foo")}},
		{name: "output file in parent", opts: []Option{WithOutputFile("../x.html")}},
		{name: "output file in subdirectory", opts: []Option{WithOutputFile("sub/index.html")}},
		{name: "output file is parent", opts: []Option{WithOutputFile("..")}},
		{name: "output file is directory itself", opts: []Option{WithOutputFile(".")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.opts...)
			require.Error(t, err)
			assert.Nil(t, f)
			assert.True(t, errors.Is(err, ErrInvalidPattern), "error should wrap ErrInvalidPattern: %v", err)
		})
	}
}

func TestMatch_Hidden(t *testing.T) {
	tests := []struct {
		name          string
		includeHidden bool
		entry         types.DirectoryEntry
		want          bool
	}{
		{"hidden file dropped by default", false, file(".env"), false},
		{"hidden dir dropped by default", false, dir(".git"), false},
		{"visible file kept", false, file("notes.txt"), true},
		{"hidden file kept when requested", true, file(".env"), true},
		{"hidden dir kept when requested", true, dir(".git"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(WithIncludeHidden(tt.includeHidden))
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Match(tt.entry))
		})
	}
}

func TestMatch_Glob(t *testing.T) {
	f, err := New(WithGlob("*.txt"))
	require.NoError(t, err)

	assert.True(t, f.Match(file("a.txt")))
	assert.False(t, f.Match(file("b.md")))
	assert.True(t, f.Match(dir("sub")), "directories are exempt from the glob")

	linkToDir := types.DirectoryEntry{Name: "link", Kind: types.KindSymlink, TargetKind: types.KindDirectory}
	assert.True(t, f.Match(linkToDir), "links to directories are navigable and exempt")

	linkToFile := types.DirectoryEntry{Name: "link.md", Kind: types.KindSymlink, TargetKind: types.KindFile}
	assert.False(t, f.Match(linkToFile))
}

func TestMatch_GlobAlternation(t *testing.T) {
	f, err := New(WithGlob("*.{jpg,png}"))
	require.NoError(t, err)

	assert.True(t, f.Match(file("cat.jpg")))
	assert.True(t, f.Match(file("dog.png")))
	assert.False(t, f.Match(file("notes.txt")))
}

func TestMatch_ExcludeRegexWinsOverGlob(t *testing.T) {
	f, err := New(WithGlob("*.txt"), WithExcludeRegex("^draft"))
	require.NoError(t, err)

	assert.True(t, f.Match(file("final.txt")))
	assert.False(t, f.Match(file("draft-1.txt")), "exclude regex must drop glob matches")
}

func TestMatch_ExcludeRegexAppliesToDirectories(t *testing.T) {
	f, err := New(WithExcludeRegex("(build|node_modules|__pycache__)"))
	require.NoError(t, err)

	assert.False(t, f.Match(dir("node_modules")))
	assert.False(t, f.Match(dir("build")))
	assert.True(t, f.Match(dir("src")))
}

func TestMatch_OutputFileNeverListed(t *testing.T) {
	f, err := New(WithOutputFile("index.html"))
	require.NoError(t, err)

	assert.False(t, f.Match(file("index.html")))
	assert.False(t, f.Match(file("INDEX.HTML")), "comparison ignores case")
	assert.True(t, f.Match(file("index.htm")))
}

func TestSort_DirectoriesFirstCaseInsensitive(t *testing.T) {
	f, err := New()
	require.NoError(t, err)

	input := []types.DirectoryEntry{
		file("b.txt"),
		dir("zeta"),
		file("A.txt"),
		dir("Alpha"),
		file("a.txt"),
		file("C.md"),
	}

	got := f.Sort(input)

	assert.Equal(t, []string{"Alpha", "zeta", "A.txt", "a.txt", "b.txt", "C.md"}, names(got))
	assert.Equal(t, "b.txt", input[0].Name, "input must not be modified")
}

func TestSort_BySizeDescending(t *testing.T) {
	f, err := New(WithSortBy(SortSize), WithSortDescending(true))
	require.NoError(t, err)

	small := file("small")
	small.Size = 10
	big := file("big")
	big.Size = 1000
	tieA := file("tie-a")
	tieA.Size = 500
	tieB := file("tie-b")
	tieB.Size = 500

	got := f.Sort([]types.DirectoryEntry{small, tieB, dir("sub"), big, tieA})

	assert.Equal(t, []string{"sub", "big", "tie-a", "tie-b", "small"}, names(got))
}

func TestSort_ByModified(t *testing.T) {
	f, err := New(WithSortBy(SortModified))
	require.NoError(t, err)

	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	older := file("older")
	older.ModTime = now.Add(-time.Hour)
	newer := file("newer")
	newer.ModTime = now

	got := f.Sort([]types.DirectoryEntry{newer, older})
	assert.Equal(t, []string{"older", "newer"}, names(got))
}

func TestSort_Empty(t *testing.T) {
	f, err := New()
	require.NoError(t, err)

	got := f.Sort(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApply(t *testing.T) {
	f, err := New(WithGlob("*.txt"), WithOutputFile("index.html"))
	require.NoError(t, err)

	got := f.Apply([]types.DirectoryEntry{
		file("b.md"),
		file("index.html"),
		file("a.txt"),
		file(".hidden.txt"),
		dir("sub"),
	})

	assert.Equal(t, []string{"sub", "a.txt"}, names(got))
}

func TestParseSortField(t *testing.T) {
	tests := []struct {
		input   string
		want    SortField
		wantErr bool
	}{
		{"name", SortName, false},
		{"", SortName, false},
		{"SIZE", SortSize, false},
		{"modified", SortModified, false},
		{"mtime", SortModified, false},
		{"owner", SortName, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortField(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidSortField))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}
}

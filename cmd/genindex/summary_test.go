package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jamesainslie/genindex/pkg/genindex/indexer"
	"github.com/jamesainslie/genindex/pkg/genindex/types"
)

func TestPrintSummary(t *testing.T) {
	t.Run("clean run", func(t *testing.T) {
		var buf bytes.Buffer
		printSummary(&buf, &indexer.Result{
			Root:          "/srv/files",
			DirsIndexed:   3,
			EntriesListed: 14,
			Written:       []string{"/srv/files/index.html"},
			Unchanged:     []string{"/srv/files/a/index.html", "/srv/files/b/index.html"},
			Elapsed:       1500 * time.Microsecond,
		})
		out := buf.String()

		for _, want := range []string{"Indexed", "/srv/files", "directories:", "written:", "unchanged:"} {
			if !strings.Contains(out, want) {
				t.Errorf("summary missing %q:\n%s", want, out)
			}
		}
		if strings.Contains(out, "errors") {
			t.Errorf("clean run reports errors:\n%s", out)
		}
		if strings.Contains(out, "already visited") {
			t.Errorf("clean run reports skipped directories:\n%s", out)
		}
	})

	t.Run("dry run", func(t *testing.T) {
		var buf bytes.Buffer
		printSummary(&buf, &indexer.Result{Root: "/srv", DryRun: true})
		out := buf.String()

		if !strings.Contains(out, "Dry run") || !strings.Contains(out, "would write:") {
			t.Errorf("dry run summary = %q", out)
		}
	})

	t.Run("errors are capped", func(t *testing.T) {
		res := &indexer.Result{Root: "/srv", Skipped: []string{"/srv/loop"}, Interrupted: true}
		for i := 0; i < 12; i++ {
			res.Errors = append(res.Errors, types.ScanError{
				Path:  fmt.Sprintf("/srv/d%02d", i),
				Op:    "access",
				Error: "permission denied",
			})
		}

		var buf bytes.Buffer
		printSummary(&buf, res)
		out := buf.String()

		if !strings.Contains(out, "12 errors") {
			t.Errorf("summary missing error count:\n%s", out)
		}
		if !strings.Contains(out, "/srv/d09") || strings.Contains(out, "/srv/d10") {
			t.Errorf("summary does not cap the error list:\n%s", out)
		}
		if !strings.Contains(out, "... and 2 more") {
			t.Errorf("summary missing overflow line:\n%s", out)
		}
		if !strings.Contains(out, "already visited") {
			t.Errorf("summary missing skipped count:\n%s", out)
		}
		if !strings.Contains(out, "interrupted") {
			t.Errorf("summary missing interruption:\n%s", out)
		}
	})
}

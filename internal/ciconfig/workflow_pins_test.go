// Package ciconfig_test enforces repository CI policy: every GitHub Action
// referenced by a workflow is pinned to a full commit SHA and annotated with
// the tag the SHA was resolved from.
package ciconfig_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

var (
	pinnedSHA   = regexp.MustCompile(`@[0-9a-f]{40}\b`)
	versionNote = regexp.MustCompile(`#\s*v\d`)
)

func TestWorkflowActions_PinnedToCommitSHA(t *testing.T) {
	for _, path := range workflowFiles(t) {
		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		for i, line := range strings.Split(string(content), "\n") {
			if !strings.Contains(line, "uses:") {
				continue
			}
			if !pinnedSHA.MatchString(line) {
				t.Errorf("%s:%d: action not pinned to commit SHA: %s",
					filepath.Base(path), i+1, strings.TrimSpace(line))
			}
			if !versionNote.MatchString(line) {
				t.Errorf("%s:%d: pinned action missing version annotation: %s",
					filepath.Base(path), i+1, strings.TrimSpace(line))
			}
		}
	}
}

func workflowFiles(t *testing.T) []string {
	t.Helper()

	var files []string
	for _, pattern := range []string{"../../.github/workflows/*.yml", "../../.github/workflows/*.yaml"} {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			t.Fatal(err)
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		t.Fatal("no workflow files found")
	}
	return files
}

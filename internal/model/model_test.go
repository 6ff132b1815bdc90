package model

import (
	"encoding/json"
	"strings"
	"testing"
)

// TestRunStatusString tests the String method of RunStatus.
func TestRunStatusString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		status   RunStatus
		expected string
	}{
		{RunSuccess, "success"},
		{RunNotFound, "not_found"},
		{RunDecodeError, "decode_error"},
		{RunFailed, "failed"},
		{RunStatus(42), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.status.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.status.String(), tc.expected)
			}
		})
	}
}

// TestParseRunStatus tests that every status survives a round trip through its string.
func TestParseRunStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []RunStatus{RunSuccess, RunNotFound, RunDecodeError, RunFailed} {
		if got := ParseRunStatus(status.String()); got != status {
			t.Errorf("ParseRunStatus(%q) = %v, want %v", status.String(), got, status)
		}
	}

	if got := ParseRunStatus("garbage"); got != RunFailed {
		t.Errorf("expected unknown status to map to RunFailed, got %v", got)
	}
}

// TestRunJSON tests that the status is written as a readable string.
func TestRunJSON(t *testing.T) {
	t.Parallel()

	run := NewRun(ToolSchema, "in.json", "out.json")
	run.Status = RunDecodeError

	data, err := json.Marshal(run)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), `"status":"decode_error"`) {
		t.Errorf("expected status string in JSON, got %s", data)
	}
	if !strings.Contains(string(data), `"tool":"schema"`) {
		t.Errorf("expected tool in JSON, got %s", data)
	}
}

// TestNewRun tests the defaults of a new run.
func TestNewRun(t *testing.T) {
	t.Parallel()

	run := NewRun(ToolTree, ".", "directory_structure.txt")
	if !run.Succeeded() {
		t.Error("expected a new run to start as successful")
	}
	if run.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

// TestListingFileCount tests file counting across nodes.
func TestListingFileCount(t *testing.T) {
	t.Parallel()

	listing := &Listing{
		Nodes: []DirNode{
			{Name: ".", Files: []string{"a", "b"}, Dirs: []string{"src"}},
			{Name: "src", Level: 1, Files: []string{"main.go"}},
		},
	}

	if got := listing.FileCount(); got != 3 {
		t.Errorf("expected 3 files, got %d", got)
	}
	if !listing.Nodes[0].HasChildDirs() {
		t.Error("expected root to have child dirs")
	}
	if listing.Nodes[1].HasChildDirs() {
		t.Error("expected src to have no child dirs")
	}
}

// TestCompare tests the change classification between two runs.
func TestCompare(t *testing.T) {
	t.Parallel()

	ok := func(digest string) *Run {
		return &Run{Status: RunSuccess, Digest: digest}
	}

	testCases := []struct {
		name     string
		run      *Run
		prev     *Run
		expected Change
	}{
		{"first successful run is new", ok("aa"), nil, ChangeNew},
		{"same digest is unchanged", ok("aa"), ok("aa"), ChangeUnchanged},
		{"different digest is changed", ok("bb"), ok("aa"), ChangeChanged},
		{"failed run has no change", &Run{Status: RunDecodeError}, ok("aa"), ChangeNone},
		{"nil run has no change", nil, nil, ChangeNone},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Compare(tc.run, tc.prev); got != tc.expected {
				t.Errorf("got %v, expected %v", got, tc.expected)
			}
		})
	}
}

// TestChangeJSON tests that changes marshal as their labels.
func TestChangeJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(HistoryEntry{Run: &Run{Tool: ToolTree}, Change: ChangeUnchanged})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), `"change":"unchanged"`) {
		t.Errorf("expected change label in %s", data)
	}
}

func TestChangeUnmarshalText(t *testing.T) {
	t.Parallel()

	for _, want := range []Change{ChangeNew, ChangeChanged, ChangeUnchanged, ChangeNone} {
		text, err := want.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText failed: %v", err)
		}
		var got Change
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) failed: %v", text, err)
		}
		if got != want {
			t.Errorf("UnmarshalText(%q) = %v, want %v", text, got, want)
		}
	}
}

package model

// Change tells how a run's output compares with the previous successful run
// that wrote the same file.
type Change int

const (
	// ChangeNew means no earlier successful run wrote this output.
	ChangeNew Change = iota

	// ChangeChanged means the output digest differs from the previous run.
	ChangeChanged

	// ChangeUnchanged means the output digest matches the previous run.
	ChangeUnchanged

	// ChangeNone is used for failed runs, which wrote nothing.
	ChangeNone
)

// String returns the label shown in history listings.
func (c Change) String() string {
	switch c {
	case ChangeNew:
		return "new"
	case ChangeChanged:
		return "changed"
	case ChangeUnchanged:
		return "unchanged"
	default:
		return "-"
	}
}

// MarshalText encodes the change as its label.
func (c Change) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a label written by MarshalText.
// Unknown labels decode to ChangeNone.
func (c *Change) UnmarshalText(text []byte) error {
	switch string(text) {
	case "new":
		*c = ChangeNew
	case "changed":
		*c = ChangeChanged
	case "unchanged":
		*c = ChangeUnchanged
	default:
		*c = ChangeNone
	}
	return nil
}

// Compare classifies run against prev, the last successful run for the same
// tool and output. prev may be nil.
func Compare(run, prev *Run) Change {
	switch {
	case run == nil || !run.Succeeded():
		return ChangeNone
	case prev == nil:
		return ChangeNew
	case prev.Digest == run.Digest:
		return ChangeUnchanged
	default:
		return ChangeChanged
	}
}

// HistoryEntry is a run together with its change classification.
type HistoryEntry struct {
	Run    *Run   `json:"run"`
	Change Change `json:"change"`
}

package model

import "time"

// Tool identifies which utility produced a run.
type Tool string

const (
	// ToolTree is the directory tree printer.
	ToolTree Tool = "tree"

	// ToolSchema is the JSON schema extractor.
	ToolSchema Tool = "schema"
)

// RunStatus is the outcome of a run.
type RunStatus int

const (
	// RunSuccess means the output file was written.
	RunSuccess RunStatus = iota

	// RunNotFound means the input file did not exist.
	RunNotFound

	// RunDecodeError means the input was not valid JSON.
	RunDecodeError

	// RunFailed covers every other failure.
	RunFailed
)

// String returns the stored representation of the status.
func (s RunStatus) String() string {
	switch s {
	case RunSuccess:
		return "success"
	case RunNotFound:
		return "not_found"
	case RunDecodeError:
		return "decode_error"
	case RunFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ParseRunStatus converts a stored status back into a RunStatus.
// Unrecognized values map to RunFailed.
func ParseRunStatus(s string) RunStatus {
	switch s {
	case "success":
		return RunSuccess
	case "not_found":
		return RunNotFound
	case "decode_error":
		return RunDecodeError
	default:
		return RunFailed
	}
}

// MarshalText encodes the status as its stored string.
func (s RunStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a stored status string.
func (s *RunStatus) UnmarshalText(text []byte) error {
	*s = ParseRunStatus(string(text))
	return nil
}

// Run is one recorded tree or schema run.
type Run struct {
	ID        int64     `json:"id"`
	Tool      Tool      `json:"tool"`
	Source    string    `json:"source"`
	Output    string    `json:"output"`
	Status    RunStatus `json:"status"`
	Message   string    `json:"message,omitempty"`
	Digest    string    `json:"digest,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Succeeded reports whether the run wrote its output.
func (r *Run) Succeeded() bool {
	return r.Status == RunSuccess
}

// NewRun creates a Run for the given tool stamped with the current time.
func NewRun(tool Tool, source, output string) *Run {
	return &Run{
		Tool:      tool,
		Source:    source,
		Output:    output,
		Status:    RunSuccess,
		Timestamp: time.Now(),
	}
}

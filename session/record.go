// Package session implements the pinned session-record wire format read
// from the multiplexer's list operation, and the command-builder surface
// for every multiplexer sub-operation the core needs, all targeting a
// dedicated socket so fleet sessions never collide with a user's personal
// multiplexer namespace.
package session

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mattsolo1/nexus/nexuserr"
	"gopkg.in/yaml.v3"
)

// Socket is the dedicated multiplexer control socket fleet sessions live
// on, isolated from the caller's personal multiplexer namespace.
const Socket = "nexus"

// recordFields is the fixed field count of the pinned wire format. Any
// other count is a hard format error, never a silent skip.
const recordFields = 8

// Format is the pinned delimited format string handed to the multiplexer's
// list operation, matching field-for-field the order Record decodes.
const Format = "#{session_name}|#{session_windows}|#{session_attached}|#{pane_current_path}|#{pane_current_command}|#{pane_pid}|#{pane_dead}|#{pane_dead_status}"

// Record is one row of live state on a node.
type Record struct {
	Name             string `json:"name" yaml:"name"`
	Windows          int    `json:"windows" yaml:"windows"`
	Attached         int    `json:"attached" yaml:"attached"`
	WorkingDirectory string `json:"working_directory" yaml:"working_directory"`
	Command          string `json:"command" yaml:"command"`
	PID              int    `json:"pid" yaml:"pid"`
	IsDead           bool   `json:"is_dead" yaml:"is_dead"`
	ExitStatus       int    `json:"-" yaml:"-"`
	HasExitStatus    bool   `json:"-" yaml:"-"`
}

// recordWire mirrors Record but carries ExitStatus as a pointer, so both
// the JSON and YAML encodings render it iff the session is dead —
// omitempty on a bare int would drop a clean exit (status 0) even though
// is_dead is true.
type recordWire struct {
	Name             string `json:"name" yaml:"name"`
	Windows          int    `json:"windows" yaml:"windows"`
	Attached         int    `json:"attached" yaml:"attached"`
	WorkingDirectory string `json:"working_directory" yaml:"working_directory"`
	Command          string `json:"command" yaml:"command"`
	PID              int    `json:"pid" yaml:"pid"`
	IsDead           bool   `json:"is_dead" yaml:"is_dead"`
	ExitStatus       *int   `json:"exit_status,omitempty" yaml:"exit_status,omitempty"`
}

func (r Record) toWire() recordWire {
	out := recordWire{
		Name:             r.Name,
		Windows:          r.Windows,
		Attached:         r.Attached,
		WorkingDirectory: r.WorkingDirectory,
		Command:          r.Command,
		PID:              r.PID,
		IsDead:           r.IsDead,
	}
	if r.HasExitStatus {
		out.ExitStatus = &r.ExitStatus
	}
	return out
}

func (r *Record) fromWire(in recordWire) {
	r.Name = in.Name
	r.Windows = in.Windows
	r.Attached = in.Attached
	r.WorkingDirectory = in.WorkingDirectory
	r.Command = in.Command
	r.PID = in.PID
	r.IsDead = in.IsDead
	if in.ExitStatus != nil {
		r.ExitStatus = *in.ExitStatus
		r.HasExitStatus = true
	}
}

// MarshalJSON renders exit_status only when the session is dead, matching
// the wire format's own is_dead-gated exit_status field.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.toWire())
}

// UnmarshalJSON restores Record from its is_dead-gated JSON form.
func (r *Record) UnmarshalJSON(data []byte) error {
	var in recordWire
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	r.fromWire(in)
	return nil
}

// MarshalYAML renders exit_status only when the session is dead, mirroring
// MarshalJSON for the --format yaml output path.
func (r Record) MarshalYAML() (interface{}, error) {
	return r.toWire(), nil
}

// UnmarshalYAML restores Record from its is_dead-gated YAML form.
func (r *Record) UnmarshalYAML(value *yaml.Node) error {
	var in recordWire
	if err := value.Decode(&in); err != nil {
		return err
	}
	r.fromWire(in)
	return nil
}

// Parse decodes the pinned list output into records. Empty input yields
// an empty slice, not an error. Any line without exactly eight
// pipe-separated fields, or with a non-numeric numeric field, is a fatal
// FormatParseError — the multiplexer's contract with the core is total,
// and a violation of it is never silently dropped.
func Parse(raw string) ([]Record, error) {
	raw = strings.TrimRight(raw, "\n")
	if raw == "" {
		return []Record{}, nil
	}

	lines := strings.Split(raw, "\n")
	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		rec, err := parseLine(line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseLine(line string) (Record, error) {
	fields := strings.Split(line, "|")
	if len(fields) != recordFields {
		return Record{}, nexuserr.FormatParseError(line,
			"expected 8 fields, got "+strconv.Itoa(len(fields)))
	}

	windows, err := strconv.Atoi(fields[1])
	if err != nil {
		return Record{}, nexuserr.FormatParseError(line, "non-numeric windows field: "+fields[1])
	}
	attached, err := strconv.Atoi(fields[2])
	if err != nil {
		return Record{}, nexuserr.FormatParseError(line, "non-numeric attached field: "+fields[2])
	}
	pid, err := strconv.Atoi(fields[5])
	if err != nil {
		return Record{}, nexuserr.FormatParseError(line, "non-numeric pid field: "+fields[5])
	}

	isDead := fields[6] == "1"
	rec := Record{
		Name:             fields[0],
		Windows:          windows,
		Attached:         attached,
		WorkingDirectory: fields[3],
		Command:          fields[4],
		PID:              pid,
		IsDead:           isDead,
	}

	exitField := strings.TrimSpace(fields[7])
	switch {
	case !isDead:
		// exit_status must be absent for a live session; the multiplexer
		// never populates it, so any value here is ignored rather than
		// treated as a contract violation.
	case exitField == "":
		return Record{}, nexuserr.FormatParseError(line, "is_dead=1 but exit_status is empty")
	default:
		status, err := strconv.Atoi(exitField)
		if err != nil {
			return Record{}, nexuserr.FormatParseError(line, "non-numeric exit_status field: "+exitField)
		}
		rec.ExitStatus = status
		rec.HasExitStatus = true
	}

	return rec, nil
}

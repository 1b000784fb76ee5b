package logger

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       StrCounter `json:"sessions"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	RunCommand     RunCommandReport     `json:"run_command_report"`
	UnknownCommand UnknownCommandReport `json:"unknown_command_report"`
	Builtin        BuiltinReport        `json:"builtin_report"`
	Failures       *PathCounter         `json:"failures"`
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{}
}

// Update adds a single entry to the report.
func (r *Report) Update(le *LogEntry) {
	if r.Failures == nil {
		r.Failures = NewPathCounter("type", "command", "error")
	}

	r.LogEntries++
	if le.SessionID != "" {
		r.Sessions.Increment(le.SessionID)
	}

	switch le.Type {
	case EventRunCommand:
		r.RunCommand.update(le)
	case EventUnknownCommand:
		r.UnknownCommand.update(le)
	case EventBuiltin:
		r.Builtin.update(le)
		if le.Error != "" {
			r.Failures.Increment(string(le.Type), commandName(le), le.Error)
		}
	case EventExecFailed, EventForkFailed, EventTooManyArguments:
		r.Failures.Increment(string(le.Type), commandName(le), le.Error)
	default:
		r.InvalidEntries.Increment(fmt.Sprintf("%q", le.Type))
	}
}

func commandName(le *LogEntry) string {
	if len(le.Command) > 0 {
		return le.Command[0]
	}
	return ""
}

type RunCommandReport struct {
	// Paths the commands resolved to.
	ResolvedCommandPaths StrCounter `json:"resolved_command_paths"`
	// Name of the command as typed.
	CommandNames StrCounter `json:"command_names"`
	// Exit codes, or "abnormal" for signalled processes.
	Statuses StrCounter `json:"statuses"`
}

func (r *RunCommandReport) update(le *LogEntry) {
	r.ResolvedCommandPaths.Increment(le.ResolvedPath)
	r.CommandNames.Increment(commandName(le))
	if le.Abnormal {
		r.Statuses.Increment("abnormal")
	} else {
		r.Statuses.Increment(fmt.Sprintf("%d", le.ExitCode))
	}
}

type UnknownCommandReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *UnknownCommandReport) update(le *LogEntry) {
	r.CommandNames.Increment(commandName(le))
}

type BuiltinReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *BuiltinReport) update(le *LogEntry) {
	r.CommandNames.Increment(commandName(le))
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Get returns the count for the given key.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	if s.internal == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of distinct column tuples seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// Get returns the count for the given tuple.
func (ctr *PathCounter) Get(vals ...string) int {
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}

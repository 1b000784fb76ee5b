package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"time"
)

// EventType identifies what happened to a dispatched line.
type EventType string

const (
	EventBuiltin          EventType = "builtin"
	EventRunCommand       EventType = "run_command"
	EventUnknownCommand   EventType = "unknown_command"
	EventExecFailed       EventType = "exec_failed"
	EventForkFailed       EventType = "fork_failed"
	EventTooManyArguments EventType = "too_many_arguments"
)

// LogEntry is a single recorded event.
type LogEntry struct {
	TimestampMicros int64     `json:"timestamp_micros"`
	SessionID       string    `json:"session_id,omitempty"`
	Type            EventType `json:"type"`
	Command         []string  `json:"command,omitempty"`
	ResolvedPath    string    `json:"resolved_path,omitempty"`
	ExitCode        int       `json:"exit_code"`
	Abnormal        bool      `json:"abnormal,omitempty"`
	Error           string    `json:"error,omitempty"`
}

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger captures events for later analysis.
type Logger struct {
	Record LogRecorder

	// Now is the clock used to stamp entries, time.Now if nil.
	Now func() time.Time
}

// NewJSONLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJSONLinesLogRecorder(w io.Writer) *Logger {
	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := json.Marshal(le)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// NewNopLogger creates a Logger that drops every event.
func NewNopLogger() *Logger {
	return &Logger{
		Record: func(*LogEntry) error { return nil },
	}
}

func (l *Logger) now() time.Time {
	if l.Now == nil {
		return time.Now()
	}
	return l.Now()
}

func (l *Logger) record(sessionID string, le *LogEntry) error {
	le.TimestampMicros = l.now().UnixNano() / int64(time.Microsecond)
	le.SessionID = sessionID

	return l.Record(le)
}

// NewSession creates a logger with attached session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: fmt.Sprintf("%d", rand.Uint64())}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

// SessionID returns the ID attached to every entry.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

// Record stamps the entry and hands it to the recorder.
func (l *SessionLogger) Record(le *LogEntry) error {
	return l.record(l.sessionID, le)
}

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

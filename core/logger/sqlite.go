package logger

import (
	"database/sql"
	"encoding/json"
	"sync"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp_micros INTEGER,
	session_id TEXT,
	type TEXT,
	command TEXT,
	resolved_path TEXT,
	exit_code INTEGER,
	abnormal INTEGER,
	error TEXT
);`

// OpenSQLiteLog opens the SQLite event database at path, creating it and its
// table if needed.
func OpenSQLiteLog(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// NewSQLiteLogRecorder creates a Logger that inserts one row per event into
// a database opened with OpenSQLiteLog.
func NewSQLiteLogRecorder(db *sql.DB) *Logger {
	var mu sync.Mutex

	return &Logger{
		Record: func(le *LogEntry) error {
			command, err := json.Marshal(le.Command)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			_, err = db.Exec(`INSERT INTO events
				(timestamp_micros, session_id, type, command, resolved_path, exit_code, abnormal, error)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				le.TimestampMicros,
				le.SessionID,
				string(le.Type),
				string(command),
				le.ResolvedPath,
				le.ExitCode,
				boolToInt(le.Abnormal),
				le.Error,
			)
			return err
		},
	}
}

// ReadSQLiteLog passes every stored event to handler in insertion order.
func ReadSQLiteLog(db *sql.DB, handler func(le *LogEntry)) error {
	rows, err := db.Query(`SELECT timestamp_micros, session_id, type, command, resolved_path, exit_code, abnormal, error
		FROM events ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			le       LogEntry
			typ      string
			command  string
			abnormal int
		)
		if err := rows.Scan(&le.TimestampMicros, &le.SessionID, &typ, &command, &le.ResolvedPath, &le.ExitCode, &abnormal, &le.Error); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(command), &le.Command); err != nil {
			return err
		}
		le.Type = EventType(typ)
		le.Abnormal = abnormal == 1

		handler(&le)
	}
	return rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

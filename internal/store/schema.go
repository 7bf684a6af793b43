package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

const (
	tableWordProgress = "word_progress"
	tableHighScores   = "high_scores"
	tableLevelMastery = "level_mastery"
	tableVocabulary   = "vocabulary"
	tableLookalikes   = "lookalikes"
	tableSessionEvent = "session_events"
	tableAnswerEvent  = "answer_events"
	tableLLMEvent     = "llm_request_events"
)

// eventColumns are shared by every event table: a global sequence number
// and a UTC timestamp.
const eventColumns = `
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	sequence INTEGER NOT NULL UNIQUE,
	timestamp TEXT NOT NULL,`

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS ` + tableWordProgress + ` (
	language TEXT NOT NULL,
	word_key TEXT NOT NULL,
	stage INTEGER NOT NULL,
	easiness REAL NOT NULL,
	interval_days INTEGER NOT NULL,
	repetitions INTEGER NOT NULL,
	next_review TEXT NOT NULL,
	last_reviewed TEXT,
	correct_streak INTEGER NOT NULL DEFAULT 0,
	total_attempts INTEGER NOT NULL DEFAULT 0,
	correct_attempts INTEGER NOT NULL DEFAULT 0,
	mastered BOOLEAN NOT NULL DEFAULT false,
	PRIMARY KEY (language, word_key)
)`,
	`CREATE TABLE IF NOT EXISTS ` + tableHighScores + ` (
	rank INTEGER PRIMARY KEY,
	score INTEGER NOT NULL,
	accuracy INTEGER NOT NULL,
	language TEXT NOT NULL,
	level TEXT NOT NULL,
	achieved_at TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS ` + tableLevelMastery + ` (
	language TEXT NOT NULL,
	level TEXT NOT NULL,
	mastered INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (language, level)
)`,
	`CREATE TABLE IF NOT EXISTS ` + tableVocabulary + ` (
	language TEXT NOT NULL,
	level TEXT NOT NULL,
	source TEXT NOT NULL,
	translation TEXT NOT NULL,
	pronunciation TEXT NOT NULL DEFAULT '',
	added_at TEXT NOT NULL,
	PRIMARY KEY (language, level, source)
)`,
	`CREATE TABLE IF NOT EXISTS ` + tableLookalikes + ` (
	word TEXT PRIMARY KEY,
	forms TEXT NOT NULL,
	origin TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS ` + tableSessionEvent + ` (` + eventColumns + `
	session_id TEXT NOT NULL,
	action TEXT NOT NULL,
	language TEXT NOT NULL,
	level TEXT NOT NULL,
	questions_served INTEGER NOT NULL DEFAULT 0,
	correct_answers INTEGER NOT NULL DEFAULT 0,
	score INTEGER NOT NULL DEFAULT 0,
	duration_secs INTEGER NOT NULL DEFAULT 0
)`,
	`CREATE TABLE IF NOT EXISTS ` + tableAnswerEvent + ` (` + eventColumns + `
	session_id TEXT NOT NULL,
	word_key TEXT NOT NULL,
	stage INTEGER NOT NULL,
	correct BOOLEAN NOT NULL,
	timed_out BOOLEAN NOT NULL DEFAULT false,
	time_ms INTEGER NOT NULL DEFAULT 0,
	new_stage INTEGER NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS ` + tableLLMEvent + ` (` + eventColumns + `
	provider TEXT NOT NULL,
	model TEXT NOT NULL,
	purpose TEXT NOT NULL,
	input_tokens INTEGER NOT NULL DEFAULT 0,
	output_tokens INTEGER NOT NULL DEFAULT 0,
	latency_ms INTEGER NOT NULL DEFAULT 0,
	success BOOLEAN NOT NULL,
	error_message TEXT NOT NULL DEFAULT '',
	request_body TEXT NOT NULL DEFAULT '',
	response_body TEXT NOT NULL DEFAULT ''
)`,
	`CREATE INDEX IF NOT EXISTS answer_events_session_id ON ` + tableAnswerEvent + ` (session_id)`,
	`CREATE INDEX IF NOT EXISTS session_events_session_id ON ` + tableSessionEvent + ` (session_id)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_purpose ON ` + tableLLMEvent + ` (purpose)`,
}

// migrate creates every table and index that does not exist yet. It is
// safe to run on an existing database.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	for _, stmt := range ddl {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

package store

import (
	"context"
	"time"

	"github.com/abhisek/vocabdrill/internal/session"
	"github.com/abhisek/vocabdrill/internal/spacedrep"
	"github.com/abhisek/vocabdrill/internal/wordlist"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// ProgressRepo persists per-word scheduling state, one snapshot per language.
type ProgressRepo interface {
	// Load returns the stored progress of a language. An empty snapshot is
	// returned when nothing was saved yet.
	Load(ctx context.Context, language string) (*spacedrep.Snapshot, error)

	// Save upserts every word of the snapshot.
	Save(ctx context.Context, language string, snap *spacedrep.Snapshot) error
}

// HighScoreRepo persists the best-first high-score list.
type HighScoreRepo interface {
	List(ctx context.Context) ([]session.HighScore, error)

	// Replace overwrites the stored list.
	Replace(ctx context.Context, scores []session.HighScore) error
}

// LevelRepo persists mastered-word counters per language and level.
type LevelRepo interface {
	Load(ctx context.Context, language string) (map[wordlist.Level]int, error)
	Set(ctx context.Context, language string, level wordlist.Level, mastered int) error
}

// VocabularyEntry is an imported word stored outside the built-in catalog.
type VocabularyEntry struct {
	Language string
	Level    wordlist.Level
	Word     wordlist.Word
	AddedAt  time.Time
}

// VocabularyRepo persists imported words.
type VocabularyRepo interface {
	// Add stores words under a language and level. Existing sources are
	// updated in place. Returns the number of rows written.
	Add(ctx context.Context, language string, level wordlist.Level, words []wordlist.Word) (int, error)

	All(ctx context.Context) ([]VocabularyEntry, error)
}

// LookalikeSet is a stored group of confusable forms for one word.
type LookalikeSet struct {
	Word      string
	Forms     []string
	Origin    string // "llm", "import", ...
	UpdatedAt time.Time
}

// LookalikeRepo persists lookalike sets keyed by word.
type LookalikeRepo interface {
	Put(ctx context.Context, set LookalikeSet) error
	All(ctx context.Context) ([]LookalikeSet, error)
}

// SessionEventData captures a round start or end.
type SessionEventData struct {
	SessionID       string
	Action          string // "start" or "end"
	Language        string
	Level           string
	QuestionsServed int
	CorrectAnswers  int
	Score           int
	DurationSecs    int
}

// SessionSummaryRecord is a completed round read back from the event log.
type SessionSummaryRecord struct {
	SessionID       string
	Timestamp       time.Time
	Language        string
	Level           string
	QuestionsServed int
	CorrectAnswers  int
	Score           int
	DurationSecs    int
}

// AnswerEventData captures a single answered question.
type AnswerEventData struct {
	SessionID string
	WordKey   string
	Stage     int
	Correct   bool
	TimedOut  bool
	TimeMs    int64
	NewStage  int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM usage for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records an answered question.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QuerySessionSummaries returns ended sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns a single event by ID, or nil if not found.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates token usage grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates token usage grouped by model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

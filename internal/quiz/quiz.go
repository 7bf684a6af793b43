package quiz

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/vocabdrill/internal/wordlist"
)

// TimeoutChoice is the choice index recorded when the answer window expires.
const TimeoutChoice = -1

// Quiz is a single multiple-choice question ready for display.
type Quiz struct {
	// Question is the source-language prompt.
	Question string

	// Options are the displayed choices. In audio mode these are the
	// anonymized labels "Option 1".."Option N".
	Options []string

	// CorrectAnswer is the translation text, or the positional label in
	// audio mode.
	CorrectAnswer string

	// CorrectIndex is the index into Options (and AudioSequence) holding
	// the correct answer.
	CorrectIndex int

	Stage     int
	StageName string
	TimeLimit time.Duration
	AudioMode bool

	// AudioSequence is the playback order of the translated options.
	// Empty when AudioMode is false.
	AudioSequence []string

	Word wordlist.Word
}

// Check reports whether choice is the correct option index. TimeoutChoice
// and out-of-range indices are incorrect.
func (q *Quiz) Check(choice int) bool {
	return choice >= 0 && choice < len(q.Options) && choice == q.CorrectIndex
}

// CheckText reports whether answer matches the correct answer text.
func (q *Quiz) CheckText(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), q.CorrectAnswer)
}

// Timed reports whether the quiz has an answer window.
func (q *Quiz) Timed() bool {
	return q.TimeLimit > 0
}

// OptionLabel returns the audio-mode label for a zero-based slot.
func OptionLabel(i int) string {
	return fmt.Sprintf("Option %d", i+1)
}

package session

import "math"

// Answer is the telemetry recorded for one answered question.
type Answer struct {
	Key      string
	Correct  bool
	Latency  float64 // seconds
	Stage    int
	TimedOut bool
}

// DefaultAvgResponseTime is used when a round has no recorded latencies.
const DefaultAvgResponseTime = 3.0

// NormalizeLatency converts a response time to seconds. Values above 100
// are taken to be milliseconds. Negative values become 0.
func NormalizeLatency(v float64) float64 {
	if v > 100 {
		v /= 1000
	}
	return max(0, v)
}

// RoundScore is the composite score of a round, out of 1000.
type RoundScore struct {
	Answered        int
	Correct         int
	Accuracy        int // percent, rounded
	AvgResponseTime float64
	TotalTime       float64
	AccuracyScore   float64 // 0-600
	SpeedScore      float64 // 0-200
	TimeScore       float64 // 0-200
	TotalScore      int
}

// ScoreRound aggregates answers into a round score. Latencies may be in
// seconds or milliseconds; each is passed through NormalizeLatency.
func ScoreRound(answers []Answer) RoundScore {
	s := RoundScore{Answered: len(answers)}
	for _, a := range answers {
		if a.Correct {
			s.Correct++
		}
		s.TotalTime += NormalizeLatency(a.Latency)
	}

	if s.Answered > 0 {
		s.Accuracy = int(math.Round(float64(s.Correct) / float64(s.Answered) * 100))
		s.AvgResponseTime = s.TotalTime / float64(s.Answered)
	} else {
		s.AvgResponseTime = DefaultAvgResponseTime
	}

	s.AccuracyScore = float64(s.Accuracy) / 100 * 600
	s.SpeedScore = max(0, 200-max(0, s.AvgResponseTime-1)*40)
	s.TimeScore = max(0, 200-max(0, s.TotalTime-20)*2)
	s.TotalScore = int(math.Round(s.AccuracyScore + s.SpeedScore + s.TimeScore))
	return s
}

// PerformanceBand returns the headline shown for a total score.
func PerformanceBand(score int) string {
	switch {
	case score >= 800:
		return "Exceptional!"
	case score >= 600:
		return "Great job!"
	case score >= 400:
		return "Good effort!"
	default:
		return "Keep practicing!"
	}
}

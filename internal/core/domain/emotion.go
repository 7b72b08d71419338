package domain

import (
	"math"
	"strconv"
	"time"
)

// Score is a mood score parsed from free text. NaN marks a Score line whose
// content was not numeric.
type Score float64

// NaNScore returns the not-a-number sentinel.
func NaNScore() Score { return Score(math.NaN()) }

func (s Score) IsNaN() bool { return math.IsNaN(float64(s)) }

// MarshalJSON renders NaN as null; encoding/json refuses NaN floats.
// Scores are written in plain decimal at any magnitude.
func (s Score) MarshalJSON() ([]byte, error) {
	f := float64(s)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'f', -1, 64), nil
}

// MoodReport holds the fields extracted from an emotion analysis. Nil
// pointers are fields whose line was absent from the response.
type MoodReport struct {
	Mood        *string
	Score       *Score
	Analysis    *string
	MoodChanger *string
}

// EmotionRecord is a persisted emotion analysis.
type EmotionRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user"`
	Mood       *string   `json:"mood,omitempty"`
	UserPrompt string    `json:"userprompt"`
	Score      Score     `json:"aiscore"`
	Analysis   *string   `json:"aianalysis,omitempty"`
	Date       time.Time `json:"date"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

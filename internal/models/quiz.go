package models

// Question types the presentation layer can render.
const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionTyping         = "typing"
	QuestionListening      = "listening"
	QuestionFlashCard      = "flash_card"
)

// Answer ratings. Passed through to the server-side scheduler untouched.
const (
	RatingEasy   = "E"
	RatingMedium = "M"
	RatingHard   = "H"
)

// Quiz is a single item in a fetched batch.
type Quiz struct {
	ID       int64    `json:"id"`
	Word     string   `json:"word"`
	Meaning  string   `json:"meaning"`
	Example  string   `json:"example"`
	AudioURL string   `json:"audio_url"`
	Options  []string `json:"options"`
	Type     string   `json:"type"`
	IsNew    bool     `json:"is_new"`
}

// ValidQuestionType reports whether t is one of the fixed quiz interaction types.
func ValidQuestionType(t string) bool {
	switch t {
	case QuestionMultipleChoice, QuestionTyping, QuestionListening, QuestionFlashCard:
		return true
	}
	return false
}

// ValidRating reports whether r is an accepted rating. Empty is allowed since
// not every question type collects one.
func ValidRating(r string) bool {
	switch r {
	case "", RatingEasy, RatingMedium, RatingHard:
		return true
	}
	return false
}

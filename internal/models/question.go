package models

import (
	"time"
)

// Genre is a topic bucket questions are filed under.
type Genre struct {
	ID        string    `json:"genre_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuestionType categorizes the answer format of a question (e.g. "this-or-that").
type QuestionType struct {
	ID        string    `json:"question_type_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Question is a prompt shown to players, linked to genres and question types.
type Question struct {
	ID              string    `json:"question_id"`
	Title           string    `json:"title"`
	GenreIDs        []string  `json:"genre_ids"`
	QuestionTypeIDs []string  `json:"question_type_ids"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

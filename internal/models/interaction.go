package models

import (
	"time"
)

// Reaction types a user can place on a question. A user holds at most one
// reaction per question; re-reacting replaces the previous one.
const (
	ReactionLike      = "like"
	ReactionSuperLike = "super_like"
	ReactionDislike   = "dislike"
)

// ValidReaction reports whether s names a known reaction type.
func ValidReaction(s string) bool {
	switch s {
	case ReactionLike, ReactionSuperLike, ReactionDislike:
		return true
	}
	return false
}

// Interaction records one user's current reaction to one question.
type Interaction struct {
	ID         string    `json:"interaction_id"`
	QuestionID string    `json:"question_id"`
	UserID     string    `json:"user_id"`
	Type       string    `json:"type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ReactionCounts aggregates reactions for a single question.
type ReactionCounts struct {
	QuestionID string `json:"question_id"`
	Likes      int64  `json:"likes"`
	SuperLikes int64  `json:"super_likes"`
	Dislikes   int64  `json:"dislikes"`
}

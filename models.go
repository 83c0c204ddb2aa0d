package main

import (
	"time"
)

// --- User ---

type User struct {
	ID          uint   `gorm:"primaryKey"`
	PublicID    string `gorm:"uniqueIndex;size:36;not null"` // UUID stored in the cookie
	DisplayName *string
	Email       *string `gorm:"uniqueIndex"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	LastSeenAt  time.Time
}

// --- Reference data ---

type Category struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	DisplayOrder int       `gorm:"not null" json:"displayOrder"`
	CreatedAt    time.Time `json:"-"`
}

// Difficulty values for Question.Difficulty and GameSession.CurrentDifficulty.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Question holds the four options inline plus the correct letter.
// CorrectAnswer is json:"-" so it can never leak through a serialized question;
// handlers that need to reveal it return it as a separate field.
type Question struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CategoryID    uint      `gorm:"not null;index:idx_questions_cat_diff" json:"categoryId"`
	Difficulty    string    `gorm:"size:8;not null;index:idx_questions_cat_diff" json:"difficulty"`
	QuestionText  string    `gorm:"not null" json:"questionText"`
	OptionA       string    `gorm:"not null" json:"optionA"`
	OptionB       string    `gorm:"not null" json:"optionB"`
	OptionC       string    `gorm:"not null" json:"optionC"`
	OptionD       string    `gorm:"not null" json:"optionD"`
	CorrectAnswer string    `gorm:"size:1;not null" json:"-"`
	CreatedAt     time.Time `json:"-"`
}

// --- Game session ---

// GameSession tracks one run through the category/difficulty ladder.
// CompletedRaw is the JSON-encoded ordered list of finished category ids;
// use CompletedCategories/SetCompletedCategories instead of touching it.
type GameSession struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	UserID            *uint      `gorm:"index" json:"userId,omitempty"`
	CurrentCategoryID uint       `gorm:"not null" json:"currentCategoryId"`
	CurrentDifficulty string     `gorm:"size:8;not null" json:"currentDifficulty"`
	Score             int        `gorm:"not null;default:0" json:"score"`
	QuestionsAnswered int        `gorm:"not null;default:0" json:"questionsAnswered"`
	IsCompleted       bool       `gorm:"not null;default:false" json:"isCompleted"`
	CompletedRaw      string     `gorm:"column:completed_categories;not null;default:'[]'" json:"-"`
	StartedAt         time.Time  `gorm:"not null" json:"startedAt"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
	DurationSeconds   *int       `json:"durationSeconds,omitempty"`
}

func (s *GameSession) CompletedCategories() []uint {
	return decodeCategoryIDs(s.CompletedRaw)
}

func (s *GameSession) SetCompletedCategories(ids []uint) {
	s.CompletedRaw = encodeCategoryIDs(ids)
}

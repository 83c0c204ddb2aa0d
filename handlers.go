package main

import (
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

/*** DTOs shared across handlers ***/

// QuestionDTO is what the client sees while playing: everything except the
// correct letter.
type QuestionDTO struct {
	ID           uint   `json:"id"`
	CategoryID   uint   `json:"categoryId"`
	Difficulty   string `json:"difficulty"`
	QuestionText string `json:"questionText"`
	OptionA      string `json:"optionA"`
	OptionB      string `json:"optionB"`
	OptionC      string `json:"optionC"`
	OptionD      string `json:"optionD"`
}

func toQuestionDTO(q Question) QuestionDTO {
	return QuestionDTO{
		ID:           q.ID,
		CategoryID:   q.CategoryID,
		Difficulty:   q.Difficulty,
		QuestionText: q.QuestionText,
		OptionA:      q.OptionA,
		OptionB:      q.OptionB,
		OptionC:      q.OptionC,
		OptionD:      q.OptionD,
	}
}

const hintPenalty = 1 // points deducted per hint request

func loadSession(db *gorm.DB, c *gin.Context) (*GameSession, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	var s GameSession
	if err := db.First(&s, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return &s, true
}

func orderedCategories(db *gorm.DB) ([]Category, error) {
	var cats []Category
	if err := db.Order("display_order").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

/*** Categories ***/

func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, []Category{})
			return
		}
		cats, err := orderedCategories(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		c.JSON(http.StatusOK, cats)
	}
}

/*** Game progression ***/

type StartGameReq struct {
	CategoryID *uint `json:"categoryId"` // optional; defaults to first category
}

func StartGame(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
			return
		}
		var req StartGameReq
		_ = c.ShouldBindJSON(&req) // empty body is fine

		cats, err := orderedCategories(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		if len(cats) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no categories available"})
			return
		}

		start := cats[0]
		if req.CategoryID != nil {
			found := false
			for _, cat := range cats {
				if cat.ID == *req.CategoryID {
					start = cat
					found = true
					break
				}
			}
			if !found {
				c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
				return
			}
		}

		// bind current user (if any)
		var userID *uint
		if v, ok := c.Get("userDBID"); ok {
			if id, ok2 := v.(uint); ok2 {
				userID = &id
			}
		}

		s := GameSession{
			UserID:            userID,
			CurrentCategoryID: start.ID,
			CurrentDifficulty: DifficultyEasy,
			Score:             0,
			QuestionsAnswered: 0,
			StartedAt:         time.Now(),
		}
		s.SetCompletedCategories(nil)
		if err := db.Create(&s).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"sessionId": s.ID})
	}
}

func GetGameState(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		s, ok := loadSession(db, c)
		if !ok {
			return
		}
		cats, err := orderedCategories(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		var current *Category
		for i := range cats {
			if cats[i].ID == s.CurrentCategoryID {
				current = &cats[i]
				break
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"session":             s,
			"completedCategories": s.CompletedCategories(),
			"currentCategory":     current,
			"allCategories":       cats,
		})
	}
}

func GetQuestion(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		s, ok := loadSession(db, c)
		if !ok {
			return
		}
		if s.IsCompleted {
			c.JSON(http.StatusOK, gin.H{"question": nil, "gameCompleted": true})
			return
		}

		var q Question
		err := db.Where("category_id = ? AND difficulty = ?", s.CurrentCategoryID, s.CurrentDifficulty).
			Order("RANDOM()").
			Take(&q).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"question":      nil,
				"gameCompleted": false,
				"error":         "no questions available",
			})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"question": toQuestionDTO(q), "gameCompleted": false})
	}
}

type HintReq struct {
	QuestionID uint `json:"questionId"`
}

// GetHint eliminates two incorrect options and charges hintPenalty, clamped
// at zero. Deliberately not idempotent: every call deducts again, the UI
// disables the button after first use.
func GetHint(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
			return
		}
		s, ok := loadSession(db, c)
		if !ok {
			return
		}
		if s.IsCompleted {
			c.JSON(http.StatusConflict, gin.H{"error": "game already completed"})
			return
		}
		var req HintReq
		if err := c.BindJSON(&req); err != nil || req.QuestionID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}
		var q Question
		if err := db.First(&q, "id = ?", req.QuestionID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
			return
		}

		r := rand.New(rand.NewSource(time.Now().UnixNano()))
		eliminated, remaining := pickHint(q.CorrectAnswer, r)
		newScore := clampScore(s.Score - hintPenalty)

		if err := db.Model(&GameSession{}).Where("id = ?", s.ID).
			Update("score", newScore).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"eliminatedOptions": eliminated,
			"remainingOptions":  remaining,
			"hintPenalty":       hintPenalty,
			"newScore":          newScore,
		})
	}
}

type SubmitAnswerReq struct {
	QuestionID uint   `json:"questionId"`
	Answer     string `json:"answer"`
}

func SubmitAnswer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
			return
		}
		var req SubmitAnswerReq
		if err := c.BindJSON(&req); err != nil || req.QuestionID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}
		answer := strings.ToUpper(strings.TrimSpace(req.Answer))
		if !isValidAnswer(answer) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "answer must be one of A, B, C, D"})
			return
		}

		s, ok := loadSession(db, c)
		if !ok {
			return
		}
		if s.IsCompleted {
			c.JSON(http.StatusConflict, gin.H{"error": "game already completed"})
			return
		}
		var q Question
		if err := db.First(&q, "id = ?", req.QuestionID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
			return
		}

		isCorrect := q.CorrectAnswer == answer
		newScore := s.Score
		if isCorrect {
			newScore++
		}

		cats, err := orderedCategories(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}
		next := advanceProgress(s.CurrentCategoryID, s.CurrentDifficulty, s.CompletedCategories(), cats)

		updates := map[string]interface{}{
			"score":                newScore,
			"questions_answered":   s.QuestionsAnswered + 1,
			"current_category_id":  next.CategoryID,
			"current_difficulty":   next.Difficulty,
			"is_completed":         next.GameCompleted,
			"completed_categories": encodeCategoryIDs(next.Completed),
		}
		if next.GameCompleted {
			now := time.Now()
			updates["completed_at"] = now
			updates["duration_seconds"] = int(now.Sub(s.StartedAt).Seconds())
		}
		if err := db.Model(&GameSession{}).Where("id = ?", s.ID).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"isCorrect":     isCorrect,
			"correctAnswer": q.CorrectAnswer,
			"newScore":      newScore,
			"gameCompleted": next.GameCompleted,
		})
	}
}

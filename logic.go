package main

import (
	"encoding/json"
	"math/rand"
)

var answerLetters = []string{"A", "B", "C", "D"}

func isValidAnswer(a string) bool {
	for _, l := range answerLetters {
		if a == l {
			return true
		}
	}
	return false
}

// nextProgress is the state a session moves to after answering a question.
type nextProgress struct {
	CategoryID    uint
	Difficulty    string
	Completed     []uint
	GameCompleted bool
}

// advanceProgress computes the ladder step for one submitted answer:
// Easy -> Medium -> Hard within a category; after Hard the category is marked
// completed and play moves to the first category (by the given order) not yet
// completed, or the game ends when none is left. cats must already be sorted
// by display order.
func advanceProgress(categoryID uint, difficulty string, completed []uint, cats []Category) nextProgress {
	next := nextProgress{
		CategoryID: categoryID,
		Difficulty: difficulty,
		Completed:  completed,
	}

	switch difficulty {
	case DifficultyEasy:
		next.Difficulty = DifficultyMedium
	case DifficultyMedium:
		next.Difficulty = DifficultyHard
	case DifficultyHard:
		next.Completed = append(append([]uint(nil), completed...), categoryID)
		done := make(map[uint]bool, len(next.Completed))
		for _, id := range next.Completed {
			done[id] = true
		}
		next.GameCompleted = true
		for _, c := range cats {
			if !done[c.ID] {
				next.CategoryID = c.ID
				next.Difficulty = DifficultyEasy
				next.GameCompleted = false
				break
			}
		}
	}
	return next
}

// pickHint keeps the correct option plus one incorrect option chosen at
// random and eliminates the other two.
func pickHint(correct string, r *rand.Rand) (eliminated, remaining []string) {
	incorrect := make([]string, 0, 3)
	for _, l := range answerLetters {
		if l != correct {
			incorrect = append(incorrect, l)
		}
	}
	kept := r.Intn(len(incorrect))
	for i, l := range incorrect {
		if i != kept {
			eliminated = append(eliminated, l)
		}
	}
	return eliminated, []string{correct, incorrect[kept]}
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Completed-categories column codec. The session row stores the ordered list
// as a JSON text column; everything above the storage boundary works with
// []uint.

func encodeCategoryIDs(ids []uint) string {
	if ids == nil {
		ids = []uint{}
	}
	b, _ := json.Marshal(ids)
	return string(b)
}

func decodeCategoryIDs(raw string) []uint {
	if raw == "" {
		return []uint{}
	}
	var ids []uint
	if err := json.Unmarshal([]byte(raw), &ids); err != nil || ids == nil {
		return []uint{}
	}
	return ids
}

package domain

import "encoding/json"

// ResultKey identifies a collected result. Two students typing the same name
// against the same quiz share a key.
type ResultKey struct {
	StudentName string
	QuizID      string
}

// CollectedResults keeps results in insertion order, de-duplicated by ResultKey.
type CollectedResults struct {
	items []QuizResult
	index map[ResultKey]int
}

func NewCollectedResults() *CollectedResults {
	return &CollectedResults{index: make(map[ResultKey]int)}
}

// Put stores r, overwriting any earlier result with the same key in place.
// It reports whether an existing entry was replaced.
func (c *CollectedResults) Put(r QuizResult) bool {
	key := ResultKey{StudentName: r.StudentName, QuizID: r.QuizID}
	if i, ok := c.index[key]; ok {
		c.items[i] = r
		return true
	}
	c.index[key] = len(c.items)
	c.items = append(c.items, r)
	return false
}

// All returns a copy of the stored results in insertion order.
func (c *CollectedResults) All() []QuizResult {
	out := make([]QuizResult, len(c.items))
	copy(out, c.items)
	return out
}

func (c *CollectedResults) Len() int {
	return len(c.items)
}

func (c *CollectedResults) Clear() {
	c.items = nil
	c.index = make(map[ResultKey]int)
}

// MarshalJSON encodes the set as a plain array.
func (c *CollectedResults) MarshalJSON() ([]byte, error) {
	if c.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.items)
}

// UnmarshalJSON rebuilds the set from an array, applying overwrite-by-key.
func (c *CollectedResults) UnmarshalJSON(data []byte) error {
	var items []QuizResult
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	c.Clear()
	for _, r := range items {
		c.Put(r)
	}
	return nil
}

// QuestionStat summarises how a question was answered across results.
type QuestionStat struct {
	Index    int
	Prompt   string
	Correct  int
	Answered int
	Total    int
}

// CorrectRate is the share of all results that answered the question correctly.
func (s QuestionStat) CorrectRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}

// ComputeQuestionStats recomputes per-question correctness from stored answers.
// Results for other quizzes are ignored; the results' own score fields are not used.
func ComputeQuestionStats(def QuizDefinition, results []QuizResult) []QuestionStat {
	stats := make([]QuestionStat, len(def.Questions))
	for i, q := range def.Questions {
		stats[i] = QuestionStat{Index: i, Prompt: q.Prompt}
	}
	for _, r := range results {
		if r.QuizID != def.ID {
			continue
		}
		for i, q := range def.Questions {
			stats[i].Total++
			chosen, ok := r.Answers[i]
			if !ok {
				continue
			}
			stats[i].Answered++
			if chosen == q.CorrectAnswer {
				stats[i].Correct++
			}
		}
	}
	return stats
}

package question

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/palemoky/decawise/internal/apperrors"
	"github.com/palemoky/decawise/internal/logger"
)

// Catalog is the read-only set of questions a game draws from.
type Catalog struct {
	questions []Question
}

// NewCatalog creates a catalog over qs. The slice is not copied.
func NewCatalog(qs []Question) *Catalog {
	return &Catalog{questions: qs}
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.questions)
}

// Questions returns the catalog's questions.
func (c *Catalog) Questions() []Question {
	if c == nil {
		return nil
	}
	return c.questions
}

// Draw picks a question uniformly at random. The returned pointer refers to
// the catalog's own record. ok is false when the catalog is empty.
func (c *Catalog) Draw(r *rand.Rand) (q *Question, ok bool) {
	if c.Len() == 0 {
		return nil, false
	}
	return &c.questions[r.IntN(len(c.questions))], true
}

// Decode parses a JSON array of question records without validating them.
func Decode(data []byte) ([]Question, error) {
	var qs []Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return qs, nil
}

// Check validates every record and returns one error per invalid record.
func Check(qs []Question) []error {
	var errs []error
	for i := range qs {
		if err := qs[i].Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// LoadFile reads the catalog at path, skipping (and logging) invalid records.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questions %s: %w", path, err)
	}

	qs, err := Decode(data)
	if err != nil {
		return nil, err
	}

	valid := make([]Question, 0, len(qs))
	for _, q := range qs {
		if err := q.Validate(); err != nil {
			logger.LogError("skipping question: %v", err)
			continue
		}
		valid = append(valid, q)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("%s: %w", path, apperrors.ErrEmptyCatalog)
	}
	return NewCatalog(valid), nil
}

// LoadOrEmpty is LoadFile that degrades to an empty catalog on failure.
func LoadOrEmpty(path string) *Catalog {
	c, err := LoadFile(path)
	if err != nil {
		logger.LogError("Error loading questions: %v", err)
		return NewCatalog(nil)
	}
	logger.LogInfo("Loaded %d questions from %s", c.Len(), path)
	return c
}

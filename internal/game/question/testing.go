//go:build !production

package question

import "fmt"

// NewTestQuestion returns a valid TEXT question with labelled options.
func NewTestQuestion(id int) Question {
	opts := make([]Option, OptionCount)
	for i := range opts {
		opts[i] = Option{
			Label: fmt.Sprintf("Q%d option %d", id, i+1),
			Value: StringValue(fmt.Sprintf("answer %d", i+1)),
		}
	}
	return Question{
		ID:      id,
		Topic:   "Test",
		Prompt:  fmt.Sprintf("Test question %d", id),
		Kind:    KindText,
		Options: opts,
	}
}

// NewTestCatalog returns a catalog of n test questions with ids 1..n.
func NewTestCatalog(n int) *Catalog {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = NewTestQuestion(i + 1)
	}
	return NewCatalog(qs)
}

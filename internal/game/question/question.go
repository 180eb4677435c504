// Package question holds the question catalog and the random draw.
package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/palemoky/decawise/internal/apperrors"
)

// OptionCount is the number of options every question carries.
const OptionCount = 10

// Kind 题目类型
type Kind string

const (
	KindBoolean Kind = "BOOLEAN"
	KindOrder   Kind = "ORDER"
	KindNumber  Kind = "NUMBER"
	KindText    Kind = "TEXT"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindBoolean, KindOrder, KindNumber, KindText:
		return true
	}
	return false
}

// Label is the human readable name shown on the board.
func (k Kind) Label() string {
	switch k {
	case KindBoolean:
		return "TRUE / FALSE"
	case KindOrder:
		return "ORDER 1-10"
	case KindNumber:
		return "NUMBER"
	case KindText:
		return "MATCH"
	}
	return string(k)
}

// ValueType tells which field of a Value is set.
type ValueType int

const (
	ValueString ValueType = iota
	ValueNumber
	ValueBool
)

// Value is an option's answer: a string, a number or a bool.
type Value struct {
	Type ValueType
	Str  string
	Num  float64
	Bool bool
}

// StringValue, NumberValue and BoolValue build a Value of each type.
func StringValue(s string) Value  { return Value{Type: ValueString, Str: s} }
func NumberValue(n float64) Value { return Value{Type: ValueNumber, Num: n} }
func BoolValue(b bool) Value      { return Value{Type: ValueBool, Bool: b} }

// String renders the value the way the board shows it.
func (v Value) String() string {
	switch v.Type {
	case ValueNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	}
	return v.Str
}

// Any returns the value as a plain Go value.
func (v Value) Any() any {
	switch v.Type {
	case ValueNumber:
		return v.Num
	case ValueBool:
		return v.Bool
	}
	return v.Str
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*v = BoolValue(data[0] == 't')
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("option value must be string, number or bool: %s", data)
	}
	*v = NumberValue(n)
	return nil
}

// Option 选项
type Option struct {
	Label string `json:"texto"`
	Value Value  `json:"valor"`
}

// Question 题目
type Question struct {
	ID      int      `json:"id"`
	Topic   string   `json:"tema"`
	Prompt  string   `json:"pregunta"`
	Kind    Kind     `json:"tipo"`
	Options []Option `json:"opciones"`
}

// Validate checks the shape every drawable question must have.
func (q *Question) Validate() error {
	if !q.Kind.Valid() {
		return fmt.Errorf("%w: question %d has unknown kind %q", apperrors.ErrInvalidQuestion, q.ID, q.Kind)
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("%w: question %d has %d options, want %d", apperrors.ErrInvalidQuestion, q.ID, len(q.Options), OptionCount)
	}
	return nil
}

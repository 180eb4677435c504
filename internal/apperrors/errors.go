// Package apperrors holds the coded errors shared by the game, storage and UI layers.
package apperrors

import "errors"

// Error codes
const (
	CodeUnknown         = 1000
	CodeEmptyCatalog    = 1001
	CodeInvalidQuestion = 1002
	CodeNoSavedGame     = 1003
	CodeUnknownBackend  = 1101
	CodeUnknownCodec    = 1102
	CodeInvalidConfig   = 1103
)

// GameError 带错误码的错误
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// Is matches on the error code so wrapped copies compare equal.
func (e *GameError) Is(target error) bool {
	var t *GameError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// 预定义错误
var (
	ErrEmptyCatalog    = &GameError{Code: CodeEmptyCatalog, Message: "no questions loaded"}
	ErrInvalidQuestion = &GameError{Code: CodeInvalidQuestion, Message: "invalid question"}
	ErrNoSavedGame     = &GameError{Code: CodeNoSavedGame, Message: "no saved game"}
	ErrUnknownBackend  = &GameError{Code: CodeUnknownBackend, Message: "unknown storage backend"}
	ErrUnknownCodec    = &GameError{Code: CodeUnknownCodec, Message: "unknown snapshot codec"}
	ErrInvalidConfig   = &GameError{Code: CodeInvalidConfig, Message: "invalid config"}
)

// CodeOf returns the code of the first GameError in err's chain, or CodeUnknown.
func CodeOf(err error) int {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return CodeUnknown
}

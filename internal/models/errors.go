package models

import (
	"errors"
	"fmt"
)

// ErrorKind классифицирует ошибки, которые видит пользователь
type ErrorKind string

const (
	KindNetwork     ErrorKind = "NetworkError"
	KindDecode      ErrorKind = "DecodeError"
	KindValidation  ErrorKind = "ValidationError"
	KindServer      ErrorKind = "ServerError"
	KindGeolocation ErrorKind = "GeolocationError"
)

var (
	ErrViewNotFound     = errors.New("view not found")
	ErrIncidentNotFound = errors.New("incident not found in current view")
)

// Error - типизированная ошибка работы с API инцидентов
type Error struct {
	Kind       ErrorKind
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %s", e.Op, e.Kind, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind проверяет, содержит ли цепочка ошибку указанного вида
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// UserMessage возвращает текст для показа пользователю
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}

func NewValidationError(op, msg string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: msg}
}

func NewGeolocationError(op, msg string) *Error {
	return &Error{Kind: KindGeolocation, Op: op, Message: msg}
}

// Package errs 边界层使用的结构化错误.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType int

const (
	TypeValidation ErrorType = iota
	TypeNotFound
	TypeDuplicate
	TypeUnauthenticated
	TypeInternal
)

// AppError 带类型与用户提示的错误
type AppError struct {
	Type     ErrorType
	Code     string
	Message  string
	UserMsg  string
	Internal error
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Internal
}

// GetUserMessage 返回给调用方展示的信息
func (e *AppError) GetUserMessage() string {
	if e.UserMsg != "" {
		return e.UserMsg
	}
	return e.Message
}

// HTTPStatus 对应的 HTTP 状态码
func (e *AppError) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeDuplicate:
		return http.StatusConflict
	case TypeUnauthenticated:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

func NewValidationError(code, message string) *AppError {
	return &AppError{Type: TypeValidation, Code: code, Message: message}
}

func NewNotFoundError(code, message string, err error) *AppError {
	return &AppError{Type: TypeNotFound, Code: code, Message: message, Internal: err}
}

// NewDuplicateError 唯一字段冲突, message 原样返回给用户
func NewDuplicateError(code, message string) *AppError {
	return &AppError{Type: TypeDuplicate, Code: code, Message: message}
}

func NewUnauthenticatedError(code, message string) *AppError {
	return &AppError{Type: TypeUnauthenticated, Code: code, Message: message}
}

func NewInternalError(code, message string, err error) *AppError {
	return &AppError{
		Type:     TypeInternal,
		Code:     code,
		Message:  message,
		UserMsg:  "internal error",
		Internal: err,
	}
}

// IsType 错误链中是否存在指定类型的 AppError
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}

const (
	CodeEmailRegistered         = "EMAIL_REGISTERED"
	CodeStudentNumberRegistered = "STUDENT_NUMBER_REGISTERED"
	CodeInvalidParam            = "INVALID_PARAM"
	CodeInvalidCredentials      = "INVALID_CREDENTIALS"
	CodeUnauthenticated         = "UNAUTHENTICATED"
	CodeParticipantNotFound     = "PARTICIPANT_NOT_FOUND"
	CodeProblemNotFound         = "PROBLEM_NOT_FOUND"
	CodeSubmissionNotFound      = "SUBMISSION_NOT_FOUND"
	CodeInternal                = "INTERNAL"
)

var (
	ErrEmailRegistered         = NewDuplicateError(CodeEmailRegistered, "Email already registered")
	ErrStudentNumberRegistered = NewDuplicateError(CodeStudentNumberRegistered, "Student number already registered")
	ErrInvalidCredentials      = NewUnauthenticatedError(CodeInvalidCredentials, "invalid email or password")
)

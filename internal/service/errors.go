package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound                  = errors.New("resource not found")
	ErrAuthRequired              = errors.New("authentication required")
	ErrSlugExists                = errors.New("slug already exists")
	ErrInvalidPostStatus         = errors.New("invalid post status")
	ErrInvalidCredentials        = errors.New("invalid email or password")
	ErrInvalidPassword           = errors.New("current password is incorrect")
	ErrWeakPassword              = errors.New("password does not meet policy")
	ErrEditorExists              = errors.New("editor email already registered")
	ErrInvalidRole               = errors.New("invalid role")
	ErrCannotDeleteSelf          = errors.New("cannot delete the signed-in editor")
	ErrWaitlistDuplicate         = errors.New("email already on the waitlist")
	ErrInvalidEmail              = errors.New("invalid email address")
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
	ErrCaptchaRequired           = errors.New("captcha required")
	ErrCaptchaInvalid            = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid      = errors.New("captcha config invalid")
)

// Violation 单条字段校验失败
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 本地校验失败，在任何 I/O 之前返回，不可重试
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasField 是否包含指定字段的违规
func (e *ValidationError) HasField(field string) bool {
	if e == nil {
		return false
	}
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

func newValidationError(violations []Violation) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

// RepositoryError 存储层失败，原样向上传递，不做重试
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s failed", e.Op)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

func repositoryError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RepositoryError{Op: op, Err: err}
}

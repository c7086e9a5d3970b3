package services

import (
	"errors"
	"fmt"
)

// ErrEmptyMessage rejects a submission with no text and no attachments.
var ErrEmptyMessage = errors.New("empty message was not allowed")

// ConfigurationError means the operation was attempted without a workspace,
// channel or user binding. It is fatal to the call and never retried.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("channel view has no %s bound", e.Field)
}

// NetworkError wraps a rejected or timed out backend call. Mutations roll
// back before it surfaces; it is never retried automatically.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// SendFailedError reports a rolled-back optimistic send with its cause.
type SendFailedError struct {
	TempID string
	Err    error
}

func (e *SendFailedError) Error() string {
	return fmt.Sprintf("message send failed: %v", e.Err)
}

func (e *SendFailedError) Unwrap() error {
	return e.Err
}

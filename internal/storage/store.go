package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrStoppedRecord is returned when asked to save a stopped timer; use Clear instead.
	ErrStoppedRecord = errors.New("cannot save a stopped timer record")
	// ErrCorruptRecord indicates a stored timer value could not be decoded.
	ErrCorruptRecord = errors.New("corrupt timer record")
	// ErrUnknownBackend indicates an unsupported store backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Store is a durable string key-value store.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// OpError records a failed store operation.
type OpError struct {
	Op  string
	Key string
	Err error
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	if e.Key != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func wrapOpErr(op, key string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Key: key, Err: err}
}

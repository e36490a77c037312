package repository

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

func (e *criticalError) Unwrap() error {
	return e.err
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

// isUniqueError checks if an error is a unique constraint violation
func isUniqueError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// withRetry runs fn with backoff while it fails on SQLite lock errors.
// Any other error is wrapped as critical and returned unwrapped to the caller.
func withRetry(ctx context.Context, fn func() error) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	var critical *criticalError
	err := retrier.Do(ctx, func() error {
		err := fn()
		if err == nil || isLockError(err) {
			return err // nil or retry
		}
		critical = &criticalError{err: err}
		return nil
	})
	if critical != nil {
		return critical.err
	}
	return err
}

// scoresSQL is a JSON object of name->score for SQL operations
type scoresSQL map[string]float64

// Value implements driver.Valuer for database storage
func (s scoresSQL) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]float64(s))
	if err != nil {
		return nil, fmt.Errorf("marshal scores: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner for database retrieval
func (s *scoresSQL) Scan(value interface{}) error {
	*s = scoresSQL{}
	data, ok := scanBytes(value)
	if !ok || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, (*map[string]float64)(s))
}

// stringsSQL is a JSON array of strings for SQL operations
type stringsSQL []string

// Value implements driver.Valuer for database storage
func (s stringsSQL) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, fmt.Errorf("marshal strings: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner for database retrieval
func (s *stringsSQL) Scan(value interface{}) error {
	*s = stringsSQL{}
	data, ok := scanBytes(value)
	if !ok || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, (*[]string)(s))
}

// refsSQL is a JSON object of channel->message reference for SQL operations
type refsSQL map[string]string

// Value implements driver.Valuer for database storage
func (r refsSQL) Value() (driver.Value, error) {
	if r == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]string(r))
	if err != nil {
		return nil, fmt.Errorf("marshal refs: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner for database retrieval
func (r *refsSQL) Scan(value interface{}) error {
	*r = refsSQL{}
	data, ok := scanBytes(value)
	if !ok || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, (*map[string]string)(r))
}

func scanBytes(value interface{}) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	default:
		return nil, false
	}
}

package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current state")

// ErrUnbalanced indicates a line set whose debits and credits differ.
var ErrUnbalanced = errors.New("journal entry is not balanced")

// ErrMapping indicates a posting rule could not resolve a required account.
var ErrMapping = errors.New("account mapping failed")

// ErrImmutable indicates an attempt to remove or edit a posted non-manual entry.
var ErrImmutable = errors.New("journal entry is immutable")

// ErrNotPostable indicates a business event that by its nature produces no journal entry.
var ErrNotPostable = errors.New("event does not produce a journal entry")

// ErrLocked indicates an exclusive lock is already held by someone else.
var ErrLocked = errors.New("resource is locked")

// AppError carries an internal status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// DuplicateCodeError is returned when registering an account code that already exists.
type DuplicateCodeError struct {
	Code string
}

func (e *DuplicateCodeError) Error() string {
	return fmt.Sprintf("account code %q already exists", e.Code)
}

func (e *DuplicateCodeError) Is(target error) bool { return target == ErrDuplicate }

// NotFoundError is returned when a lookup by key finds nothing.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// UnbalancedEntryError reports a rejected line set. It is a logic error and must not be retried as-is.
type UnbalancedEntryError struct {
	Reason      string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	if e.Reason != "" {
		return "unbalanced journal entry: " + e.Reason
	}
	return fmt.Sprintf("unbalanced journal entry: debits %s, credits %s",
		e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2))
}

func (e *UnbalancedEntryError) Is(target error) bool { return target == ErrUnbalanced }

// MappingError reports that an event could not be posted because an account is missing from the chart.
type MappingError struct {
	Event       string
	SourceID    int64
	AccountCode string
	Role        string
}

func (e *MappingError) Error() string {
	if e.AccountCode != "" {
		return fmt.Sprintf("cannot post %s %d: %s account %s is missing or inactive", e.Event, e.SourceID, e.Role, e.AccountCode)
	}
	return fmt.Sprintf("cannot post %s %d: no %s account configured", e.Event, e.SourceID, e.Role)
}

func (e *MappingError) Is(target error) bool { return target == ErrMapping }

// ImmutableEntryError is returned when deleting an entry that is not a manual entry.
type ImmutableEntryError struct {
	EntryID   int64
	EntryType string
}

func (e *ImmutableEntryError) Error() string {
	return fmt.Sprintf("journal entry %d of type %s cannot be deleted; post an adjusting entry instead", e.EntryID, e.EntryType)
}

func (e *ImmutableEntryError) Is(target error) bool { return target == ErrImmutable }

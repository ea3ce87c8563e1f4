package repository

import (
	"errors"
	"fmt"
	"strings"

	"furniture-catalog/dtos"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind classifies a repository failure. Every kind except KindStorage is a
// caller-correctable outcome.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindDuplicateSlug    Kind = "duplicate_slug"
	KindInvalidReference Kind = "invalid_reference"
	KindValidation       Kind = "validation"
	KindStorage          Kind = "storage"
)

// Error is returned by every CatalogRepository method. Message is safe to
// show to clients; Err carries the underlying cause for logging.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	if e.Message != "" {
		b.WriteString(e.Message)
	} else {
		b.WriteString(string(e.Kind))
	}
	if e.Err != nil && e.Kind == KindStorage {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinels below by Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Op != "" {
		return false
	}
	return e.Kind == t.Kind
}

var (
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrDuplicateSlug    = &Error{Kind: KindDuplicateSlug}
	ErrInvalidReference = &Error{Kind: KindInvalidReference}
	ErrValidation       = &Error{Kind: KindValidation}
	ErrStorage          = &Error{Kind: KindStorage}
)

// KindOf returns the Kind carried by err, or KindStorage for anything that
// did not come from this package.
func KindOf(err error) Kind {
	var repoErr *Error
	if errors.As(err, &repoErr) {
		return repoErr.Kind
	}
	return KindStorage
}

func newError(kind Kind, op, message string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: cause}
}

func notFound(op, message string) error {
	return newError(KindNotFound, op, message, nil)
}

func invalidReference(op, message string) error {
	return newError(KindInvalidReference, op, message, nil)
}

func duplicateSlug(op, message string) error {
	return newError(KindDuplicateSlug, op, message, nil)
}

func validationFailure(op string, err error) error {
	var ve *dtos.ValidationError
	if errors.As(err, &ve) {
		return newError(KindValidation, op, ve.Message, err)
	}
	return newError(KindValidation, op, err.Error(), err)
}

// storeErrorMessages supplies the client messages for constraint violations
// reported by the store itself rather than caught by a pre-check.
type storeErrorMessages struct {
	duplicate string
	reference string
}

// mapStoreError converts a persistence error into a typed Error. Errors that
// are already typed pass through unchanged.
func mapStoreError(op string, err error, msgs storeErrorMessages) error {
	if err == nil {
		return nil
	}
	var repoErr *Error
	if errors.As(err, &repoErr) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return newError(KindNotFound, op, "", err)
	case errors.Is(err, gorm.ErrDuplicatedKey) && msgs.duplicate != "":
		return newError(KindDuplicateSlug, op, msgs.duplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated) && msgs.reference != "":
		return newError(KindInvalidReference, op, msgs.reference, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505": // unique_violation
			if msgs.duplicate != "" {
				return newError(KindDuplicateSlug, op, msgs.duplicate, err)
			}
		case "23503": // foreign_key_violation
			if msgs.reference != "" {
				return newError(KindInvalidReference, op, msgs.reference, err)
			}
		}
	}

	return newError(KindStorage, op, "", err)
}

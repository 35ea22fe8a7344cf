package roots3

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// Kind partitions every failure a Client can return. Callers branch on the
// kind rather than on backend-specific error codes.
type Kind int

const (
	// KindConfig means the client could not be constructed (bad endpoint
	// URL, empty API key, non-positive project id). No network call was
	// attempted.
	KindConfig Kind = iota

	// KindNotFound means the target bucket or object does not exist.
	KindNotFound

	// KindConflict means the operation violates backend state, such as
	// creating a bucket that already exists or deleting a non-empty one.
	KindConflict

	// KindTransport covers network failures, timeouts and any backend
	// response the other kinds don't claim.
	KindTransport

	// KindLocalIO means the local byte source or sink failed (file not
	// found, permission denied, disk full). The backend was not at fault.
	KindLocalIO
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindTransport:
		return "transport"
	case KindLocalIO:
		return "local io"
	default:
		return "unknown"
	}
}

// Error is the classified failure type returned by every Client operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("roots3: %s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a classified not-found error.
func IsNotFound(err error) bool { return hasKind(err, KindNotFound) }

// IsConflict reports whether err is a classified conflict error.
func IsConflict(err error) bool { return hasKind(err, KindConflict) }

// IsLocalIO reports whether err was caused by the local file source or sink
// rather than by the backend.
func IsLocalIO(err error) bool { return hasKind(err, KindLocalIO) }

// IsConfig reports whether err is a client construction error.
func IsConfig(err error) bool { return hasKind(err, KindConfig) }

func hasKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// classify maps an SDK error onto the taxonomy. The backend speaks standard
// S3 error codes, so classification keys off smithy.APIError.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket", "NoSuchKey", "NotFound":
			return &Error{Kind: KindNotFound, Op: op, Err: err}
		case "BucketAlreadyExists", "BucketAlreadyOwnedByYou", "BucketNotEmpty":
			return &Error{Kind: KindConflict, Op: op, Err: err}
		}
	}
	return &Error{Kind: KindTransport, Op: op, Err: err}
}

func configErr(op string, err error) error {
	return &Error{Kind: KindConfig, Op: op, Err: err}
}

func localErr(op string, err error) error {
	return &Error{Kind: KindLocalIO, Op: op, Err: err}
}

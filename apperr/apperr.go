package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a terminal pipeline failure
type Kind int

const (
	Unknown Kind = iota
	ConfigNotFound
	ConfigPermissionDenied
	ConfigIOError
	ConfigUnknownKey
	SpecFetchFailed
	SpecInvalid
	ArchiveRequestFailed
	ArchiveReceiveFailed
	OutputPathIsFile
	OutputRemoveFailed
	OutputCreateFailed
	ArchiveReadFailed
	ArchiveExtractFailed
)

var kindNames = map[Kind]string{
	Unknown:                "unknown",
	ConfigNotFound:         "config_not_found",
	ConfigPermissionDenied: "config_permission_denied",
	ConfigIOError:          "config_io_error",
	ConfigUnknownKey:       "config_unknown_key",
	SpecFetchFailed:        "spec_fetch_failed",
	SpecInvalid:            "spec_invalid",
	ArchiveRequestFailed:   "archive_request_failed",
	ArchiveReceiveFailed:   "archive_receive_failed",
	OutputPathIsFile:       "output_path_is_file",
	OutputRemoveFailed:     "output_remove_failed",
	OutputCreateFailed:     "output_create_failed",
	ArchiveReadFailed:      "archive_read_failed",
	ArchiveExtractFailed:   "archive_extract_failed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a user-facing failure with an optional underlying cause
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// New creates an error of the given kind using its default message
func New(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Message: defaultMessage(kind), Cause: cause}
}

// Newf creates an error of the given kind with a custom message
func Newf(kind Kind, cause error, format string, a ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...), Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	switch e.Kind {
	case ConfigNotFound, ConfigPermissionDenied, ConfigUnknownKey, OutputPathIsFile, OutputCreateFailed:
		// cause is kept for Unwrap only
		return e.Message
	case ConfigIOError, ArchiveExtractFailed, SpecInvalid, SpecFetchFailed:
		return fmt.Sprintf("%s (%v)", e.Message, e.Cause)
	default:
		return fmt.Sprintf("%s. (%v)", e.Message, e.Cause)
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so New(kind, nil) works as a sentinel
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind
}

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func defaultMessage(kind Kind) string {
	switch kind {
	case ConfigNotFound:
		return `Can't find "codegen.config" file`
	case ConfigPermissionDenied:
		return "Can't read config file"
	case ConfigIOError:
		return "Unknown error"
	case ConfigUnknownKey:
		return "Found unknown value in config file"
	case SpecFetchFailed:
		return "Can't get api info"
	case SpecInvalid:
		return "Api info is not valid JSON"
	case ArchiveRequestFailed:
		return "Can't download archive"
	case ArchiveReceiveFailed:
		return "Can't receive archive"
	case OutputPathIsFile:
		return "Output is not a folder"
	case OutputRemoveFailed:
		return "Can't remove folder"
	case OutputCreateFailed:
		return "Can't create folder"
	case ArchiveReadFailed:
		return "Can't read downloaded file"
	case ArchiveExtractFailed:
		return "Can't extract downloaded file"
	default:
		return "Unknown error"
	}
}

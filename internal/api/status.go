package api

import (
	"fmt"

	"github.com/pixelmill/pixelmill/internal/imagetype"
)

// Code classifies the outcome of a processing request.
type Code int

const (
	CodeOK Code = iota
	CodeParameterError
	CodeDecodeError
	CodeProcessingError
	CodeEncodeError
	CodeInternalError
)

func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeParameterError:
		return "parameter_error"
	case CodeDecodeError:
		return "decode_error"
	case CodeProcessingError:
		return "processing_error"
	case CodeEncodeError:
		return "encode_error"
	default:
		return "internal_error"
	}
}

// Status is the uniform result of one request: either OK with the
// output byte count, or an error code with a diagnostic. Exactly one
// Status is produced per request.
type Status struct {
	Code    Code
	Message string

	// Bytes is the encoded output size on success.
	Bytes int64

	// Format is the effective output format on success; auto for
	// metadata reports, which are not images.
	Format imagetype.Output
}

func (s Status) OK() bool { return s.Code == CodeOK }

func (s Status) Error() string {
	if s.OK() {
		return ""
	}
	return fmt.Sprintf("%s: %s", s.Code, s.Message)
}

func ok(bytes int64, format imagetype.Output) Status {
	return Status{Code: CodeOK, Bytes: bytes, Format: format}
}

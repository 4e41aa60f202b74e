package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedInput is returned when the token stream violates the wire contract:
	// a required property is missing, a value has the wrong token type, or the stream
	// ends before the enclosing object is complete.
	ErrMalformedInput = zerr.New("malformed descriptor input")

	// ErrUnexpectedToken is returned when a value token does not match the type the
	// schema expects for its property.
	ErrUnexpectedToken = zerr.New("unexpected token")

	// ErrStreamTruncated is returned when the underlying stream ends inside an object.
	ErrStreamTruncated = zerr.New("descriptor stream truncated")

	// ErrMissingRequiredProperty is returned when a required leading property is absent
	// or out of order.
	ErrMissingRequiredProperty = zerr.New("missing required property")

	// ErrUnsupportedVersion is returned when a descriptor set declares a format version
	// this reader does not understand.
	ErrUnsupportedVersion = zerr.New("unsupported descriptor set version")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the config file contains invalid values.
	ErrConfigInvalid = zerr.New("invalid config value")

	// ErrSetOpenFailed is returned when a descriptor set file cannot be opened.
	ErrSetOpenFailed = zerr.New("failed to open descriptor set")

	// ErrNoInputsSpecified is returned when a command is invoked without any
	// descriptor set files.
	ErrNoInputsSpecified = zerr.New("no descriptor set files specified")
)

package errcode

// Code is a stable, bus-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK             Code = "ok"
	InvalidParams  Code = "invalid_params"
	InvalidPayload Code = "invalid_payload"
	UnknownCommand Code = "unknown_command"
	Timeout        Code = "timeout"

	NoConfig    Code = "no_config"
	StorageFail Code = "storage_fail"

	RadioFault   Code = "radio_fault"
	NotConnected Code = "not_connected"
	Upstream     Code = "upstream" // remote API returned a failure

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}

package gateway

import "encoding/json"

// Result is the tagged outcome of one gateway request: Ok with the raw
// response body, or Err with a recorded message and a nil data sentinel.
// Failures never propagate past the gateway as panics or raw errors.
type Result struct {
	data       json.RawMessage
	errMessage string
	ok         bool
}

func okResult(data json.RawMessage) Result {
	return Result{data: data, ok: true}
}

func errResult(message string) Result {
	return Result{errMessage: message}
}

// Ok reports whether the request succeeded.
func (r Result) Ok() bool {
	return r.ok
}

// Data returns the raw response body, or nil on failure.
func (r Result) Data() json.RawMessage {
	return r.data
}

// ErrMessage returns the recorded failure message, or "" on success.
func (r Result) ErrMessage() string {
	return r.errMessage
}

// Decode unmarshals a successful body into v. Decoding a failed result
// returns false without touching v; a body that does not parse also reads as
// false so typed callers see one miss path.
func (r Result) Decode(v any) bool {
	if !r.ok || len(r.data) == 0 {
		return false
	}
	return json.Unmarshal(r.data, v) == nil
}

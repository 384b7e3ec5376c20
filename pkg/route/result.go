package route

import (
	"net/http"
)

// Kind tags the variant held by a Result.
type Kind uint8

const (
	// KindOutput is a final value for the response layer.
	KindOutput Kind = iota
	// KindRedispatch instructs the caller to execute another action.
	KindRedispatch
	// KindFailure carries an error signal.
	KindFailure
)

func (k Kind) String() string {
	switch k {
	case KindOutput:
		return "output"
	case KindRedispatch:
		return "redispatch"
	case KindFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Output is the rendered value handed to the response layer.
type Output struct {
	Status int
	Header http.Header
	Body   []byte
}

// HTML builds an Output with an HTML body.
func HTML(status int, body string) Output {
	h := make(http.Header)
	h.Set("Content-Type", "text/html; charset=utf-8")
	return Output{Status: status, Header: h, Body: []byte(body)}
}

// Result is returned by every controller method. Exactly one of the
// variants is set; use Kind to tell them apart.
type Result struct {
	kind   Kind
	output Output
	next   Action
	err    error
}

// Render returns a final output.
func Render(out Output) Result {
	return Result{kind: KindOutput, output: out}
}

// Continue returns an empty output. Pre-actions and event listeners that
// only cause side effects return it.
func Continue() Result {
	return Result{kind: KindOutput}
}

// Redispatch asks the dispatcher to execute next.
func Redispatch(next Action) Result {
	return Result{kind: KindRedispatch, next: next}
}

// Fail returns a failure signal.
func Fail(err error) Result {
	if err == nil {
		err = errNilFailure
	}
	return Result{kind: KindFailure, err: err}
}

func (r Result) Kind() Kind     { return r.kind }
func (r Result) Output() Output { return r.output }
func (r Result) Next() Action   { return r.next }
func (r Result) Err() error     { return r.err }

// Args is the in-flight state shared by the dispatcher, controller methods
// and event listeners. Listeners may rewrite any field in place.
type Args struct {
	Route  string
	Values []any
	Output *Output
}

// Value returns the positional argument at i.
func (a *Args) Value(i int) (any, bool) {
	if a == nil || i < 0 || i >= len(a.Values) {
		return nil, false
	}
	return a.Values[i], true
}

package tinyurl

import "context"

// Mapping is the only persisted entity: a tinyId and the URL it points to.
// Both fields are immutable once written.
type Mapping struct {
	ID  string `json:"id" dynamodbav:"id"`
	URL string `json:"url" dynamodbav:"url"`
}

// Outcome is the variant tag of a Result.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNotFound
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Failure is a backend-reported error captured by a MappingStore.
//
// Code is the backend's own status code (HTTP-like), Name the backend error name,
// e.g. ResourceNotFoundException.
type Failure struct {
	Store   string
	Code    int
	Name    string
	Message string
}

// Error renders "<store>: <name>: <message>", the text surfaced to clients.
func (f *Failure) Error() string {
	return f.Store + ": " + f.Name + ": " + f.Message
}

// Server reports whether the backend classified the failure as its own fault.
func (f *Failure) Server() bool {
	return f.Code >= 500
}

// Result is what every MappingStore call returns: Ok (URL set for Get),
// NotFound (Get only) or Failure.
type Result struct {
	Outcome Outcome
	URL     string
	Failure *Failure
}

func OK(url string) Result {
	return Result{Outcome: OutcomeOK, URL: url}
}

func NotFound() Result {
	return Result{Outcome: OutcomeNotFound}
}

func Failed(f *Failure) Result {
	return Result{Outcome: OutcomeFailure, Failure: f}
}

// MappingStore is the persistence capability used by the services.
//
// Put writes unconditionally; the store's key uniqueness is the only guard.
// Get distinguishes an absent key (NotFound) from a backend failure.
type MappingStore interface {
	Name() string
	Put(ctx context.Context, m Mapping) Result
	Get(ctx context.Context, id string) Result
}

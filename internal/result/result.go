// Package result provides the tagged outcome type used by the service
// layer. Once inside an orchestrated operation, failures travel as Result
// values rather than errors crossing layer boundaries; every intermediate
// step forwards the original status and message unchanged.
package result

// Status identifies the outcome of a service operation. The set is closed:
// outer layers switch exhaustively over these values to pick a transport
// representation.
type Status int

// Possible outcome statuses.
const (
	// StatusSuccess indicates the operation completed and the value is set.
	StatusSuccess Status = iota

	// StatusNotFound indicates the target entity is absent, or exists but
	// is not owned by the acting user. The two cases are deliberately
	// indistinguishable so deck IDs cannot be enumerated.
	StatusNotFound

	// StatusConflict indicates a uniqueness or consistency rule was
	// violated, e.g. a duplicate deck name for the same owner.
	StatusConflict

	// StatusInvalidArguments indicates a caller-supplied parameter is
	// outside its documented contract.
	StatusInvalidArguments

	// StatusUnexpectedError indicates an unanticipated failure such as a
	// storage fault. Not retried at this layer.
	StatusUnexpectedError
)

// String returns a stable name for the status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNotFound:
		return "not_found"
	case StatusConflict:
		return "conflict"
	case StatusInvalidArguments:
		return "invalid_arguments"
	case StatusUnexpectedError:
		return "unexpected_error"
	default:
		return "unknown"
	}
}

// Result carries a status, an optional value (meaningful only on success)
// and an optional message. It is propagated by value and never wrapped.
type Result[T any] struct {
	Status  Status
	Value   T
	Message string
}

// IsSuccess reports whether the result carries a success status.
func (r Result[T]) IsSuccess() bool {
	return r.Status == StatusSuccess
}

// Success returns a value-carrying success result.
func Success[T any](value T) Result[T] {
	return Result[T]{Status: StatusSuccess, Value: value}
}

// NotFound returns a not-found result with an optional message.
func NotFound[T any](message string) Result[T] {
	return Result[T]{Status: StatusNotFound, Message: message}
}

// Conflict returns a conflict result with the given message.
func Conflict[T any](message string) Result[T] {
	return Result[T]{Status: StatusConflict, Message: message}
}

// InvalidArguments returns an invalid-arguments result with the given message.
func InvalidArguments[T any](message string) Result[T] {
	return Result[T]{Status: StatusInvalidArguments, Message: message}
}

// UnexpectedError returns an unexpected-error result with the given message.
func UnexpectedError[T any](message string) Result[T] {
	return Result[T]{Status: StatusUnexpectedError, Message: message}
}

// Failure converts a failed result of one value type into another,
// preserving the status and message exactly. It must not be called on a
// success result; the zero value of U would silently masquerade as a
// payload.
func Failure[U, T any](r Result[T]) Result[U] {
	return Result[U]{Status: r.Status, Message: r.Message}
}

// Empty is the value type for results that carry no payload.
type Empty = struct{}

// Done returns a success result with no payload.
func Done() Result[Empty] {
	return Success(Empty{})
}

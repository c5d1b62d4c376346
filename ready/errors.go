package ready

import (
	"errors"
	"reflect"
	"strconv"
)

var (
	// ErrNilRegistry is returned when Initialize is called with a nil *Registry.
	ErrNilRegistry = errors.New("ready: nil registry")

	// ErrNilInstance is returned when Initialize is called with a nil host pointer.
	ErrNilInstance = errors.New("ready: nil instance")

	// ErrNilTable is returned when Initialize is called without a member table.
	ErrNilTable = errors.New("ready: nil member table")

	// ErrLookupPanic wraps a panic raised by a host's GetNode.
	ErrLookupPanic = errors.New("ready: panic during GetNode")
)

// ResolveError is returned when the host cannot resolve a member's path.
//
// Err is the lookup error as returned by the host; errors.Is and errors.As reach it.
type ResolveError struct {
	Type   string
	Member string
	Path   string
	Err    error
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	// Example: ready: Hud.scoreLabel: resolve "ScoreLabel": node not found
	msg := "ready: " + e.Type + "." + e.Member + ": resolve " + strconv.Quote(e.Path)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the host lookup error.
func (e *ResolveError) Unwrap() error { return e.Err }

// AssignError is returned when a writer rejects a resolved node.
type AssignError struct {
	Type   string
	Member string
	Path   string
	Err    error
}

// Error implements the error interface.
func (e *AssignError) Error() string {
	msg := "ready: " + e.Type + "." + e.Member + ": assign " + strconv.Quote(e.Path)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the writer error.
func (e *AssignError) Unwrap() error { return e.Err }

// TypeMismatchError is returned by Convert writers when the node is not of the member type.
type TypeMismatchError struct {
	Want string
	Got  string
}

// Error implements the error interface.
func (e TypeMismatchError) Error() string {
	// Example: ready: node type *scene.Panel is not *scene.Label
	return "ready: node type " + e.Got + " is not " + e.Want
}

// DeclarationError reports an invalid member table.
type DeclarationError struct {
	Type   string
	Member string
	Reason string
}

// Error implements the error interface.
func (e DeclarationError) Error() string {
	if e.Member == "" {
		return "ready: invalid members for " + e.Type + ": " + e.Reason
	}
	return "ready: invalid member " + strconv.Quote(e.Member) + " on " + e.Type + ": " + e.Reason
}

// ReadOnlyMemberError describes a marked property that has no setter.
//
// Initialize never returns it; Result.Strict does, for callers that treat a
// skipped member as a failure.
type ReadOnlyMemberError struct {
	Type   string
	Member string
	Path   string
}

// Error implements the error interface.
func (e ReadOnlyMemberError) Error() string {
	return "ready: property " + strconv.Quote(e.Member) + " on " + e.Type + " is marked but has no setter"
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

func valueTypeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}

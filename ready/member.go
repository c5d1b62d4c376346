package ready

// Marker carries the path of the node a member is bound to.
//
// The path is opaque here; its syntax is whatever the host's Lookup accepts.
type Marker struct {
	Path string
}

// MemberKind tells how a marked member receives its node.
type MemberKind uint8

const (
	// KindField is a plain struct field. Fields are always writable.
	KindField MemberKind = iota + 1
	// KindProperty is a getter/setter pair.
	KindProperty
	// KindReadOnlyProperty is a getter without a setter. It is never assigned.
	KindReadOnlyProperty
)

// String implements fmt.Stringer.
func (k MemberKind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindProperty:
		return "property"
	case KindReadOnlyProperty:
		return "read-only property"
	default:
		return "unknown"
	}
}

// Lookup is the tree-lookup capability a host instance must provide.
//
// GetNode resolves path relative to the receiver and fails when no node exists there.
type Lookup[N any] interface {
	GetNode(path string) (N, error)
}

// Writer assigns a resolved node into a member of target.
type Writer[T any, N any] func(target *T, node N) error

// Assign adapts an infallible setter into a Writer.
func Assign[T any, N any](set func(target *T, node N)) Writer[T, N] {
	if set == nil {
		return nil
	}
	return func(target *T, node N) error {
		set(target, node)
		return nil
	}
}

// Convert builds a Writer for a member whose type M is narrower than the node type N.
//
// The node is asserted to M; a failed assertion returns TypeMismatchError and the
// member is left untouched.
//
//	ready.Convert[Hud, scene.Node](func(h *Hud, l *Label) { h.label = l })
func Convert[T any, N any, M any](set func(target *T, member M)) Writer[T, N] {
	if set == nil {
		return nil
	}
	return func(target *T, node N) error {
		m, ok := any(node).(M)
		if !ok {
			return TypeMismatchError{
				Want: typeName[M](),
				Got:  valueTypeName(node),
			}
		}
		set(target, m)
		return nil
	}
}

// Member describes one marked member of T.
type Member[T any, N any] struct {
	Name   string
	Kind   MemberKind
	Marker Marker

	write Writer[T, N]
}

// Path returns the marker path.
func (m Member[T, N]) Path() string { return m.Marker.Path }

// Writable reports whether the member can receive a node.
func (m Member[T, N]) Writable() bool { return m.write != nil && m.Kind != KindReadOnlyProperty }

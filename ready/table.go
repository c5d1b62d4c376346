package ready

// Table is the static declaration of T's marked members.
//
// Build it once, at package level, and reuse it for every instance:
//
//	var members = ready.Declare[Hud, scene.Node]().
//		Field("scoreLabel", "ScoreLabel", w).
//		Property("Title", "TitleNode", nil)
//
// Table is not safe for concurrent mutation; finish declaring before first use.
type Table[T any, N any] struct {
	fields     []Member[T, N]
	properties []Member[T, N]
}

// Declare starts an empty member table for T with node type N.
func Declare[T any, N any]() *Table[T, N] {
	return &Table[T, N]{}
}

// Field marks a field. w must not be nil; Members reports a DeclarationError otherwise.
func (t *Table[T, N]) Field(name, path string, w Writer[T, N]) *Table[T, N] {
	t.fields = append(t.fields, Member[T, N]{
		Name:   name,
		Kind:   KindField,
		Marker: Marker{Path: path},
		write:  w,
	})
	return t
}

// Property marks a property. A nil w declares a property without a setter.
func (t *Table[T, N]) Property(name, path string, w Writer[T, N]) *Table[T, N] {
	kind := KindProperty
	if w == nil {
		kind = KindReadOnlyProperty
	}
	t.properties = append(t.properties, Member[T, N]{
		Name:   name,
		Kind:   kind,
		Marker: Marker{Path: path},
		write:  w,
	})
	return t
}

// Len returns the number of declared members.
func (t *Table[T, N]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.fields) + len(t.properties)
}

// Members returns fields first, then properties, each in declaration order.
//
// It fails with DeclarationError on an empty or duplicate member name, or on a
// field declared without a writer.
func (t *Table[T, N]) Members() ([]Member[T, N], error) {
	if t.Len() == 0 {
		return nil, nil
	}

	owner := typeName[T]()
	seen := make(map[string]struct{}, t.Len())
	out := make([]Member[T, N], 0, t.Len())

	check := func(m Member[T, N]) error {
		if m.Name == "" {
			return DeclarationError{Type: owner, Reason: "empty member name"}
		}
		if _, dup := seen[m.Name]; dup {
			return DeclarationError{Type: owner, Member: m.Name, Reason: "duplicate member"}
		}
		seen[m.Name] = struct{}{}
		if m.Kind == KindField && m.write == nil {
			return DeclarationError{Type: owner, Member: m.Name, Reason: "field without writer"}
		}
		return nil
	}

	for _, m := range t.fields {
		if err := check(m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	for _, m := range t.properties {
		if err := check(m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

package ready_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghaida/onready/ready"
)

func TestResult_Filters(t *testing.T) {
	t.Parallel()

	res := &ready.Result{
		Type: "hud.Hud",
		Members: []ready.MemberResult{
			{Member: "a", Outcome: ready.Resolved},
			{Member: "Title", Path: "TitleNode", Outcome: ready.SkippedNoSetter},
			{Member: "b", Outcome: ready.Resolved},
		},
	}

	assert.Len(t, res.Resolved(), 2)
	require.Len(t, res.Skipped(), 1)
	assert.Equal(t, "Title", res.Skipped()[0].Member)
	assert.Empty(t, res.Failed())
	assert.True(t, res.Degraded())
}

func TestResult_Strict(t *testing.T) {
	t.Parallel()

	lookupErr := errors.New("gone")
	res := &ready.Result{
		Type: "hud.Hud",
		Members: []ready.MemberResult{
			{Member: "Title", Path: "TitleNode", Outcome: ready.SkippedNoSetter},
			{Member: "b", Path: "B", Outcome: ready.Failed, Err: lookupErr},
		},
	}

	err := res.Strict()
	require.Error(t, err)
	assert.ErrorIs(t, err, lookupErr)

	var ro ready.ReadOnlyMemberError
	require.True(t, errors.As(err, &ro))
	assert.Equal(t, "Title", ro.Member)
	assert.Equal(t, "hud.Hud", ro.Type)
	assert.Contains(t, ro.Error(), "no setter")
}

func TestResult_StrictClean(t *testing.T) {
	t.Parallel()

	var nilRes *ready.Result
	assert.NoError(t, nilRes.Strict())
	assert.Empty(t, nilRes.Skipped())

	res := &ready.Result{Members: []ready.MemberResult{{Member: "a", Outcome: ready.Resolved}}}
	assert.NoError(t, res.Strict())
	assert.False(t, res.Degraded())
}

func TestOutcome_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "resolved", ready.Resolved.String())
	assert.Equal(t, "skipped-no-setter", ready.SkippedNoSetter.String())
	assert.Equal(t, "failed", ready.Failed.String())
	assert.Equal(t, "unknown", ready.Outcome(0).String())
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "resolve",
			err:  &ready.ResolveError{Type: "hud.Hud", Member: "score", Path: "Score", Err: errors.New("not found")},
			want: `ready: hud.Hud.score: resolve "Score": not found`,
		},
		{
			name: "resolve_without_cause",
			err:  &ready.ResolveError{Type: "hud.Hud", Member: "score", Path: "Score"},
			want: `ready: hud.Hud.score: resolve "Score"`,
		},
		{
			name: "assign",
			err:  &ready.AssignError{Type: "hud.Hud", Member: "score", Path: "Score", Err: errors.New("bad")},
			want: `ready: hud.Hud.score: assign "Score": bad`,
		},
		{
			name: "mismatch",
			err:  ready.TypeMismatchError{Want: "*scene.Label", Got: "*scene.Panel"},
			want: "ready: node type *scene.Panel is not *scene.Label",
		},
		{
			name: "declaration_type",
			err:  ready.DeclarationError{Type: "hud.Hud", Reason: "empty member name"},
			want: "ready: invalid members for hud.Hud: empty member name",
		},
		{
			name: "declaration_member",
			err:  ready.DeclarationError{Type: "hud.Hud", Member: "x", Reason: "duplicate member"},
			want: `ready: invalid member "x" on hud.Hud: duplicate member`,
		},
		{
			name: "read_only",
			err:  ready.ReadOnlyMemberError{Type: "hud.Hud", Member: "Title"},
			want: `ready: property "Title" on hud.Hud is marked but has no setter`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

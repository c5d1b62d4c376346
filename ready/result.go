package ready

import "errors"

// Outcome is what happened to a single member during Initialize.
type Outcome uint8

const (
	// Resolved means the node was found and assigned.
	Resolved Outcome = iota + 1
	// SkippedNoSetter means the member is a property without a setter and was left untouched.
	SkippedNoSetter
	// Failed means lookup or assignment failed; Initialize stopped at this member.
	Failed
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case SkippedNoSetter:
		return "skipped-no-setter"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// MemberResult records the outcome for one member.
type MemberResult struct {
	Member  string
	Path    string
	Kind    MemberKind
	Outcome Outcome
	// Cached is true when the node came from the registry instead of a fresh lookup.
	Cached bool
	Err    error
}

// Result lists per-member outcomes of one Initialize call, in processing order.
//
// After a failure, members past the failing one do not appear.
type Result struct {
	Type    string
	Members []MemberResult
}

// Degraded reports whether any member was skipped.
func (r *Result) Degraded() bool {
	return len(r.Skipped()) > 0
}

// Skipped returns members left untouched for lack of a setter.
func (r *Result) Skipped() []MemberResult {
	return r.filter(SkippedNoSetter)
}

// Failed returns the failing member, if any.
func (r *Result) Failed() []MemberResult {
	return r.filter(Failed)
}

// Resolved returns assigned members.
func (r *Result) Resolved() []MemberResult {
	return r.filter(Resolved)
}

// Strict returns nil when every member resolved, and otherwise joins the
// failure error with one ReadOnlyMemberError per skipped member.
func (r *Result) Strict() error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, m := range r.Members {
		switch m.Outcome {
		case Failed:
			errs = append(errs, m.Err)
		case SkippedNoSetter:
			errs = append(errs, ReadOnlyMemberError{Type: r.Type, Member: m.Member, Path: m.Path})
		}
	}
	return errors.Join(errs...)
}

func (r *Result) filter(o Outcome) []MemberResult {
	if r == nil {
		return nil
	}
	var out []MemberResult
	for _, m := range r.Members {
		if m.Outcome == o {
			out = append(out, m)
		}
	}
	return out
}

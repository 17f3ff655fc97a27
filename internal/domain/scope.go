package domain

// Scope is a capability tag carried by a user's role.
type Scope string

const (
	ScopeAdmin     Scope = "admin"
	ScopeMember    Scope = "member"
	ScopeNotMember Scope = "notMember"
	ScopeAnonymous Scope = "anonymous"
)

func (s Scope) Valid() bool {
	switch s {
	case ScopeAdmin, ScopeMember, ScopeNotMember, ScopeAnonymous:
		return true
	}
	return false
}

type Scopes []Scope

func (ss Scopes) Has(scope Scope) bool {
	for _, s := range ss {
		if s == scope {
			return true
		}
	}
	return false
}

// HasAny reports whether the two scope sets intersect.
func (ss Scopes) HasAny(required ...Scope) bool {
	for _, r := range required {
		if ss.Has(r) {
			return true
		}
	}
	return false
}

// With returns the union of ss and extra, keeping the original order and
// dropping duplicates.
func (ss Scopes) With(extra ...Scope) Scopes {
	out := make(Scopes, 0, len(ss)+len(extra))
	for _, s := range append(append(Scopes{}, ss...), extra...) {
		if !out.Has(s) {
			out = append(out, s)
		}
	}
	return out
}

func (ss Scopes) Strings() []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = string(s)
	}
	return out
}

func ScopesFromStrings(values []string) Scopes {
	out := make(Scopes, 0, len(values))
	for _, v := range values {
		out = append(out, Scope(v))
	}
	return out
}

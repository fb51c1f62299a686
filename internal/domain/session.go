package domain

type AuthState int

const (
	Unauthenticated AuthState = iota
	Authenticated
)

func (s AuthState) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Session is the per-browser auth state, keyed by the sid cookie.
type Session struct {
	ID    string
	User  string
	State AuthState
}

func (s Session) Authenticated() bool { return s.State == Authenticated }

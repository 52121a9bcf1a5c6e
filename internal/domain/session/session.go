package session

// Credential is the opaque bearer token pair held by the surrounding auth
// flow. The core only reads it; absence of either token means no session.
type Credential struct {
	AccessToken  string
	RefreshToken string
}

func (c Credential) Present() bool {
	return c.AccessToken != "" && c.RefreshToken != ""
}

type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type State int

const (
	// StateAnonymous means no credential was present at all.
	StateAnonymous State = iota
	// StateExpired means a credential was present but the identity backend
	// rejected it. Gating treats it like anonymous, but the distinction is
	// kept for diagnostics and re-login prompts.
	StateExpired
	// StateUnknown means the identity backend could not be consulted.
	StateUnknown
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateExpired:
		return "expired"
	case StateUnknown:
		return "unknown"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "invalid"
	}
}

// Resolution is the three-way session outcome. It is never collapsed to a
// boolean: checkout gating only needs Authenticated(), while diagnostics
// need the anonymous / expired / unknown distinction.
type Resolution struct {
	State State
	User  *User
	Err   error
}

func (r Resolution) Authenticated() bool {
	return r.State == StateAuthenticated && r.User != nil
}

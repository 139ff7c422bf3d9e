// Package session owns the client's authenticated state: who is signed in,
// with what bearer credential, and how that state is recovered after a
// reload. The Store is the single writer; every other component reads it.
package session

// Identity represents the signed-in principal. Fields mirror what the
// identity provider exposes about an account; any of them may be empty.
type Identity struct {
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

// Label returns the value the gateway sends as the caller-identity header:
// display name, else email, else empty.
func (i Identity) Label() string {
	if i.DisplayName != "" {
		return i.DisplayName
	}
	return i.Email
}

// snapshot is the persisted shape of the session, written to tab-session
// storage under sessionKey. Token, roles, and expiry are independently
// optional: the UI may render logged-in state while the token catches up.
type snapshot struct {
	IsAuthenticated bool      `json:"isAuthenticated"`
	User            *Identity `json:"user"`
	Token           *string   `json:"token"`
	Roles           []string  `json:"roles"`
	AccessTokenExp  *int64    `json:"accessTokenExp"`
}

// sessionKey scopes the session snapshot in tab-session storage.
const sessionKey = "auth-session"

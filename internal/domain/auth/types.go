// Package auth contains the domain types for user identity and sessions.
package auth

// User is the identity of a signed-in account holder.
type User struct {
	// ID is opaque: remote accounts carry the backend's numeric id as a
	// string, locally-registered accounts carry a UUID.
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Image     string `json:"image"`
}

// Session is the persisted authentication state: who is signed in and the
// bearer token the backend issued. Locally-registered sessions carry a
// locally-minted token.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// IsAuthenticated reports whether the session identifies a signed-in user.
// Both the user record and the token must be present.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.User != nil && s.Token != ""
}

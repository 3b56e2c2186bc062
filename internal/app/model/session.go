package model

// User is the authenticated account identity returned by the auth endpoints.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session pairs a bearer token with the user it belongs to. The pair is always
// set or cleared together; a session with only one half populated is invalid.
type Session struct {
	Token string
	User  *User
}

// Active reports whether the session carries usable credentials.
func (s Session) Active() bool {
	return s.Token != "" && s.User != nil
}

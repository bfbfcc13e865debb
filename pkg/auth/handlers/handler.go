package handlers

import "net/http"

// AuthHandler serves the account endpoints of the auth server.
// Requests carry form values; responses are JSON or a plain error message.
type AuthHandler interface {
	// HandleRegister creates an account from email and password
	HandleRegister() http.HandlerFunc
	// HandleLogin exchanges email and password for a session
	HandleLogin() http.HandlerFunc
	// HandleRefresh exchanges refreshToken for a new session token
	HandleRefresh() http.HandlerFunc
	// HandleDelete removes the account owning idToken
	HandleDelete() http.HandlerFunc
}

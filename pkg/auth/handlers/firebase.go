package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cbodonnell/wayfarer/pkg/log"
)

var _ AuthHandler = &FirebaseAuthHandler{}

const (
	DefaultIdentityToolkitURL = "https://identitytoolkit.googleapis.com/v1"
	DefaultSecureTokenURL     = "https://securetoken.googleapis.com/v1"
)

// EmailRecorder stores the email of a user so it can be looked up by admin tools
type EmailRecorder interface {
	SaveUserEmail(ctx context.Context, userID string, email string) error
}

// FirebaseAuthHandler implements AuthHandler using Firebase Auth REST API
type FirebaseAuthHandler struct {
	apiKey             string
	identityToolkitURL string
	secureTokenURL     string
	client             *http.Client
	emails             EmailRecorder
}

type NewFirebaseAuthHandlerOptions struct {
	APIKey string
	// IdentityToolkitURL and SecureTokenURL default to the Google endpoints
	IdentityToolkitURL string
	SecureTokenURL     string
	Client             *http.Client
	// Emails records the email of every registered or logged in user when set
	Emails EmailRecorder
}

// NewFirebaseAuthHandler creates a new instance of FirebaseAuthHandler
func NewFirebaseAuthHandler(opts NewFirebaseAuthHandlerOptions) *FirebaseAuthHandler {
	h := &FirebaseAuthHandler{
		apiKey:             opts.APIKey,
		identityToolkitURL: opts.IdentityToolkitURL,
		secureTokenURL:     opts.SecureTokenURL,
		client:             opts.Client,
		emails:             opts.Emails,
	}
	if h.identityToolkitURL == "" {
		h.identityToolkitURL = DefaultIdentityToolkitURL
	}
	if h.secureTokenURL == "" {
		h.secureTokenURL = DefaultSecureTokenURL
	}
	if h.client == nil {
		h.client = http.DefaultClient
	}
	return h
}

// ErrorResponseBody is the response body for an error
// https://firebase.google.com/docs/reference/rest/auth#section-error-format
type ErrorResponseBody struct {
	Error struct {
		Code    int                  `json:"code"`
		Message ErrorResponseMessage `json:"message"`
	} `json:"error"`
}

type ErrorResponseMessage string

const (
	ErrorEmailExists             ErrorResponseMessage = "EMAIL_EXISTS"
	ErrorOperationNotAllowed     ErrorResponseMessage = "OPERATION_NOT_ALLOWED"
	ErrorTooManyAttempts         ErrorResponseMessage = "TOO_MANY_ATTEMPTS_TRY_LATER"
	ErrorInvalidEmail            ErrorResponseMessage = "INVALID_EMAIL"
	ErrorInvalidLoginCredentials ErrorResponseMessage = "INVALID_LOGIN_CREDENTIALS"
	ErrorTokenExpired            ErrorResponseMessage = "TOKEN_EXPIRED"
	ErrorInvalidIDToken          ErrorResponseMessage = "INVALID_ID_TOKEN"
	ErrorUserNotFound            ErrorResponseMessage = "USER_NOT_FOUND"
	ErrorWeakPassword            ErrorResponseMessage = "WEAK_PASSWORD : Password should be at least 6 characters"
)

// clientErrors maps identity platform errors to the message shown to the player
var clientErrors = map[ErrorResponseMessage]string{
	ErrorEmailExists:             "Email already exists",
	ErrorOperationNotAllowed:     "Operation not allowed",
	ErrorTooManyAttempts:         "Too many attempts, try again later",
	ErrorInvalidEmail:            "Invalid email",
	ErrorInvalidLoginCredentials: "Invalid credentials",
	ErrorTokenExpired:            "Token expired",
	ErrorInvalidIDToken:          "Invalid ID token",
	ErrorUserNotFound:            "User not found",
	ErrorWeakPassword:            "Password should be at least 6 characters",
}

// CredentialsRequestBody is the request body for the register and login endpoints
type CredentialsRequestBody struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

// SessionResponseBody is the response body for the register and login endpoints
type SessionResponseBody struct {
	IDToken      string `json:"idToken"`
	Email        string `json:"email"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	LocalID      string `json:"localId"`
	Registered   bool   `json:"registered,omitempty"`
}

// RefreshRequestBody is the request body for the refresh endpoint
type RefreshRequestBody struct {
	GrantType    string `json:"grant_type"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponseBody is the response body for the refresh endpoint
type RefreshResponseBody struct {
	ExpiresIn    string `json:"expires_in"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
	IDToken      string `json:"id_token"`
	UserID       string `json:"user_id"`
	ProjectID    string `json:"project_id"`
}

// DeleteRequestBody is the request body for the delete endpoint
type DeleteRequestBody struct {
	IDToken string `json:"idToken"`
}

// HandleRegister handles requests to the register endpoint
// https://firebase.google.com/docs/reference/rest/auth#section-create-email-password
func (s *FirebaseAuthHandler) HandleRegister() http.HandlerFunc {
	return s.handleCredentials("accounts:signUp", "Failed to register")
}

// HandleLogin handles requests to the login endpoint
// https://firebase.google.com/docs/reference/rest/auth#section-sign-in-email-password
func (s *FirebaseAuthHandler) HandleLogin() http.HandlerFunc {
	return s.handleCredentials("accounts:signInWithPassword", "Failed to login")
}

func (s *FirebaseAuthHandler) handleCredentials(endpoint string, failure string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.FormValue("email")
		password := r.FormValue("password")

		if email == "" {
			http.Error(w, "Missing email", http.StatusBadRequest)
			return
		}
		if password == "" {
			http.Error(w, "Missing password", http.StatusBadRequest)
			return
		}

		requestPayload := &CredentialsRequestBody{
			Email:             email,
			Password:          password,
			ReturnSecureToken: true,
		}
		responsePayload := &SessionResponseBody{}
		url := fmt.Sprintf("%s/%s?key=%s", s.identityToolkitURL, endpoint, s.apiKey)
		if !s.forward(w, r.Context(), url, requestPayload, responsePayload, failure) {
			return
		}

		if s.emails != nil && responsePayload.LocalID != "" {
			if err := s.emails.SaveUserEmail(r.Context(), responsePayload.LocalID, responsePayload.Email); err != nil {
				log.Error("failed to record email for user %s: %v", responsePayload.LocalID, err)
			}
		}

		writeJSON(w, responsePayload)
	}
}

// HandleRefresh handles requests to the refresh endpoint
// https://firebase.google.com/docs/reference/rest/auth#section-refresh-token
func (s *FirebaseAuthHandler) HandleRefresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refreshToken := r.FormValue("refreshToken")
		if refreshToken == "" {
			http.Error(w, "Missing refresh token", http.StatusBadRequest)
			return
		}

		requestPayload := &RefreshRequestBody{
			GrantType:    "refresh_token",
			RefreshToken: refreshToken,
		}
		responsePayload := &RefreshResponseBody{}
		url := fmt.Sprintf("%s/token?key=%s", s.secureTokenURL, s.apiKey)
		if !s.forward(w, r.Context(), url, requestPayload, responsePayload, "Failed to refresh") {
			return
		}
		writeJSON(w, responsePayload)
	}
}

// HandleDelete handles requests to the delete endpoint
// https://firebase.google.com/docs/reference/rest/auth#section-delete-account
func (s *FirebaseAuthHandler) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idToken := r.FormValue("idToken")
		if idToken == "" {
			http.Error(w, "Missing ID token", http.StatusBadRequest)
			return
		}

		requestPayload := &DeleteRequestBody{
			IDToken: idToken,
		}
		url := fmt.Sprintf("%s/accounts:delete?key=%s", s.identityToolkitURL, s.apiKey)
		if !s.forward(w, r.Context(), url, requestPayload, nil, "Failed to delete") {
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// forward posts requestPayload to url and decodes the reply into responsePayload.
// On failure it writes the error response and returns false.
func (s *FirebaseAuthHandler) forward(w http.ResponseWriter, ctx context.Context, url string, requestPayload interface{}, responsePayload interface{}, failure string) bool {
	body := bytes.NewBuffer(nil)
	if err := json.NewEncoder(body).Encode(requestPayload); err != nil {
		log.Error("error encoding request body: %v", err)
		http.Error(w, "error encoding request body", http.StatusInternalServerError)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		log.Error("error creating request: %v", err)
		http.Error(w, "error creating request", http.StatusInternalServerError)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Error("error sending request: %v", err)
		http.Error(w, "error sending request", http.StatusInternalServerError)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error("error response status: %s", resp.Status)
		errorResponse := &ErrorResponseBody{}
		if err := json.NewDecoder(resp.Body).Decode(errorResponse); err != nil {
			log.Error("failed to decode error response: %v", err)
			http.Error(w, "failed to decode error response", http.StatusInternalServerError)
			return false
		}

		if message, ok := clientErrors[errorResponse.Error.Message]; ok {
			http.Error(w, message, http.StatusBadRequest)
			return false
		}

		log.Error("unhandled error response message: %s", errorResponse.Error.Message)
		http.Error(w, failure, http.StatusInternalServerError)
		return false
	}

	if responsePayload == nil {
		return true
	}
	if err := json.NewDecoder(resp.Body).Decode(responsePayload); err != nil {
		log.Error("error decoding response: %v", err)
		http.Error(w, "error decoding response", http.StatusInternalServerError)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("error encoding response: %v", err)
		http.Error(w, "error encoding response", http.StatusInternalServerError)
	}
}

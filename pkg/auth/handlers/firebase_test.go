package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEmail struct {
	userID string
	email  string
}

type fakeEmailRecorder struct {
	saved []recordedEmail
}

func (f *fakeEmailRecorder) SaveUserEmail(ctx context.Context, userID string, email string) error {
	f.saved = append(f.saved, recordedEmail{userID: userID, email: email})
	return nil
}

// newIdentityServer fakes the identity REST API
func newIdentityServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/accounts:signInWithPassword", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		body := &CredentialsRequestBody{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(body))
		assert.True(t, body.ReturnSecureToken)

		if body.Password != "correct horse" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"code":400,"message":"INVALID_LOGIN_CREDENTIALS"}}`))
			return
		}
		json.NewEncoder(w).Encode(&SessionResponseBody{
			IDToken:      "id-token",
			Email:        body.Email,
			RefreshToken: "refresh-token",
			ExpiresIn:    "3600",
			LocalID:      "user-1",
			Registered:   true,
		})
	})
	mux.HandleFunc("/accounts:signUp", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"SOMETHING_NEW"}}`))
	})
	mux.HandleFunc("/accounts:delete", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		body := &RefreshRequestBody{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(body))
		assert.Equal(t, "refresh_token", body.GrantType)
		json.NewEncoder(w).Encode(&RefreshResponseBody{IDToken: "new-id-token", UserID: "user-1"})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestHandler(t *testing.T, emails EmailRecorder) *FirebaseAuthHandler {
	server := newIdentityServer(t)
	return NewFirebaseAuthHandler(NewFirebaseAuthHandlerOptions{
		APIKey:             "test-key",
		IdentityToolkitURL: server.URL,
		SecureTokenURL:     server.URL,
		Emails:             emails,
	})
}

func postForm(handler func(http.ResponseWriter, *http.Request), values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestFirebaseAuthHandler_HandleLogin(t *testing.T) {
	emails := &fakeEmailRecorder{}
	handler := newTestHandler(t, emails)

	tests := []struct {
		name       string
		values     url.Values
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing email",
			values:     url.Values{"password": {"x"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Missing email",
		},
		{
			name:       "missing password",
			values:     url.Values{"email": {"a@example.com"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Missing password",
		},
		{
			name:       "invalid credentials",
			values:     url.Values{"email": {"a@example.com"}, "password": {"wrong"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid credentials",
		},
		{
			name:       "success",
			values:     url.Values{"email": {"a@example.com"}, "password": {"correct horse"}},
			wantStatus: http.StatusOK,
			wantBody:   `"idToken":"id-token"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postForm(handler.HandleLogin(), tt.values)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}

	require.Len(t, emails.saved, 1)
	assert.Equal(t, recordedEmail{userID: "user-1", email: "a@example.com"}, emails.saved[0])
}

func TestFirebaseAuthHandler_UnhandledError(t *testing.T) {
	handler := newTestHandler(t, nil)
	rec := postForm(handler.HandleRegister(), url.Values{"email": {"a@example.com"}, "password": {"secret1"}})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to register")
}

func TestFirebaseAuthHandler_HandleRefresh(t *testing.T) {
	handler := newTestHandler(t, nil)

	rec := postForm(handler.HandleRefresh(), url.Values{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postForm(handler.HandleRefresh(), url.Values{"refreshToken": {"refresh-token"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := &RefreshResponseBody{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(body))
	assert.Equal(t, "new-id-token", body.IDToken)
}

func TestFirebaseAuthHandler_HandleDelete(t *testing.T) {
	handler := newTestHandler(t, nil)

	rec := postForm(handler.HandleDelete(), url.Values{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postForm(handler.HandleDelete(), url.Values{"idToken": {"id-token"}})
	assert.Equal(t, http.StatusOK, rec.Code)
}

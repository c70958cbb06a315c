package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticValidator accepts a fixed set of tokens.
type staticValidator map[string]uuid.UUID

func (v staticValidator) ValidateToken(tokenString string) (Principal, error) {
	userID, ok := v[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return testPrincipal(userID), nil
}

type testPrincipal uuid.UUID

func (p testPrincipal) GetUserID() uuid.UUID {
	return uuid.UUID(p)
}

func protectedHandler(t *testing.T, called *bool, wantUser uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		userID, ok := UserID(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantUser, userID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireBearer_ValidToken(t *testing.T) {
	userID := uuid.New()
	validator := staticValidator{"good-token": userID}

	tests := []string{"Bearer good-token", "bearer good-token", "BEARER   good-token"}
	for _, header := range tests {
		t.Run(header, func(t *testing.T) {
			called := false
			h := RequireBearer(validator)(protectedHandler(t, &called, userID))

			req := httptest.NewRequest(http.MethodGet, "/documents/x/pages", nil)
			req.Header.Set("Authorization", header)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, called)
		})
	}
}

func TestRequireBearer_Rejects(t *testing.T) {
	validator := staticValidator{"good-token": uuid.New(), "nil-user": uuid.Nil}

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing header", "", "missing bearer token"},
		{"wrong scheme", "Basic good-token", "missing bearer token"},
		{"no token", "Bearer", "missing bearer token"},
		{"extra parts", "Bearer good-token extra", "missing bearer token"},
		{"unknown token", "Bearer bad-token", "invalid token"},
		{"nil user", "Bearer nil-user", "invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := RequireBearer(validator)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")

			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.want, body["error"])
		})
	}
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := BearerToken(req)
	assert.ErrorIs(t, err, ErrNoBearerToken)

	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	token, err := BearerToken(req)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
}

func TestUserID_Context(t *testing.T) {
	_, ok := UserID(context.Background())
	assert.False(t, ok)

	id := uuid.New()
	got, ok := UserID(WithUserID(context.Background(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)

	wrongType := context.WithValue(context.Background(), userIDKey, "not-a-uuid")
	_, ok = UserID(wrongType)
	assert.False(t, ok)
}

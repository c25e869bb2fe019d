package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubParser struct {
	claims jwt.MapClaims
	err    error
	got    string
}

func (p *stubParser) ParseToken(token string) (jwt.MapClaims, error) {
	p.got = token
	return p.claims, p.err
}

func protected(parser TokenParser, roles ...string) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, _ := GetUsernameFromContext(r.Context())
		w.Header().Set("X-User", name)
		w.WriteHeader(http.StatusOK)
	})
	return Authenticate(parser)(Authorize(roles...)(ok))
}

func TestAuthenticate_ValidAdminToken(t *testing.T) {
	parser := &stubParser{claims: jwt.MapClaims{"sub": "admin", "role": "admin"}}
	req := httptest.NewRequest(http.MethodGet, "/api/admin/status", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	rec := httptest.NewRecorder()

	protected(parser, "admin").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc.def.ghi", parser.got)
	assert.Equal(t, "admin", rec.Header().Get("X-User"))
}

func TestAuthenticate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
		parser *stubParser
		want   int
	}{
		{"no header", "", &stubParser{}, http.StatusUnauthorized},
		{"wrong scheme", "Basic YWRtaW46cHc=", &stubParser{}, http.StatusUnauthorized},
		{"empty token", "Bearer ", &stubParser{}, http.StatusUnauthorized},
		{"invalid token", "Bearer bad", &stubParser{err: errors.New("expired")}, http.StatusUnauthorized},
		{"wrong role", "Bearer tok", &stubParser{claims: jwt.MapClaims{"sub": "x", "role": "guest"}}, http.StatusForbidden},
		{"role missing", "Bearer tok", &stubParser{claims: jwt.MapClaims{"sub": "x"}}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			protected(tt.parser, "admin").ServeHTTP(rec, req)

			require.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestGetUserRoleFromContext_NoClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetUserRoleFromContext(req.Context())
	assert.Error(t, err)
	_, err = GetUsernameFromContext(req.Context())
	assert.Error(t, err)
}

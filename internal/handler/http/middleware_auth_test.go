package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/processflow/server/internal/service"
	"github.com/processflow/server/internal/store"
	"github.com/processflow/server/internal/utils"
	"github.com/processflow/server/models"
)

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "no token part", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "empty token part", header: "Bearer ", wantErr: ErrEmptyToken},
		{name: "bare token without scheme", header: "abc.def.ghi", wantErr: ErrInvalidAuthorizationHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthMiddleware_Success(t *testing.T) {
	user := activeUser()
	svc := &mockAuthService{
		parseTokenFunc: func(ctx context.Context, tokenString string) (models.Token, error) {
			assert.Equal(t, "good.jwt.token", tokenString)
			return signedTokenFor(user), nil
		},
		getUserFunc: func(ctx context.Context, id string) (models.User, error) {
			assert.Equal(t, user.ID, id)
			return user, nil
		},
	}
	h := newTestHandler(svc)

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		got, ok := utils.GetUserFromContext(r.Context())
		require.True(t, ok, "expected the resolved user in the request context")
		assert.Equal(t, user.ID, got.ID)
	})

	r := httptest.NewRequest(http.MethodGet, "/api/verify", nil)
	r.Header.Set("Authorization", "Bearer good.jwt.token")
	w := httptest.NewRecorder()

	h.auth(next).ServeHTTP(w, r)

	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusOK, w.Code)
}

// Each guard rejection returns 401 with the same body regardless of cause.
func TestAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
		svc    *mockAuthService
	}{
		{
			name:   "missing header",
			header: "",
			svc:    &mockAuthService{},
		},
		{
			name:   "malformed header",
			header: "garbage",
			svc:    &mockAuthService{},
		},
		{
			name:   "invalid token",
			header: "Bearer bad.jwt.token",
			svc: &mockAuthService{
				parseTokenFunc: func(ctx context.Context, tokenString string) (models.Token, error) {
					return models.Token{}, service.ErrTokenIsExpiredOrInvalid
				},
			},
		},
		{
			name:   "account no longer exists",
			header: "Bearer good.jwt.token",
			svc: &mockAuthService{
				parseTokenFunc: func(ctx context.Context, tokenString string) (models.Token, error) {
					return signedTokenFor(activeUser()), nil
				},
				getUserFunc: func(ctx context.Context, id string) (models.User, error) {
					return models.User{}, store.ErrNoUserWasFound
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(tt.svc)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("next handler must not be called")
			})

			r := httptest.NewRequest(http.MethodGet, "/api/verify", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			h.auth(next).ServeHTTP(w, r)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "invalid or expired token", decodeError(t, w).Error)
		})
	}
}

func TestAuthMiddleware_LookupFailure(t *testing.T) {
	svc := &mockAuthService{
		parseTokenFunc: func(ctx context.Context, tokenString string) (models.Token, error) {
			return signedTokenFor(activeUser()), nil
		},
		getUserFunc: func(ctx context.Context, id string) (models.User, error) {
			return models.User{}, assert.AnError
		},
	}
	h := newTestHandler(svc)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be called")
	})

	r := httptest.NewRequest(http.MethodGet, "/api/verify", nil)
	r.Header.Set("Authorization", "Bearer good.jwt.token")
	w := httptest.NewRecorder()

	h.auth(next).ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		user       *models.User
		required   []models.Role
		wantStatus int
	}{
		{
			name:       "admin passes admin-only",
			user:       &models.User{ID: "1", Role: models.RoleAdmin},
			required:   []models.Role{models.RoleAdmin},
			wantStatus: http.StatusOK,
		},
		{
			name:       "user rejected from admin-only",
			user:       &models.User{ID: "2", Role: models.RoleUser},
			required:   []models.Role{models.RoleAdmin},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin satisfies user requirement",
			user:       &models.User{ID: "1", Role: models.RoleAdmin},
			required:   []models.Role{models.RoleUser},
			wantStatus: http.StatusOK,
		},
		{
			name:       "no user in context",
			user:       nil,
			required:   []models.Role{models.RoleUser},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.user != nil {
				r = r.WithContext(utils.WithUser(r.Context(), tt.user))
			}
			w := httptest.NewRecorder()

			RequireRole(tt.required...)(next).ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/communityhours/hours-dashboard/internal/system/constants"
	"github.com/communityhours/hours-dashboard/internal/system/utils"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims Claims, secret []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func newIdentityRouter(opts IdentityOptions, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(IdentityMiddleware(opts))
	if len(roles) > 0 {
		r.Use(RequireRole(roles...))
	}
	r.GET("/whoami", func(c *gin.Context) {
		principal, _ := PrincipalFrom(c)
		token, _ := utils.BearerTokenFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"role":     principal.Role,
			"schoolId": principal.SchoolID,
			"session":  principal.SessionID,
			"hasToken": token != "",
		})
	})
	return r
}

func TestIdentityMiddleware_ValidToken(t *testing.T) {
	r := newIdentityRouter(IdentityOptions{Secret: testSecret, Verify: true})
	token := signToken(t, Claims{
		Role:     constants.RoleSchoolAdmin,
		SchoolID: "north-high",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"role":"SCHOOL_ADMIN","schoolId":"north-high","session":"admin-1","hasToken":true}`, w.Body.String())
}

func TestIdentityMiddleware_Rejections(t *testing.T) {
	r := newIdentityRouter(IdentityOptions{Secret: testSecret, Verify: true})

	expired := signToken(t, Claims{
		Role: constants.RoleBoardAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}, testSecret)
	wrongKey := signToken(t, Claims{Role: constants.RoleBoardAdmin}, []byte("other"))
	noRole := signToken(t, Claims{}, testSecret)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, status: http.StatusUnauthorized},
		{name: "wrong key", header: "Bearer " + wrongKey, status: http.StatusUnauthorized},
		{name: "no role", header: "Bearer " + noRole, status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRequireRole_ForbidsOtherRoles(t *testing.T) {
	r := newIdentityRouter(IdentityOptions{Secret: testSecret, Verify: true}, constants.RoleBoardAdmin)
	token := signToken(t, Claims{Role: constants.RoleSchoolAdmin}, testSecret)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestIdentityMiddleware_VerifiedSessionIgnoresHeader(t *testing.T) {
	r := newIdentityRouter(IdentityOptions{Secret: testSecret, Verify: true})
	token := signToken(t, Claims{
		Role:      constants.RoleBoardAdmin,
		SessionID: "real-sid",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret)

	for _, header := range []string{"fresh-1", "fresh-2"} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set(constants.SessionIDHeaderName, header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"session":"real-sid"`)
	}
}

func TestIdentityMiddleware_VerifiedSessionFallsBackToSubject(t *testing.T) {
	r := newIdentityRouter(IdentityOptions{Secret: testSecret, Verify: true})
	token := signToken(t, Claims{
		Role:             constants.RoleBoardAdmin,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "admin-1"},
	}, testSecret)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(constants.SessionIDHeaderName, "fresh-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"session":"admin-1"`)
}

func TestIdentityMiddleware_UnverifiedSessionHeaderWins(t *testing.T) {
	r := newIdentityRouter(IdentityOptions{Verify: false})
	token := signToken(t, Claims{Role: constants.RoleBoardAdmin, SessionID: "sid-1"}, []byte("anything"))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(constants.SessionIDHeaderName, "tab-7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"session":"tab-7"`)
}

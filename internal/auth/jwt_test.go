package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify_RoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	token, err := issuer.Sign(Identity{ID: 42, Name: "Ada Lovelace", Handle: "ada"})
	require.NoError(t, err)

	id, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id.ID)
	assert.Equal(t, "Ada Lovelace", id.Name)
	assert.Equal(t, "ada", id.Handle)
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute)
	token, err := issuer.Sign(Identity{ID: 1, Handle: "ada"})
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.Error(t, err)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := NewIssuer("secret-a", time.Hour).Sign(Identity{ID: 1, Handle: "ada"})
	require.NoError(t, err)

	_, err = NewIssuer("secret-b", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := NewIssuer("test-secret", time.Hour).Verify("not.a.token")
	assert.Error(t, err)
}

func TestNewIssuer_DefaultTTL(t *testing.T) {
	issuer := NewIssuer("test-secret", 0)
	assert.Equal(t, 10*time.Hour, issuer.ttl)
}

func authRouter(issuer *Issuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", RequireAuth(issuer), func(c *gin.Context) {
		id := IdentityFromContext(c)
		c.JSON(http.StatusOK, gin.H{"handle": id.Handle})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	r := authRouter(issuer)

	token, err := issuer.Sign(Identity{ID: 7, Name: "Ada", Handle: "ada"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"bad token", "Bearer garbage", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"handle":"ada"`)
			} else {
				assert.Contains(t, w.Body.String(), "notauthorized")
			}
		})
	}
}

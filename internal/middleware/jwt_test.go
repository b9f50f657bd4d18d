package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/crypto-tracker/internal/utils"
)

const testSecret = "test-secret"

// okHandler echoes the identity the middleware stored, so tests can
// assert what downstream handlers would see.
func okHandler(c echo.Context) error {
	ident, err := CurrentIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ident)
}

func runJWT(t *testing.T, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := JWTAuth(testSecret)(okHandler)(c)
	require.NoError(t, err)
	return rec
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	t.Parallel()

	rec := runJWT(t, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "missing bearer token")
}

func TestJWTAuth_BadToken(t *testing.T) {
	t.Parallel()

	rec := runJWT(t, "Bearer not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid token")
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := utils.NewAccessToken("other-secret", 7, "a@b.c", false, 60)
	require.NoError(t, err)

	rec := runJWT(t, "Bearer "+tok.Token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_ValidTokenSetsIdentity(t *testing.T) {
	t.Parallel()

	tok, err := utils.NewAccessToken(testSecret, 42, "admin@example.com", true, 60)
	require.NoError(t, err)

	rec := runJWT(t, "Bearer "+tok.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"id":42`)
	require.Contains(t, rec.Body.String(), "admin@example.com")
}

package middleware

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/crypto-tracker/internal/repository"
)

func runAdmin(t *testing.T, db *sql.DB, ident *Identity) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if ident != nil {
		SetIdentity(c, *ident)
	}
	err := RequireAdmin(repository.NewUserRepo(db))(okHandler)(c)
	require.NoError(t, err)
	return rec
}

func adminUserRows(id uint64, email string, isAdmin bool) *sqlmock.Rows {
	return sqlmock.NewRows(
		[]string{"id", "email", "password_hash", "is_admin", "created_at", "last_sign_in_at"},
	).AddRow(id, email, "$2a$10$hash", isAdmin, time.Now(), nil)
}

func TestRequireAdmin_NoIdentity(t *testing.T) {
	t.Parallel()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rec := runAdmin(t, db, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_DeletedUser(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM users WHERE id").
		WithArgs(uint64(9)).
		WillReturnError(sql.ErrNoRows)

	rec := runAdmin(t, db, &Identity{ID: 9, Email: "gone@example.com", IsAdmin: true})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequireAdmin_NotAdmin(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM users WHERE id").
		WithArgs(uint64(3)).
		WillReturnRows(adminUserRows(3, "user@example.com", false))

	// The token still claims admin; the persisted row wins.
	rec := runAdmin(t, db, &Identity{ID: 3, Email: "user@example.com", IsAdmin: true})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "admins only")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequireAdmin_AdminPasses(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM users WHERE id").
		WithArgs(uint64(1)).
		WillReturnRows(adminUserRows(1, "admin@example.com", true))

	rec := runAdmin(t, db, &Identity{ID: 1, Email: "admin@example.com", IsAdmin: false})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"is_admin":true`)
	require.NoError(t, mock.ExpectationsWereMet())
}

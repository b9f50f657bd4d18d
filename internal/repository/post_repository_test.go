package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func postRows(id, userID uint64, title, content string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "user_id", "title", "content", "created_at", "updated_at"}).
		AddRow(id, userID, title, content, now, now)
}

func TestPostRepo_Update_NonOwnerForbidden(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	repo := NewPostRepo(db)

	mock.ExpectQuery("SELECT id,user_id,title,content,created_at,updated_at FROM posts WHERE id=").
		WithArgs(uint64(7)).
		WillReturnRows(postRows(7, 1, "t", "c"))

	_, err := repo.Update(context.Background(), 7, 2, false, "new", "new")
	require.ErrorIs(t, err, ErrForbidden)
}

func TestPostRepo_Update_AdminBypassesOwnership(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	repo := NewPostRepo(db)

	mock.ExpectQuery("SELECT id,user_id,title,content,created_at,updated_at FROM posts WHERE id=").
		WithArgs(uint64(7)).
		WillReturnRows(postRows(7, 1, "t", "c"))
	mock.ExpectExec("UPDATE posts SET title=").
		WithArgs("new", "c", uint64(7)). // empty content patch keeps the stored value
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id,user_id,title,content,created_at,updated_at FROM posts WHERE id=").
		WithArgs(uint64(7)).
		WillReturnRows(postRows(7, 1, "new", "c"))

	p, err := repo.Update(context.Background(), 7, 2, true, "new", "")
	require.NoError(t, err)
	require.Equal(t, "new", p.Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepo_Delete_NotFound(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	repo := NewPostRepo(db)

	mock.ExpectQuery("SELECT id,user_id,title,content,created_at,updated_at FROM posts WHERE id=").
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "content", "created_at", "updated_at"}))

	err := repo.Delete(context.Background(), 99, 1, false)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPostRepo_List_NewestFirst(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	repo := NewPostRepo(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "content", "created_at", "updated_at", "email"}).
		AddRow(2, 1, "second", "c2", now, now, "a@x.com").
		AddRow(1, 1, "first", "c1", now.Add(-time.Hour), now.Add(-time.Hour), "a@x.com")
	mock.ExpectQuery("FROM posts p JOIN users u").WillReturnRows(rows)

	posts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, "second", posts[0].Title)
	require.Equal(t, "a@x.com", posts[0].AuthorEmail)
}

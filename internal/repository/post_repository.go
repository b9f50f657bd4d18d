package repository

// Post persistence. Posts are a global feed: anyone can read them, but
// a post is only mutable by its owner or an admin. The ownership rule
// lives here rather than in the handlers so every caller gets the same
// check against the same row.

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/crypto-tracker/internal/model"
)

type PostRepo struct{ DB *sql.DB }

func NewPostRepo(db *sql.DB) *PostRepo { return &PostRepo{DB: db} }

// Create inserts a post and returns the stored row with DB-assigned
// id and timestamps.
func (r *PostRepo) Create(ctx context.Context, userID uint64, title, content string) (model.Post, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO posts (user_id, title, content) VALUES (?,?,?)",
		userID, title, content)
	if err != nil {
		return model.Post{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Post{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a post by id. Returns ErrNotFound when absent.
func (r *PostRepo) GetByID(ctx context.Context, id uint64) (model.Post, error) {
	var p model.Post
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,title,content,created_at,updated_at FROM posts WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Post{}, ErrNotFound
	}
	return p, err
}

// List returns the global feed joined with author emails, newest first.
// The slice is never nil so an empty feed serializes as [].
func (r *PostRepo) List(ctx context.Context) ([]model.Post, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT p.id, p.user_id, p.title, p.content, p.created_at, p.updated_at, u.email
		 FROM posts p JOIN users u ON p.user_id = u.id
		 ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt, &p.AuthorEmail); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Update applies a partial patch to a post after checking ownership.
// callerAdmin bypasses the owner check so admins can moderate. Empty
// patch fields keep the stored value.
func (r *PostRepo) Update(ctx context.Context, id, callerID uint64, callerAdmin bool, title, content string) (model.Post, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Post{}, err
	}
	if p.UserID != callerID && !callerAdmin {
		return model.Post{}, ErrForbidden
	}
	if title == "" {
		title = p.Title
	}
	if content == "" {
		content = p.Content
	}
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE posts SET title=?, content=?, updated_at=NOW() WHERE id=?",
		title, content, id); err != nil {
		return model.Post{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a post after checking ownership. callerAdmin bypasses
// the owner check.
func (r *PostRepo) Delete(ctx context.Context, id, callerID uint64, callerAdmin bool) error {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.UserID != callerID && !callerAdmin {
		return ErrForbidden
	}
	_, err = r.DB.ExecContext(ctx, "DELETE FROM posts WHERE id=?", id)
	return err
}

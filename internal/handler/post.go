package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/crypto-tracker/internal/middleware"
	"github.com/iliyamo/crypto-tracker/internal/model"
	"github.com/iliyamo/crypto-tracker/internal/repository"
)

// PostHandler bundles dependencies for the community post endpoints.
// The user repository is needed because the moderation bypass on
// update/delete must check the persisted admin flag, never the token
// claim alone.
type PostHandler struct {
	Posts *repository.PostRepo
	Users *repository.UserRepo
}

func NewPostHandler(p *repository.PostRepo, u *repository.UserRepo) *PostHandler {
	if p == nil || u == nil {
		panic("nil repository passed to NewPostHandler")
	}
	return &PostHandler{Posts: p, Users: u}
}

// verifiedAdmin reports whether the caller is an admin according to the
// current users row. The DB is only consulted when the token asserts
// the admin claim; a claim minted before a demotion must not keep its
// moderation power for the rest of the token's TTL.
func (h *PostHandler) verifiedAdmin(c echo.Context, ident middleware.Identity) bool {
	if !ident.IsAdmin {
		return false
	}
	u, err := h.Users.GetByID(c.Request().Context(), ident.ID)
	return err == nil && u.IsAdmin
}

// Create handles POST /v1/posts. Title and content are required
// non-empty strings; the owner is always the caller.
func (h *PostHandler) Create(c echo.Context) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	title := strings.TrimSpace(body.Title)
	content := strings.TrimSpace(body.Content)
	if title == "" || content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and content required"})
	}

	p, err := h.Posts.Create(c.Request().Context(), ident.ID, title, content)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create post"})
	}
	return c.JSON(http.StatusCreated, postResp(p))
}

// List handles GET /v1/posts: the global feed, newest first, with
// author emails. Public route so guests can read before registering.
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.Posts.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch posts"})
	}
	out := make([]echo.Map, 0, len(posts))
	for _, p := range posts {
		out = append(out, postResp(p))
	}
	return c.JSON(http.StatusOK, out)
}

// Update handles PUT /v1/posts/:id. Only the owner or an admin may
// update; missing patch fields keep the stored value.
func (h *PostHandler) Update(c echo.Context) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	p, err := h.Posts.Update(c.Request().Context(), id, ident.ID, h.verifiedAdmin(c, ident),
		strings.TrimSpace(body.Title), strings.TrimSpace(body.Content))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your post"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update post"})
	}
	return c.JSON(http.StatusOK, postResp(p))
}

// Delete handles DELETE /v1/posts/:id with the same ownership rules as
// Update.
func (h *PostHandler) Delete(c echo.Context) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	if err := h.Posts.Delete(c.Request().Context(), id, ident.ID, h.verifiedAdmin(c, ident)); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your post"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete post"})
	}
	return c.NoContent(http.StatusNoContent)
}

func postResp(p model.Post) echo.Map {
	resp := echo.Map{
		"id":         p.ID,
		"user_id":    p.UserID,
		"title":      p.Title,
		"content":    p.Content,
		"created_at": p.CreatedAt,
		"updated_at": p.UpdatedAt,
	}
	if p.AuthorEmail != "" {
		resp["email"] = p.AuthorEmail
	}
	return resp
}

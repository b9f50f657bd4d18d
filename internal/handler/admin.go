package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/crypto-tracker/internal/config"
	"github.com/iliyamo/crypto-tracker/internal/middleware"
	"github.com/iliyamo/crypto-tracker/internal/repository"
)

// AdminHandler bundles dependencies for the admin dashboard endpoints.
// All of its routes are registered behind RequireAdmin, so the identity
// in context is always a current admin by the time these run.
type AdminHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Posts  *repository.PostRepo
	Stats  *repository.StatsRepo
	Tokens *repository.TokenRepo
}

func NewAdminHandler(cfg config.Config, u *repository.UserRepo, p *repository.PostRepo, s *repository.StatsRepo, t *repository.TokenRepo) *AdminHandler {
	if u == nil || p == nil || s == nil || t == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Cfg: cfg, Users: u, Posts: p, Stats: s, Tokens: t}
}

// GetStats handles GET /v1/admin/stats: three independent counts with
// no cross-count transaction. Dashboard numbers, not invariants.
func (h *AdminHandler) GetStats(c echo.Context) error {
	stats, err := h.Stats.Counts(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not compute stats"})
	}
	return c.JSON(http.StatusOK, stats)
}

// userSummary is the admin view of an account. The password hash is
// deliberately not part of this type.
type userSummary struct {
	ID           uint64     `json:"id"`
	Email        string     `json:"email"`
	IsAdmin      bool       `json:"is_admin"`
	CreatedAt    time.Time  `json:"created_at"`
	LastSignInAt *time.Time `json:"last_sign_in_at"`
}

// ListUsers handles GET /v1/admin/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch users"})
	}
	out := make([]userSummary, 0, len(users))
	for _, u := range users {
		out = append(out, userSummary{
			ID:           u.ID,
			Email:        u.Email,
			IsAdmin:      u.IsAdmin,
			CreatedAt:    u.CreatedAt,
			LastSignInAt: u.LastSignInAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// ListPosts handles GET /v1/admin/posts: the whole feed with author
// emails for moderation.
func (h *AdminHandler) ListPosts(c echo.Context) error {
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

// DeleteUser handles DELETE /v1/admin/users/:id. The cascade policy is
// explicit configuration: with ADMIN_DELETE_CASCADE on (the default)
// the schema's foreign keys remove the user's posts, watchlist entries
// and snapshots with the row; with it off, deleting an account that
// still owns rows is refused with 409 instead of orphaning them.
// Admins cannot delete their own account.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if id == ident.ID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot delete your own account"})
	}

	ctx := c.Request().Context()

	if !h.Cfg.DeleteCascade {
		owns, err := h.Users.HasDependents(ctx, id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not check user data"})
		}
		if owns {
			return c.JSON(http.StatusConflict, echo.Map{"error": "user still owns posts, watchlist items or snapshots"})
		}
	}

	if err := h.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete user"})
	}
	// Tokens of the deleted account are dead weight at best; revoke so
	// refresh attempts fail fast. Best effort after the delete.
	_ = h.Tokens.RevokeAllForUser(ctx, id)

	return c.NoContent(http.StatusNoContent)
}

// DeletePost handles DELETE /v1/admin/posts/:id: moderation delete, no
// ownership requirement beyond being an admin.
func (h *AdminHandler) DeletePost(c echo.Context) error {
	ident, err := middleware.CurrentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	if err := h.Posts.Delete(c.Request().Context(), id, ident.ID, true); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete post"})
	}
	return c.NoContent(http.StatusNoContent)
}

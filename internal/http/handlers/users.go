package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/avelarde/mailhub/internal/config"
	"github.com/avelarde/mailhub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type UsersStore interface {
	Create(ctx context.Context, req user.CreateUserRequest) (user.User, error)
	List(ctx context.Context) ([]user.User, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

type UsersHandler struct {
	repo    UsersStore
	timeout time.Duration
}

func NewUsersHandler(repo UsersStore, timeout time.Duration) *UsersHandler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &UsersHandler{repo: repo, timeout: timeout}
}

func (h *UsersHandler) ListUsers(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(h.timeout)

	defer cancel()

	users, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list users")

		return
	}

	ctx.JSON(http.StatusOK, users)
}

func (h *UsersHandler) CreateUser(ctx *gin.Context) {
	var req user.CreateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(h.timeout)

	defer cancel()

	u, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not create user")

		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"id":      u.ID,
		"message": "user created",
		"user":    u,
	})
}

func (h *UsersHandler) CreateRandomUsers(ctx *gin.Context) {
	var req user.RandomUsersRequest

	// body is optional; count defaults when omitted
	if ctx.Request.ContentLength > 0 {
		if !BindJSON(ctx, &req) {
			return
		}
	}

	count := user.DefaultRandomCount

	if req.Count != nil {
		count = *req.Count
	}

	cctx, cancel := config.WithTimeout(h.timeout)

	defer cancel()

	// one insert per sample on purpose: only alias persistence is batched
	users := make([]user.User, 0, count)

	for i := 0; i < count; i++ {
		u, err := h.repo.Create(cctx, user.NewRandomRequest())

		if err != nil {
			RespondInternal(ctx, "Could not generate random users")

			return
		}

		users = append(users, u)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("generated %d random users", len(users)),
		"users":   users,
	})
}

func (h *UsersHandler) DeleteUser(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	if err != nil {
		RespondBadRequest(ctx, "user id must be an integer", nil)

		return
	}

	cctx, cancel := config.WithTimeout(h.timeout)

	defer cancel()

	// idempotent: unknown ids are still reported as deleted
	if err := h.repo.Delete(cctx, id); err != nil {
		RespondInternal(ctx, "Could not delete user")

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

func (h *UsersHandler) DeleteAllUsers(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(h.timeout)

	defer cancel()

	if err := h.repo.DeleteAll(cctx); err != nil {
		RespondInternal(ctx, "Could not delete users")

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "all users deleted"})
}

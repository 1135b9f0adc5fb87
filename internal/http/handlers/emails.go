package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/avelarde/mailhub/internal/batch"
	"github.com/avelarde/mailhub/internal/config"
	"github.com/avelarde/mailhub/internal/domain/email"
	"github.com/avelarde/mailhub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type EmailsStore interface {
	List(ctx context.Context) ([]email.Alias, error)
	DeleteAll(ctx context.Context) error
}

type UsersLister interface {
	List(ctx context.Context) ([]user.User, error)
}

type Persister interface {
	PersistBulk(ctx context.Context, records []email.Record) batch.Result
}

type EmailsHandler struct {
	users       UsersLister
	emails      EmailsStore
	coordinator Persister
	timeout     time.Duration
}

func NewEmailsHandler(users UsersLister, emails EmailsStore, coordinator Persister, timeout time.Duration) *EmailsHandler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &EmailsHandler{
		users:       users,
		emails:      emails,
		coordinator: coordinator,
		timeout:     timeout,
	}
}

// GenerateEmails derives 8 alias variants for every user and persists the
// whole flattened batch in one coordinator call.
func (h *EmailsHandler) GenerateEmails(ctx *gin.Context) {
	start := time.Now()

	cctx, cancel := config.WithTimeout(h.timeout)

	defer cancel()

	users, err := h.users.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not load users")

		return
	}

	if len(users) == 0 {
		RespondBadRequest(ctx, "no users to generate emails for", nil)

		return
	}

	records := email.RecordsForUsers(users)

	res := h.coordinator.PersistBulk(cctx, records)

	persisted := records

	if res.FellBack && len(res.Failed) > 0 {
		failed := make(map[email.Record]struct{}, len(res.Failed))

		for _, rec := range res.Failed {
			failed[rec] = struct{}{}
		}

		persisted = make([]email.Record, 0, res.Persisted)

		for _, rec := range records {
			if _, skip := failed[rec]; !skip {
				persisted = append(persisted, rec)
			}
		}
	}

	elapsed := time.Since(start).Seconds()

	ctx.JSON(http.StatusOK, gin.H{
		"message":        fmt.Sprintf("generated %d email aliases in %.2f seconds", len(persisted), elapsed),
		"emails":         persisted,
		"elapsedSeconds": elapsed,
	})
}

func (h *EmailsHandler) ListEmails(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(h.timeout)

	defer cancel()

	aliases, err := h.emails.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list emails")

		return
	}

	ctx.JSON(http.StatusOK, aliases)
}

func (h *EmailsHandler) DeleteAllEmails(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(h.timeout)

	defer cancel()

	if err := h.emails.DeleteAll(cctx); err != nil {
		RespondInternal(ctx, "Could not delete emails")

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "all emails deleted"})
}

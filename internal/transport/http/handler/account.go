package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"microblog/internal/app"
	"microblog/internal/model"
)

// AuthorStats reads the per-author message counters maintained by the
// stats worker.
type AuthorStats interface {
	AuthorCount(ctx context.Context, authorID uint) (int64, error)
}

type AccountHandler struct {
	accounts *app.AccountService
	stats    AuthorStats
}

func NewAccountHandler(accounts *app.AccountService, stats AuthorStats) *AccountHandler {
	return &AccountHandler{accounts: accounts, stats: stats}
}

// Register responds 200 with the persisted account (id included) or
// 400 when validation or the uniqueness check declines it.
func (h *AccountHandler) Register(c *gin.Context) {
	var candidate model.Account
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	created := h.accounts.Register(candidate)
	if created == nil {
		c.Status(http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, created)
}

// Login responds 200 with the stored account on an exact
// username/password match, 401 otherwise.
func (h *AccountHandler) Login(c *gin.Context) {
	var candidate model.Account
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	account := h.accounts.Authenticate(candidate)
	if account == nil {
		c.Status(http.StatusUnauthorized)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.accounts.ListAll())
}

func (h *AccountHandler) Stats(c *gin.Context) {
	accountID, ok := pathID(c, "account_id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	count, err := h.stats.AuthorCount(c.Request.Context(), accountID)
	if err != nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"account_id":    accountID,
		"message_count": count,
	})
}

func pathID(c *gin.Context, name string) (uint, bool) {
	raw, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(raw), true
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"courseplatform/internal/domain"
	"courseplatform/internal/usecase"
)

type UserHandler struct {
	auth   *usecase.AuthUseCase
	ledger *usecase.LedgerUseCase
}

func NewUserHandler(auth *usecase.AuthUseCase, ledger *usecase.LedgerUseCase) *UserHandler {
	return &UserHandler{auth: auth, ledger: ledger}
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.auth.GetUser(c, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	balance, err := h.ledger.Balance(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"balance": balance,
	})
}

// List — только для сотрудников.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.auth.ListUsers(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, users)
}

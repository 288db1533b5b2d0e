package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"courseplatform/internal/domain"
	"courseplatform/internal/usecase"
)

type PaymentHandler struct {
	enrollment *usecase.EnrollmentUseCase
	ledger     *usecase.LedgerUseCase
}

func NewPaymentHandler(enrollment *usecase.EnrollmentUseCase, ledger *usecase.LedgerUseCase) *PaymentHandler {
	return &PaymentHandler{enrollment: enrollment, ledger: ledger}
}

// Pay — покупка доступа к курсу: POST /courses/:id/pay.
// 201 с подпиской при успехе, 400 с причиной при отказе.
func (h *PaymentHandler) Pay(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := courseID(c)
	if !ok {
		return
	}

	result, err := h.enrollment.Purchase(c, userID, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCourseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		case errors.Is(err, domain.ErrCourseUnavailable):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Course is not available"})
		case errors.Is(err, domain.ErrAlreadySubscribed):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Already subscribed to this course"})
		case errors.Is(err, domain.ErrAlreadyPurchased):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Course already purchased"})
		case errors.Is(err, domain.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient balance"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *PaymentHandler) GetBalance(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	amount, err := h.ledger.Balance(c, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "balance": amount})
}

type amountReq struct {
	Amount int `json:"amount" binding:"required"`
}

func (h *PaymentHandler) Increase(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var req amountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	balance, err := h.ledger.Credit(c, userID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Balance increased", "balance": balance})
}

func (h *PaymentHandler) Decrease(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var req amountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok, err := h.ledger.Debit(c, userID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient balance"})
		return
	}

	balance, err := h.ledger.Balance(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "Balance decreased", "balance": balance})
}

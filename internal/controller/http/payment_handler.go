package http

import (
	"errors"
	"io"
	"net/http"

	"openlove/internal/usecase"
	"openlove/pkg/logger"
	"openlove/pkg/plan"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentUseCase usecase.PaymentUseCase
	logger         *logger.Logger
}

func NewPaymentHandler(paymentUseCase usecase.PaymentUseCase, logger *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
		logger:         logger,
	}
}

type checkoutRequest struct {
	Tier string `json:"tier" binding:"required"`
}

// CreateStripeCheckout godoc
// @Summary      Start a Stripe checkout
// @Description  Returns a hosted checkout URL for the chosen plan tier
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body checkoutRequest true "Plan tier (gold, diamond, diamond_annual)"
// @Success      200  {object}  usecase.CheckoutResult
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /payments/stripe/checkout [post]
func (h *PaymentHandler) CreateStripeCheckout(c *gin.Context) {
	userID := c.GetString("user_id")

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.paymentUseCase.CreateStripeCheckout(userID, plan.Tier(req.Tier))
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidTier) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to create stripe checkout: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// StripeWebhook godoc
// @Summary      Stripe webhook endpoint
// @Description  Verifies the event signature and activates subscriptions on checkout completion
// @Tags         payments
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /payments/stripe/webhook [post]
func (h *PaymentHandler) StripeWebhook(c *gin.Context) {
	const maxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to read body"})
		return
	}

	if err := h.paymentUseCase.HandleStripeWebhook(payload, c.GetHeader("Stripe-Signature")); err != nil {
		h.logger.Error("Stripe webhook rejected: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// CreatePixCharge godoc
// @Summary      Start a PIX payment
// @Description  Returns a PIX QR code for the chosen plan tier
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body checkoutRequest true "Plan tier (gold, diamond, diamond_annual)"
// @Success      200  {object}  usecase.CheckoutResult
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /payments/pix/charge [post]
func (h *PaymentHandler) CreatePixCharge(c *gin.Context) {
	userID := c.GetString("user_id")

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.paymentUseCase.CreatePixCharge(userID, plan.Tier(req.Tier))
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidTier) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to create pix charge: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pix charge"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ConfirmPixCharge godoc
// @Summary      Confirm a PIX payment
// @Description  Polls the provider for a pending charge and activates the plan when paid
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        charge_id path string true "Charge ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /payments/pix/{charge_id}/confirm [post]
func (h *PaymentHandler) ConfirmPixCharge(c *gin.Context) {
	userID := c.GetString("user_id")
	chargeID := c.Param("charge_id")

	paid, err := h.paymentUseCase.ConfirmPixCharge(userID, chargeID)
	if err != nil {
		if errors.Is(err, usecase.ErrNoActiveSubscription) {
			c.JSON(http.StatusNotFound, gin.H{"error": "charge not found"})
			return
		}
		h.logger.Error("Failed to confirm pix charge: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm charge"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"paid": paid})
}

// PixWebhook godoc
// @Summary      AbacatePay webhook endpoint
// @Tags         payments
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /payments/pix/webhook [post]
func (h *PaymentHandler) PixWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to read body"})
		return
	}

	if err := h.paymentUseCase.HandlePixWebhook(payload, c.GetHeader("X-Webhook-Signature")); err != nil {
		h.logger.Error("Pix webhook rejected: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// CancelSubscription godoc
// @Summary      Cancel the active subscription
// @Description  Access runs until the end of the paid period
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /payments/subscription [delete]
func (h *PaymentHandler) CancelSubscription(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.paymentUseCase.CancelSubscription(userID); err != nil {
		if errors.Is(err, usecase.ErrNoActiveSubscription) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to cancel subscription: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription canceled"})
}

// GetSubscription godoc
// @Summary      Get the active subscription
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.Subscription
// @Failure      404  {object}  map[string]string
// @Router       /payments/subscription [get]
func (h *PaymentHandler) GetSubscription(c *gin.Context) {
	userID := c.GetString("user_id")

	sub, err := h.paymentUseCase.GetSubscription(userID)
	if err != nil {
		if errors.Is(err, usecase.ErrNoActiveSubscription) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to get subscription: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscription"})
		return
	}

	c.JSON(http.StatusOK, sub)
}

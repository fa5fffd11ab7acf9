package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"auction-service/internal/models"
	"auction-service/internal/payments"
	"auction-service/internal/repositories"
)

// PaymentHandler drives the gateway round trip: session creation, then
// the success callback with validation.
type PaymentHandler struct {
	gateway     payments.Gateway
	paymentRepo repositories.PaymentRepository
	redirectURL string
	baseURL     string
}

// NewPaymentHandler builds a PaymentHandler. baseURL is this service's
// externally reachable address for gateway callbacks.
func NewPaymentHandler(gateway payments.Gateway, paymentRepo repositories.PaymentRepository, redirectURL, baseURL string) *PaymentHandler {
	return &PaymentHandler{
		gateway:     gateway,
		paymentRepo: paymentRepo,
		redirectURL: redirectURL,
		baseURL:     baseURL,
	}
}

// CreateSession assigns a transaction id, opens a gateway session and
// stores the pending payment.
func (h *PaymentHandler) CreateSession(c *gin.Context) {
	var payment models.Payment
	if err := c.ShouldBindJSON(&payment); err != nil || payment.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email is required"})
		return
	}

	payment.TrxID = primitive.NewObjectID().Hex()

	gatewayURL, err := h.gateway.CreateSession(c.Request.Context(), payments.SessionRequest{
		TrxID:      payment.TrxID,
		Amount:     payment.PaymentPrice,
		Email:      payment.Email,
		SuccessURL: h.baseURL + "/success-payment",
		FailURL:    h.redirectURL,
		CancelURL:  h.redirectURL,
		IPNURL:     h.baseURL + "/ipn-success-payment",
	})
	if err != nil {
		logrus.WithError(err).Error("failed to create payment session")
		c.JSON(http.StatusBadGateway, gin.H{"message": "Failed to create payment session"})
		return
	}

	if _, err := h.paymentRepo.Create(c.Request.Context(), payment); err != nil {
		logrus.WithError(err).Error("failed to store payment")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error!"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"gatewayURL": gatewayURL})
}

// SuccessCallback validates the gateway's val_id, marks the transaction
// succeeded and redirects the customer to the dashboard.
func (h *PaymentHandler) SuccessCallback(c *gin.Context) {
	valID := c.PostForm("val_id")
	trxID := c.PostForm("tran_id")
	if valID == "" || trxID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payment"})
		return
	}

	if err := h.gateway.Validate(c.Request.Context(), valID); err != nil {
		if errors.Is(err, payments.ErrInvalidPayment) {
			c.JSON(http.StatusOK, gin.H{"message": "invalid payment"})
			return
		}
		logrus.WithError(err).Error("payment validation failed")
		c.JSON(http.StatusBadGateway, gin.H{"message": "payment validation failed"})
		return
	}

	if err := h.paymentRepo.MarkSucceeded(c.Request.Context(), trxID); err != nil {
		logrus.WithError(err).WithField("trxid", trxID).Error("failed to mark payment succeeded")
	}

	c.Redirect(http.StatusFound, h.redirectURL)
}

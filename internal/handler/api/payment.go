package api

import (
	"errors"
	"net/http"

	reqdto "mindvale-server/internal/handler/dto/request"
	resdto "mindvale-server/internal/handler/dto/response"
	"mindvale-server/internal/handler/middleware"
	"mindvale-server/internal/pkg/errs"
	"mindvale-server/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentCommands commands.PaymentCommands
}

func NewPaymentHandler(paymentCommands commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{
		paymentCommands: paymentCommands,
	}
}

// @Summary Create payment order
// @Description Create a gateway order for a pending booking
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateOrderRequest true "Order request"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /payments/create-order [post]
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateOrderRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	order, err := h.paymentCommands.CreateOrder(c.Request.Context(), userID, req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, errs.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not authorized for this booking",
			})
		case errors.Is(err, errs.ErrBookingCancelled):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Booking is cancelled",
			})
		case errors.Is(err, errs.ErrAmountMismatch):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Amount does not match booking price",
			})
		case errors.Is(err, errs.ErrGatewayUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Payment gateway is not configured",
			})
		case errors.Is(err, errs.ErrGatewayFailure):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment gateway request failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromPaymentOrder(order))
}

// @Summary Verify payment
// @Description Verify the gateway checkout signature and confirm the booking
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.VerifyPaymentRequest true "Verification request"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /payments/verify-payment [post]
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.VerifyPaymentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.paymentCommands.Verify(c.Request.Context(), userID, req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, errs.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not authorized for this booking",
			})
		case errors.Is(err, errs.ErrSignatureMismatch):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Payment signature verification failed",
			})
		case errors.Is(err, errs.ErrBookingCancelled):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Booking is cancelled",
			})
		case errors.Is(err, errs.ErrValidation):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Booking is already paid",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/orderform/internal/domain/errors"
	"github.com/polkiloo/orderform/internal/domain/model"
	"github.com/polkiloo/orderform/internal/server/http/dto"
)

const (
	msgOrderSent         = "Commande envoyée avec succès"
	msgOrderInvalid      = "Données de commande invalides"
	msgOrderUnauthorized = "Accès non autorisé ou expiré"
	msgOrderRateLimited  = "Trop de commandes, veuillez réessayer plus tard"
	msgOrderPartial      = "Confirmation envoyée au client mais la notification à l'entreprise a échoué"
	msgOrderFailure      = "Erreur lors de l'envoi de la commande"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Send handles POST /send-order.
func (h *OrderHandler) Send(c *gin.Context) {
	var order model.OrderSubmission
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, dto.OrderResponse{
			Error:      msgOrderInvalid,
			Violations: []domainErrors.Violation{{Field: "body", Reason: "must be a valid JSON order"}},
		})
		return
	}

	if _, err := h.facade.SubmitOrder(c.Request.Context(), &order, c.ClientIP()); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OrderResponse{Success: true, Message: msgOrderSent})
}

func (h *OrderHandler) fail(c *gin.Context, err error) {
	var (
		validation *domainErrors.ValidationError
		limited    *domainErrors.RateLimitError
		delivery   *domainErrors.DeliveryError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, dto.OrderResponse{Error: msgOrderInvalid, Violations: validation.Violations})
	case errors.Is(err, domainErrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.OrderResponse{Error: msgOrderUnauthorized})
	case errors.As(err, &limited):
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(limited.RetryAfter.Seconds()))))
		c.JSON(http.StatusTooManyRequests, dto.OrderResponse{Error: msgOrderRateLimited})
	case errors.As(err, &delivery) && delivery.Partial():
		internalError(c, http.StatusInternalServerError, dto.OrderResponse{Error: msgOrderPartial}, err)
	default:
		internalError(c, http.StatusInternalServerError, dto.OrderResponse{Error: msgOrderFailure}, err)
	}
}

// Products handles GET /products.
func (h *OrderHandler) Products(c *gin.Context) {
	c.JSON(http.StatusOK, h.facade.Products())
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/orderform/internal/domain/errors"
	"github.com/polkiloo/orderform/internal/server/http/dto"
)

const (
	msgCodeMissing   = "Code manquant"
	msgCodeInvalid   = "Code invalide ou déjà utilisé"
	msgCodeValidated = "Code validé avec succès"
	msgCodeFailure   = "Erreur lors de la validation du code"
)

// AccessCodeHandler exchanges access codes for bearer tokens.
type AccessCodeHandler struct {
	facade AccessCodeFacade
}

// NewAccessCodeHandler constructs AccessCodeHandler.
func NewAccessCodeHandler(facade AccessCodeFacade) *AccessCodeHandler {
	return &AccessCodeHandler{facade: facade}
}

// Validate handles POST /validate-access-code.
func (h *AccessCodeHandler) Validate(c *gin.Context) {
	var req dto.ValidateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		c.JSON(http.StatusBadRequest, dto.ValidateCodeResponse{Message: msgCodeMissing})
		return
	}

	token, _, err := h.facade.ValidateAccessCode(c.Request.Context(), req.Code)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidAccessCode) {
			c.JSON(http.StatusOK, dto.ValidateCodeResponse{Message: msgCodeInvalid})
			return
		}
		internalError(c, http.StatusInternalServerError, dto.ValidateCodeResponse{Message: msgCodeFailure}, err)
		return
	}

	c.JSON(http.StatusOK, dto.ValidateCodeResponse{Valid: true, Message: msgCodeValidated, AccessToken: token})
}

package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/orderform/internal/domain/errors"
	"github.com/polkiloo/orderform/internal/domain/model"
	"github.com/polkiloo/orderform/internal/server/http/dto"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportFilename  = "access-codes.xlsx"

	msgCodeGenerated  = "Code généré et envoyé par email"
	msgCodeMailFailed = "Code généré mais l'envoi par email a échoué"
)

// AdminHandler serves operator login and access code management.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	token, err := h.facade.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Identifiants invalides"})
		default:
			internalError(c, http.StatusInternalServerError, dto.ErrorResponse{Error: "Erreur interne"}, err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}

// ListCodes handles GET /api/admin/access-codes.
func (h *AdminHandler) ListCodes(c *gin.Context) {
	codes, err := h.facade.AccessCodes(c.Request.Context())
	if err != nil {
		internalError(c, http.StatusInternalServerError, dto.ErrorResponse{Error: "Erreur interne"}, err)
		return
	}

	response := make([]dto.AccessCodeResponse, 0, len(codes))
	for _, code := range codes {
		response = append(response, toCodeResponse(code.AccessCode, code.Status))
	}
	c.JSON(http.StatusOK, response)
}

// CreateCode handles POST /api/admin/access-codes.
func (h *AdminHandler) CreateCode(c *gin.Context) {
	var req dto.CreateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Requête invalide"})
		return
	}

	code, err := h.facade.CreateAccessCode(c.Request.Context(), req.CustomValue(), req.Hours())
	if err != nil {
		var validation *domainErrors.ValidationError
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCodeFormat), errors.As(err, &validation):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "Ce code existe déjà"})
		default:
			internalError(c, http.StatusInternalServerError, dto.ErrorResponse{Error: "Erreur interne"}, err)
		}
		return
	}

	c.JSON(http.StatusCreated, toCodeResponse(*code, model.AccessCodeStatusActive))
}

// GenerateCode handles POST /api/admin/access-codes/generate.
func (h *AdminHandler) GenerateCode(c *gin.Context) {
	code, err := h.facade.GenerateAccessCode(c.Request.Context())
	if err != nil {
		if code == nil {
			internalError(c, http.StatusInternalServerError, dto.ErrorResponse{Error: "Erreur interne"}, err)
			return
		}
		internalError(c, http.StatusInternalServerError, dto.GenerateCodeResponse{
			Error: msgCodeMailFailed,
			Code:  toCodeResponse(*code, model.AccessCodeStatusActive),
		}, err)
		return
	}

	c.JSON(http.StatusCreated, dto.GenerateCodeResponse{
		Success: true,
		Message: msgCodeGenerated,
		Code:    toCodeResponse(*code, model.AccessCodeStatusActive),
	})
}

// DeactivateCode handles POST /api/admin/access-codes/:code/deactivate.
func (h *AdminHandler) DeactivateCode(c *gin.Context) {
	h.mutate(c, h.facade.DeactivateAccessCode)
}

// DeleteCode handles DELETE /api/admin/access-codes/:code.
func (h *AdminHandler) DeleteCode(c *gin.Context) {
	h.mutate(c, h.facade.DeleteAccessCode)
}

func (h *AdminHandler) mutate(c *gin.Context, op func(ctx context.Context, code string) error) {
	if err := op(c.Request.Context(), c.Param("code")); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Code introuvable"})
			return
		}
		internalError(c, http.StatusInternalServerError, dto.ErrorResponse{Error: "Erreur interne"}, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportCodes handles GET /api/admin/access-codes/export.
func (h *AdminHandler) ExportCodes(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.facade.ExportAccessCodes(c.Request.Context(), &buf); err != nil {
		internalError(c, http.StatusInternalServerError, dto.ErrorResponse{Error: "Erreur interne"}, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func toCodeResponse(code model.AccessCode, status model.AccessCodeStatus) dto.AccessCodeResponse {
	return dto.AccessCodeResponse{
		ID:        code.ID,
		Code:      code.Code,
		Status:    string(status),
		CreatedAt: code.CreatedAt,
		ExpiresAt: code.ExpiresAt,
		UsedAt:    code.UsedAt,
		IsUsed:    code.IsUsed,
		IsActive:  code.IsActive,
	}
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/orderform/internal/domain/errors"
	"github.com/polkiloo/orderform/internal/domain/model"
)

// AdminContextKey is a gin context key for the authenticated operator.
const AdminContextKey = "admin"

// AdminAuthorizer resolves a session token to an operator.
type AdminAuthorizer interface {
	AuthorizeAdmin(ctx context.Context, token string) (*model.Admin, error)
}

// AdminRequired ensures the caller holds an admin session before accessing handler.
func AdminRequired(authz AdminAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		admin, err := authz.AuthorizeAdmin(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, domainErrors.ErrUnauthorized):
				c.AbortWithStatus(http.StatusUnauthorized)
			case errors.Is(err, domainErrors.ErrForbidden):
				c.AbortWithStatus(http.StatusForbidden)
			default:
				_ = c.Error(err)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
			return
		}

		c.Set(AdminContextKey, admin)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/ink-agenda/internal/auth"
	"github.com/BruksfildServices01/ink-agenda/internal/httperr"
)

const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
)

// AuthMiddleware resolves the bearer token with the configured strategy
// (local JWT or identity provider).
func AuthMiddleware(resolver auth.TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Token de acesso não informado.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Formato do token inválido.")
			return
		}

		caller, err := resolver.Resolve(c.Request.Context(), strings.TrimSpace(parts[1]))
		switch {
		case errors.Is(err, auth.ErrInvalidToken):
			httperr.Abort(c, http.StatusForbidden, "invalid_token", "Token inválido ou expirado.")
			return
		case err != nil:
			logrus.WithError(err).Error("token verification failed")
			httperr.Abort(c, http.StatusInternalServerError, "auth_unavailable", "Erro ao validar autenticação.")
			return
		}

		c.Set(ContextUserID, caller.UserID)
		c.Set(ContextUserEmail, caller.Email)

		c.Next()
	}
}

// UserID returns the authenticated caller id.
func UserID(c *gin.Context) uint {
	return c.MustGet(ContextUserID).(uint)
}

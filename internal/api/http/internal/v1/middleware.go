package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/vibe-gaming/geodirectory/pkg/logger"
)

const (
	authorizationHeader = "Authorization"
	adminCtx            = "adminSubject"
)

// adminIdentityMiddleware guards write routes. It lets everything through when auth is disabled.
func (h *Handler) adminIdentityMiddleware(c *gin.Context) {
	if !h.config.Auth.Enabled {
		c.Next()
		return
	}

	subject, err := h.parseAuthHeader(c)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			logger.Warn("parse auth header failed", zap.Error(err))
		}
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		return
	}

	c.Set(adminCtx, subject)
	c.Next()
}

func (h *Handler) parseAuthHeader(c *gin.Context) (string, error) {
	header := c.GetHeader(authorizationHeader)
	if header == "" {
		return "", errors.New("empty auth header")
	}

	headerParts := strings.Split(header, " ")
	if len(headerParts) != 2 || headerParts[0] != "Bearer" {
		return "", errors.New("invalid auth header")
	}

	if len(headerParts[1]) == 0 {
		return "", errors.New("token is empty")
	}

	if h.tokenManager == nil {
		return "", errors.New("token manager is not configured")
	}

	return h.tokenManager.Parse(headerParts[1])
}

package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/sustentabag/business-dashboard/internal/shared/errors"

	"github.com/sustentabag/business-dashboard/internal/domains/users/domain"
	"github.com/sustentabag/business-dashboard/internal/domains/users/ports"
)

const sessionContextKey = "dashboard.session"

// RequireSession authenticates the bearer token on every request and stores
// the resolved session in the gin context.
func RequireSession(service ports.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("missing bearer token"))
			c.Abort()
			return
		}
		session, err := service.Authenticate(c.Request.Context(), token)
		if err != nil {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail(err.Error()))
			c.Abort()
			return
		}
		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// SessionFrom returns the authenticated session, or nil outside RequireSession.
func SessionFrom(c *gin.Context) *domain.Session {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	session, ok := value.(*domain.Session)
	if !ok {
		return nil
	}
	return session
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

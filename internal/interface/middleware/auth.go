package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/coursehub-user-service/internal/application"
	"github.com/oksasatya/coursehub-user-service/internal/domain/entity"
	"github.com/oksasatya/coursehub-user-service/pkg/response"
)

const CtxUserKey = "user"

// Authorizer resolves a bearer token to the user it was issued for.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (entity.AuthenticatedUser, error)
}

// Authenticate reads the Authorization: Bearer header and stores the resolved
// user in the Gin context under CtxUserKey.
//
//	missing or malformed header -> 401
//	bad signature or expired    -> 403
//	user no longer exists       -> 404
func Authenticate(auth Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "Access token required", nil)
			return
		}
		user, err := auth.Authorize(c.Request.Context(), token)
		switch {
		case err == nil:
		case errors.Is(err, application.ErrInvalidToken):
			response.Fail(c, http.StatusForbidden, "Invalid or expired token", nil)
			return
		case errors.Is(err, application.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, "User not found", nil)
			return
		default:
			_ = c.Error(err)
			response.Fail(c, http.StatusInternalServerError, "Server error", nil)
			return
		}
		c.Set(CtxUserKey, user)
		c.Next()
	}
}

// RequireCapability rejects authenticated users whose role lacks capability.
// It must run after Authenticate.
func RequireCapability(capability entity.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "Access token required", nil)
			return
		}
		if !user.Can(capability) {
			response.Fail(c, http.StatusForbidden, "Insufficient permissions", nil)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by Authenticate.
func CurrentUser(c *gin.Context) (entity.AuthenticatedUser, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return entity.AuthenticatedUser{}, false
	}
	u, ok := v.(entity.AuthenticatedUser)
	return u, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

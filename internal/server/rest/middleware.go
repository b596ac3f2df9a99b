package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/j-prt/rating-app-backend/internal/server/auth"
	"github.com/j-prt/rating-app-backend/internal/server/models"
)

const userContextKey = "user"

// requireAuth checks the Authorization header and stores the resolved user
// in the gin context. The token signature and expiry are verified on every
// request; only the email→user lookup is memoized in authCache, so an
// expired token is rejected no matter what the cache holds.
func (s *RestServer) requireAuth(c *gin.Context) {

	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		c.Header("WWW-Authenticate", "Bearer")
		abortDetail(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	email, err := auth.GetEmailFromToken(token, s.jwtSecret)
	if err != nil {
		c.Header("WWW-Authenticate", "Bearer")
		abortDetail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	if cached, found := s.authCache.Get(email); found {
		c.Set(userContextKey, cached.(*models.User))
		c.Next()
		return
	}

	user, err := s.users.Authenticate(c.Request.Context(), token)
	if err != nil {
		c.Header("WWW-Authenticate", "Bearer")
		abortDetail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	s.authCache.Set(email, user, cache.DefaultExpiration)

	c.Set(userContextKey, user)
	c.Next()
}

// currentUser returns the user placed in the context by requireAuth.
func currentUser(c *gin.Context) *models.User {
	u, _ := c.Get(userContextKey)
	return u.(*models.User)
}

package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/livecanvas/dashboard-backend/internal/auth/domain"
)

const (
	CtxIdentity = "auth_identity"
	CtxUserID   = "user_id"
)

// SetIdentity stores the verified identity on the request.
func SetIdentity(c *gin.Context, id *domain.Identity) {
	c.Set(CtxIdentity, id)
	c.Set(CtxUserID, id.UserID)
}

// IdentityFrom returns the identity set by the session middleware, if any.
func IdentityFrom(c *gin.Context) (*domain.Identity, bool) {
	v, ok := c.Get(CtxIdentity)
	if !ok {
		return nil, false
	}
	id, ok := v.(*domain.Identity)
	return id, ok && id != nil
}

// UserID is empty for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}

package middleware

import (
	"github.com/gin-gonic/gin"
)

// Role constants to avoid string typos
const (
	RoleOrganizer = "organizer"
	RoleStudent   = "student"
)

// SessionContext carries the authenticated caller through a request.
// It is resolved once by AuthMiddleware and read everywhere else; no
// handler re-parses the token or reaches into raw claims.
type SessionContext struct {
	UserID uint
	Name   string
	Email  string
	Role   string
}

// CanManageEvents returns true if the caller may create or modify events.
func (sc *SessionContext) CanManageEvents() bool {
	return sc.Role == RoleOrganizer
}

// GetSession extracts the session context set by AuthMiddleware.
func GetSession(c *gin.Context) (SessionContext, bool) {
	val, exists := c.Get("session_context")
	if !exists {
		return SessionContext{}, false
	}
	sc, ok := val.(SessionContext)
	return sc, ok
}

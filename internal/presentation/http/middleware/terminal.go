package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/till-api/internal/presentation/http/dto/response"
	"github.com/sangkips/till-api/pkg/apperror"
)

const (
	// TerminalIDHeader names the till a request comes from
	TerminalIDHeader = "X-Terminal-ID"
	maxTerminalIDLen = 64
)

// TerminalMiddleware requires the X-Terminal-ID header and puts the
// terminal ID in the context
func TerminalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		terminalID := c.GetHeader(TerminalIDHeader)
		if terminalID == "" {
			response.Error(c, apperror.ErrMissingTerminal)
			c.Abort()
			return
		}
		if !ValidTerminalID(terminalID) {
			response.BadRequest(c, "Invalid terminal ID")
			c.Abort()
			return
		}

		c.Set("terminal_id", terminalID)
		c.Next()
	}
}

// GetTerminalID retrieves the terminal ID from gin context
func GetTerminalID(c *gin.Context) string {
	terminalID, exists := c.Get("terminal_id")
	if !exists {
		return ""
	}
	id, _ := terminalID.(string)
	return id
}

// ValidTerminalID reports whether id is a usable terminal ID
func ValidTerminalID(id string) bool {
	if len(id) > maxTerminalIDLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CapabilityConfig holds configuration for capability middleware
type CapabilityConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// OnDenied is called when access is denied (optional)
	OnDenied func(c *gin.Context, required []string)
}

// RequireCapability creates middleware that requires a specific capability
func RequireCapability(capability string) gin.HandlerFunc {
	return RequireAnyCapability(capability)
}

// RequireAnyCapability creates middleware that requires any of the
// specified capabilities
func RequireAnyCapability(capabilities ...string) gin.HandlerFunc {
	return RequireAnyCapabilityWithConfig(CapabilityConfig{}, capabilities...)
}

// RequireAnyCapabilityWithConfig creates capability middleware with custom config
func RequireAnyCapabilityWithConfig(cfg CapabilityConfig, capabilities ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handleCapabilityDenied(c, cfg, capabilities, "No authentication claims found")
			return
		}

		if !claims.HasAnyCapability(capabilities...) {
			handleCapabilityDenied(c, cfg, capabilities, "User lacks required capability")
			return
		}

		if cfg.Logger != nil {
			cfg.Logger.Debug("Capability check passed",
				zap.String("user_id", claims.UserID),
				zap.Strings("required_any", capabilities),
			)
		}

		c.Next()
	}
}

// RequireRole creates middleware that requires an exact role
func RequireRole(role string) gin.HandlerFunc {
	return RequireRoleWithConfig(role, CapabilityConfig{})
}

// RequireRoleWithConfig creates role middleware with custom config
func RequireRoleWithConfig(role string, cfg CapabilityConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handleCapabilityDenied(c, cfg, []string{"role:" + role}, "No authentication claims found")
			return
		}

		if claims.Role != role {
			handleCapabilityDenied(c, cfg, []string{"role:" + role}, "User lacks required role")
			return
		}

		c.Next()
	}
}

// HasCapability is a helper function to check a capability in handlers
func HasCapability(c *gin.Context, capability string) bool {
	claims := GetJWTClaims(c)
	if claims == nil {
		return false
	}
	return claims.HasCapability(capability)
}

// handleCapabilityDenied handles access denied scenarios
func handleCapabilityDenied(c *gin.Context, cfg CapabilityConfig, required []string, reason string) {
	if cfg.OnDenied != nil {
		cfg.OnDenied(c, required)
		return
	}

	if cfg.Logger != nil {
		claims := GetJWTClaims(c)
		userID := ""
		userCaps := []string{}
		if claims != nil {
			userID = claims.UserID
			userCaps = claims.Capabilities
		}

		cfg.Logger.Warn("Access denied",
			zap.String("reason", reason),
			zap.String("user_id", userID),
			zap.Strings("required", required),
			zap.Strings("user_capabilities", userCaps),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ERR_FORBIDDEN",
			"message": "Access denied: insufficient permissions",
		},
	})
}

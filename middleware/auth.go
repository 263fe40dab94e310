package middleware

import (
	"net/http"
	"strings"

	"poke-splendor/utils"

	"github.com/gin-gonic/gin"
)

const ContextUserID = "userID"

// AuthMiddleware 校验 Authorization: Bearer <jwt>
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status_code": http.StatusUnauthorized, "msg": "未授权"})
			return
		}
		claims, err := utils.ParseAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status_code": http.StatusUnauthorized, "msg": "token 无效"})
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

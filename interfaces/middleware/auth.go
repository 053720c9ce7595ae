package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"comment-insights/domain/repository"
	"comment-insights/infrastructure/configuration"
	"comment-insights/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// Auth validates the bearer token and loads (or lazily creates) the user's
// subscription profile. user_id and email are set on the context for
// downstream handlers.
func Auth(userRepository repository.IUserProfile) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authorization := ctx.Request.Header.Get("Authorization")
		if authorization == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing authorization header"})
			return
		}
		parts := strings.SplitN(authorization, "Bearer ", 2)
		if len(parts) != 2 || parts[1] == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid authorization header"})
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(configuration.C.App.SecretKey), nil
		})
		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid token"})
			return
		}

		userID, _ := claims["sub"].(string)
		if userID == "" {
			userID, _ = claims["user_id"].(string)
		}
		if userID == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "token has no subject"})
			return
		}
		email, _ := claims["email"].(string)

		if userRepository != nil {
			if _, err := userRepository.GetOrCreate(ctx.Request.Context(), userID, email); err != nil {
				logger.GetLogger().WithField("error", err).Error("Failed to load user profile")
				ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to load profile"})
				return
			}
		}

		ctx.Set("user_id", userID)
		ctx.Set("email", email)
		ctx.Next()
	}
}

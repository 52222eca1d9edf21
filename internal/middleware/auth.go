package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/studyforge/studyforge/config"
	"github.com/studyforge/studyforge/internal/dto"
)

const userIDKey = "user_id"

// RequireAuth validates the bearer credential issued by the hosted auth
// provider and stores the authenticated user's id in the gin context. Every
// failure mode maps to a uniform 401 before any handler side effect runs.
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := extractBearerToken(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
			return
		}

		claims := jwt.MapClaims{}
		_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.Auth.JWTSecret), nil
		})
		if err != nil {
			log.Warn().Err(err).Msg("Auth: token parse failed")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
			return
		}

		userID, err := extractUserID(claims)
		if err != nil {
			log.Warn().Err(err).Msg("Auth: invalid subject claim")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
			return
		}

		ctx.Set(userIDKey, userID)
		ctx.Next()
	}
}

// UserID returns the authenticated user id placed by RequireAuth.
func UserID(ctx *gin.Context) (uuid.UUID, bool) {
	value, exists := ctx.Get(userIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

func extractBearerToken(ctx *gin.Context) (string, error) {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return "", fmt.Errorf("missing Authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fmt.Errorf("malformed Authorization header")
	}
	return parts[1], nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return uuid.Nil, fmt.Errorf("missing sub claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("sub claim is not a valid UUID: %w", err)
	}
	return userID, nil
}

package v1

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/shenikar/rescue_chain/internal/authz"
	"github.com/shenikar/rescue_chain/internal/models"
	"github.com/shenikar/rescue_chain/internal/ratelimit"
	"github.com/sirupsen/logrus"
)

const actorKey = "actor"

// Claims - полезная нагрузка токена, выданного провайдером идентификации
type Claims struct {
	Role string `json:"role"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// ParseToken проверяет подпись HS256 и возвращает пользователя из токена
func ParseToken(tokenString, secret string) (models.Actor, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return models.Actor{}, err
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return models.Actor{}, fmt.Errorf("invalid subject: %w", err)
	}
	role := models.Role(claims.Role)
	if role == "" {
		role = models.RoleUser
	}
	return models.Actor{ID: id, Role: role, Name: claims.Name}, nil
}

// JWTAuthMiddleware - middleware аутентификации по Bearer токену
func JWTAuthMiddleware(secret string, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			log.Warn("Bearer token missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
			return
		}

		actor, err := ParseToken(strings.TrimPrefix(authHeader, "Bearer "), secret)
		if err != nil {
			log.WithError(err).Warn("Invalid token provided")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// AuthorizeMiddleware проверяет право роли на маршрут
func AuthorizeMiddleware(authorizer *authz.Authorizer, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
			return
		}

		allowed, err := authorizer.Allowed(actor.Role, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			log.WithError(err).Error("Failed to check access policy")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if !allowed {
			log.WithFields(logrus.Fields{
				"user_id": actor.ID,
				"role":    actor.Role,
				"path":    c.Request.URL.Path,
			}).Warn("Access denied")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}

// RateLimitMiddleware ограничивает частоту запросов пользователя; при сбое лимитера запрос пропускается
func RateLimitMiddleware(limiter ratelimit.Limiter, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if actor, ok := actorFrom(c); ok {
			key = actor.ID.String()
		}

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.WithError(err).Error("Rate limiter unavailable")
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, please try again later"})
			return
		}
		c.Next()
	}
}

func actorFrom(c *gin.Context) (models.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}

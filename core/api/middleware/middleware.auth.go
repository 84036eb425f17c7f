// Package middleware chứa các middleware dùng chung cho router.
package middleware

import (
	"fmt"
	"strings"

	"road_watch/core/api/handler"
	"road_watch/core/common"
	"road_watch/core/global"
	"road_watch/core/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v4"
)

// AuthMiddleware xác thực JWT bearer token từ cổng đăng nhập của portal.
// Token mang userId, position, role; middleware gán các claim này vào
// context để handler tính capability và resolve người nhận thông báo.
// Subsystem này không phát hành token.
func AuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			handler.HandleResponse(c, nil, err)
			return nil
		}

		claims, err := parseToken(tokenString)
		if err != nil {
			logger.WithRequest(c).WithError(err).Warn("Rejected request with invalid token")
			handler.HandleResponse(c, nil, err)
			return nil
		}

		c.Locals("user_id", claims.userID)
		c.Locals("position", claims.position)
		c.Locals("role", claims.role)
		return c.Next()
	}
}

// tokenClaims là các claim mà subsystem này cần từ token của portal
type tokenClaims struct {
	userID   string
	position string
	role     string
}

// extractBearerToken lấy token từ header Authorization.
// Kênh websocket không gửi được header nên chấp nhận thêm query param token.
func extractBearerToken(c fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", common.ErrTokenInvalid
		}
		return parts[1], nil
	}

	if token := c.Query("token", ""); token != "" {
		return token, nil
	}
	return "", common.ErrTokenMissing
}

// parseToken xác thực chữ ký và đọc claims từ token
func parseToken(tokenString string) (*tokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(global.ServerConfig.JwtSecret), nil
	})
	if err != nil {
		if strings.Contains(err.Error(), "expired") {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, common.ErrTokenInvalid
	}

	userID, _ := claims["userId"].(string)
	if userID == "" {
		return nil, common.ErrTokenInvalid
	}
	position, _ := claims["position"].(string)
	role, _ := claims["role"].(string)

	return &tokenClaims{
		userID:   userID,
		position: position,
		role:     role,
	}, nil
}

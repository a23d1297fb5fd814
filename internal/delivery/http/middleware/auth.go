package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt"
	"go.uber.org/zap"

	"github.com/places-microservice/internal/pkg/errors"
	"github.com/places-microservice/internal/pkg/utils"
)

// LocalsUserID - ключ c.Locals с subject токена
const LocalsUserID = "user_id"

// JWTAuth проверяет bearer токен сессии, подписанный HS256 секретом
// сервиса авторизации. Пути из skip пропускаются без проверки.
func JWTAuth(secret []byte, logger *zap.Logger, skip ...string) fiber.Handler {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[normalizePath(p)] = struct{}{}
	}

	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	}

	return func(c *fiber.Ctx) error {
		if _, ok := skipped[normalizePath(c.Path())]; ok || c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, keyFunc)
		if err != nil || !token.Valid {
			logger.Debug("Rejected session token", zap.String("path", c.Path()), zap.Error(err))
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		if sub, ok := claims["sub"].(string); ok {
			c.Locals(LocalsUserID, sub)
		}
		return c.Next()
	}
}

// normalizePath убирает завершающий слеш: роутер fiber без StrictRouting
// обслуживает /health и /health/ одним обработчиком
func normalizePath(p string) string {
	if trimmed := strings.TrimRight(p, "/"); trimmed != "" {
		return trimmed
	}
	return "/"
}

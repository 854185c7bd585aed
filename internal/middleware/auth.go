package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/hidrata/quest-backend/internal/config"
	"github.com/hidrata/quest-backend/internal/dto"
	"github.com/hidrata/quest-backend/internal/services"
	"github.com/hidrata/quest-backend/internal/tenant"
)

// JWTProtected verifies the bearer token and resolves it to a live user.
// Every failure yields the same 401 response.
func JWTProtected(cfg *config.Config, auth *services.AuthService) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{
			JWTAlg: jwt.SigningMethodHS256.Alg(),
			Key:    []byte(cfg.JWTSecret),
		},
		ContextKey: tenant.TokenKey,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, _, err := tenant.SubjectFromToken(c)
			if err != nil {
				return unauthorized(c)
			}
			user, err := auth.ResolveToken(c.UserContext(), token)
			if err != nil {
				return unauthorized(c)
			}
			tenant.SetIdentity(c, user)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c)
		},
	})
}

func unauthorized(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Unauthorized",
	})
}

package tenant

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hidrata/quest-backend/internal/models"
)

const (
	// TokenKey is where the JWT middleware stores the verified token.
	TokenKey    = "user"
	identityKey = "identity"
)

var ErrNoIdentity = errors.New("no authenticated identity in context")

// SubjectFromToken returns the sub claim of the token verified for this request.
func SubjectFromToken(c *fiber.Ctx) (*jwt.Token, string, error) {
	token, ok := c.Locals(TokenKey).(*jwt.Token)
	if !ok || token == nil {
		return nil, "", errors.New("invalid token in context")
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return nil, "", errors.New("missing sub claim")
	}
	return token, sub, nil
}

// SetIdentity records the user resolved by the access gate.
func SetIdentity(c *fiber.Ctx, user *models.User) {
	c.Locals(identityKey, user)
}

// GetIdentity returns the user resolved by the access gate.
func GetIdentity(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals(identityKey).(*models.User)
	if !ok || user == nil {
		return nil, ErrNoIdentity
	}
	return user, nil
}

// GetUserID extracts the authenticated user's id.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	user, err := GetIdentity(c)
	if err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

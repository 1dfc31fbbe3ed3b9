package middleware

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/noah-isme/vclass-go-api/internal/repository"
	"github.com/noah-isme/vclass-go-api/internal/service"
	"github.com/noah-isme/vclass-go-api/internal/utils"
)

// Identity is the authenticated caller bound to the request after token
// validation. Admin tokens carry no account row, so ID stays zero.
type Identity struct {
	ID       uint
	Admin    bool
	Role     string
	Name     string
	Email    string
	Section  string
	RollYear string
	RollDept string
}

const identityLocal = "identity"

// JWTProtected validates bearer tokens and hydrates the caller identity from
// the account store. The admin subject is synthetic and skips hydration; a
// token whose account row has since been deleted still passes with id and
// role only, so stale sessions degrade instead of hard-failing.
func JWTProtected(secret string, accounts repository.AccountRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "No token provided.")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "No token provided.")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "No token provided.")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "Invalid or expired token.")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "Invalid or expired token.")
		}

		identity, ok := identityFromClaims(claims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "Invalid or expired token.")
		}

		if !identity.Admin && accounts != nil {
			account, err := accounts.GetByID(c.UserContext(), identity.ID)
			if err == nil {
				identity.Name = account.Name
				identity.Email = account.Email
				identity.Section = account.Section
				identity.RollYear = account.RollYear
				identity.RollDept = account.RollDept
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.SendError(c, fiber.StatusInternalServerError, "Internal server error")
			}
		}

		c.Locals(identityLocal, identity)
		c.Locals("user_id", identity.ID)
		c.Locals("user_role", identity.Role)

		return c.Next()
	}
}

// IdentityFromCtx returns the authenticated identity bound by JWTProtected.
func IdentityFromCtx(c *fiber.Ctx) (Identity, bool) {
	identity, ok := c.Locals(identityLocal).(Identity)
	return identity, ok
}

func identityFromClaims(claims jwt.MapClaims) (Identity, bool) {
	subject, err := claims.GetSubject()
	if err != nil {
		return Identity{}, false
	}

	role := normalizeRole(claims["role"])
	if role == "" {
		return Identity{}, false
	}

	if subject == service.AdminSubject {
		return Identity{Admin: true, Role: role}, true
	}

	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil || id == 0 {
		return Identity{}, false
	}

	return Identity{ID: uint(id), Role: role}, true
}

func normalizeRole(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.ToLower(strings.TrimSpace(v))
	case []interface{}:
		for _, item := range v {
			if str, ok := item.(string); ok {
				role := strings.ToLower(strings.TrimSpace(str))
				if role != "" {
					return role
				}
			}
		}
	}
	return ""
}

package middleware

import (
	"strings"

	"go-recordshop/internal/model"
	"go-recordshop/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Context keys set by the auth middleware
const (
	LocalPrincipal  = "principal"
	LocalPrivileges = "user_privileges"
)

// RequireAuth validates the bearer token and sets the principal in context
func RequireAuth(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, errMsg := bearerToken(c)
		if errMsg != "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": errMsg})
		}

		res, err := authService.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid or expired token"})
		}

		setIdentity(c, res)
		return c.Next()
	}
}

// IdentifyUser attaches the principal when a valid token is sent but never rejects a request.
// Used when access control is off so changes can still be attributed.
func IdentifyUser(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, errMsg := bearerToken(c)
		if errMsg == "" {
			if res, err := authService.ValidateToken(tokenString); err == nil {
				setIdentity(c, res)
			}
		}
		return c.Next()
	}
}

// RequirePrivilege checks if the authenticated user has the required privilege
func RequirePrivilege(requiredPrivilege string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		privileges, ok := c.Locals(LocalPrivileges).([]string)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "No privileges found"})
		}

		for _, p := range privileges {
			if p == requiredPrivilege {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Forbidden: requires '" + requiredPrivilege + "' privilege",
		})
	}
}

// Principal returns the user set by RequireAuth or IdentifyUser, or nil.
func Principal(c *fiber.Ctx) *model.Principal {
	p, _ := c.Locals(LocalPrincipal).(*model.Principal)
	return p
}

func bearerToken(c *fiber.Ctx) (string, string) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", "Missing authorization token"
	}

	// "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", "Invalid authorization format. Use: Bearer <token>"
	}
	return parts[1], ""
}

func setIdentity(c *fiber.Ctx, res *service.TokenValidationResponse) {
	user := res.User
	c.Locals(LocalPrincipal, &user)
	c.Locals(LocalPrivileges, res.Privileges)
}

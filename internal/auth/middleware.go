package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-service/internal/domain"
	"github.com/spec-kit/field-service/internal/repository"
	apperrors "github.com/spec-kit/field-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	Kind    SubjectKind
	Role    domain.Role
	Profile *domain.Profile
	Client  *domain.Client
}

// ActorName returns the display name for audit entries.
func (p *Principal) ActorName() string {
	switch {
	case p.Profile != nil:
		return p.Profile.FullName
	case p.Client != nil:
		return p.Client.FullName
	default:
		return ""
	}
}

// ActorID returns the subject id.
func (p *Principal) ActorID() string {
	switch {
	case p.Profile != nil:
		return p.Profile.ID
	case p.Client != nil:
		return p.Client.ID
	default:
		return ""
	}
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens   *TokenManager
	profiles repository.ProfileRepository
	clients  repository.ClientRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, profiles repository.ProfileRepository, clients repository.ClientRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, profiles: profiles, clients: clients}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	principal := &Principal{Kind: claims.Subject, Role: claims.Role}

	switch claims.Subject {
	case SubjectStaff:
		profile, err := m.profiles.GetByID(c.Context(), claims.SubjectID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewUnauthorized("profile not found")
			}
			return apperrors.MapError(err)
		}
		if !profile.Active {
			return apperrors.NewUnauthorized("profile inactive")
		}
		principal.Profile = profile
		principal.Role = profile.Role
	case SubjectClient:
		client, err := m.clients.GetByID(c.Context(), claims.SubjectID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewUnauthorized("client not found")
			}
			return apperrors.MapError(err)
		}
		principal.Client = client
		principal.Role = domain.RoleCliente
	default:
		return apperrors.NewUnauthorized("unknown subject")
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

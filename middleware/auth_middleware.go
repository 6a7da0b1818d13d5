package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/paperstack/docshare/auth"
	"github.com/paperstack/docshare/repositories"
	"github.com/paperstack/docshare/utils"
)

// TokenValidator defines the interface for validating JWT tokens
type TokenValidator interface {
	// ValidateToken validates a JWT token and returns claims
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
}

// AuthMiddleware provides authentication and role-gating middleware
type AuthMiddleware struct {
	validator TokenValidator
	roles     repositories.RoleRepository
	logger    *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(validator TokenValidator, roles repositories.RoleRepository, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		roles:     roles,
		logger:    logger,
	}
}

// accessTokenHeader is the fallback header for clients that cannot set
// an Authorization header
const accessTokenHeader = "x-access-token"

// RequireAuth verifies the bearer token and attaches the caller's Identity
// to the request context. Requests with no token are rejected with 401;
// requests whose token fails verification are rejected with 406.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := middleware.GetReqID(ctx)

		token := extractToken(r)
		if token == "" {
			m.logger.Warn("missing token",
				zap.String("request_id", requestID))
			_ = utils.WriteUnauthorized(w, "Missing authorization token")
			return
		}

		claims, err := m.validator.ValidateToken(ctx, token)
		if err != nil {
			m.logger.Warn("token validation failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			_ = utils.WriteNotAcceptable(w, "Invalid or expired token")
			return
		}

		userID, err := uuid.Parse(claims.UserID())
		if err != nil {
			m.logger.Warn("invalid user id in claims",
				zap.String("request_id", requestID),
				zap.String("sub", claims.UserID()),
				zap.Error(err))
			_ = utils.WriteNotAcceptable(w, "Invalid token payload")
			return
		}

		roleID, err := uuid.Parse(claims.RoleID)
		if err != nil {
			m.logger.Warn("invalid role id in claims",
				zap.String("request_id", requestID),
				zap.String("role_id", claims.RoleID),
				zap.Error(err))
			_ = utils.WriteNotAcceptable(w, "Invalid token payload")
			return
		}

		ctx = WithIdentity(ctx, &Identity{UserID: userID, RoleID: roleID})

		m.logger.Debug("authentication successful",
			zap.String("request_id", requestID),
			zap.String("user_id", userID.String()))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin looks up the caller's role and rejects with 403 unless its
// title is "admin" (case-insensitive). A role lookup that finds nothing
// fails closed. Must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := middleware.GetReqID(ctx)

		identity := GetIdentityFromContext(ctx)
		if identity == nil {
			m.logger.Error("identity not found in context",
				zap.String("request_id", requestID))
			_ = utils.WriteUnauthorized(w, "Authentication required")
			return
		}

		role, err := m.roles.GetByID(ctx, identity.RoleID)
		if err != nil {
			m.logger.Warn("role lookup failed, denying admin access",
				zap.String("request_id", requestID),
				zap.String("role_id", identity.RoleID.String()),
				zap.Error(err))
			_ = utils.WriteForbidden(w, "Admin role required")
			return
		}

		if !role.IsAdmin() {
			m.logger.Warn("insufficient permissions",
				zap.String("request_id", requestID),
				zap.String("role", role.Title))
			_ = utils.WriteForbidden(w, "Admin role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// extractToken reads the bearer token from the Authorization header or the
// x-access-token header. The Authorization header wins when both are present;
// a "Bearer " prefix is optional.
func extractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return strings.TrimSpace(authHeader)
	}
	return strings.TrimSpace(r.Header.Get(accessTokenHeader))
}

package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/paperstack/docshare/models"
	"github.com/paperstack/docshare/repositories"
	"github.com/paperstack/docshare/utils"
)

// RoleResponse represents a role in API responses
type RoleResponse struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	RoleID    uuid.UUID `json:"role_id"`
	CreatedAt string    `json:"created_at"`
}

// AdminHandler serves the admin-only role and user listings
type AdminHandler struct {
	users  repositories.UserRepository
	roles  repositories.RoleRepository
	logger *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(users repositories.UserRepository, roles repositories.RoleRepository, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		users:  users,
		roles:  roles,
		logger: logger,
	}
}

// HandleListRoles handles GET /api/v1/roles
func (h *AdminHandler) HandleListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roles.List(r.Context())
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	responses := make([]RoleResponse, len(roles))
	for i, role := range roles {
		responses[i] = RoleResponse{ID: role.ID, Title: role.Title}
	}

	_ = utils.WriteOK(w, responses)
}

// HandleListUsers handles GET /api/v1/users
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = userToResponse(user)
	}

	_ = utils.WriteOK(w, responses)
}

func userToResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		RoleID:    u.RoleID,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

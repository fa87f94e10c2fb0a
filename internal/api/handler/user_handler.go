package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/usermgmt/user-service/internal/api/metrics"
	"github.com/usermgmt/user-service/internal/core/domain"
	"github.com/usermgmt/user-service/internal/core/ports"
)

// UserHandler handles HTTP requests for user CRUD and statistics.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// --- Request / Response types ---

type createUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
	Role  string `json:"role" validate:"omitempty,oneof=admin user guest"`
}

// updateUserRequest carries no validate tags: updates are whole-object
// replacements and the schema rules apply to the assembled record, not to the
// request shape.
type updateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type deleteUserResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type statsResponse struct {
	TotalUsers  int64 `json:"totalUsers"`
	AdminCount  int64 `json:"adminCount"`
	ActiveUsers int64 `json:"activeUsers"`
}

// List handles GET /api/users.
//
// @Summary      List all users, newest first
// @Tags         users
// @Produce      json
// @Success      200  {array}   domain.User
// @Failure      500  {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /api/users/:id.
//
// @Summary      Get a user by identifier
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User identifier"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": domain.ErrUserNotFound.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, user)
}

// Create handles POST /api/users.
//
// @Summary      Create a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        x-api-key  header    string             true  "Static API key"
// @Param        body       body      createUserRequest  true  "User fields"
// @Success      201        {object}  domain.User
// @Failure      400        {object}  map[string]string
// @Failure      401        {object}  map[string]string
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.CreateRejectionsTotal.WithLabelValues("validation").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.service.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		var lre *domain.LimitReachedError
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &lre):
			metrics.CreateRejectionsTotal.WithLabelValues("limit_reached").Inc()
		case errors.Is(err, domain.ErrEmailExists):
			metrics.CreateRejectionsTotal.WithLabelValues("duplicate_email").Inc()
		case errors.As(err, &ve):
			metrics.CreateRejectionsTotal.WithLabelValues("validation").Inc()
		}
		// Every create failure, store errors included, answers 400 with the
		// underlying message.
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	metrics.UsersCreatedTotal.WithLabelValues(string(user.Role)).Inc()
	return c.JSON(http.StatusCreated, user)
}

// Update handles PUT /api/users/:id.
//
// @Summary      Replace a user's name, email and role
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        x-api-key  header    string             true  "Static API key"
// @Param        id         path      string             true  "User identifier"
// @Param        body       body      updateUserRequest  true  "Replacement fields"
// @Success      200        {object}  domain.User
// @Failure      400        {object}  map[string]string
// @Failure      401        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	user, err := h.service.UpdateUser(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": domain.ErrUserNotFound.Error()})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	metrics.UsersUpdatedTotal.Inc()
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /api/users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        x-api-key  header    string  true  "Static API key"
// @Param        id         path      string  true  "User identifier"
// @Success      200        {object}  deleteUserResponse
// @Failure      401        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Failure      500        {object}  map[string]string
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	user, err := h.service.DeleteUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": domain.ErrUserNotFound.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	metrics.UsersDeletedTotal.Inc()
	return c.JSON(http.StatusOK, deleteUserResponse{
		Message: "User deleted successfully",
		User:    user,
	})
}

// Stats handles GET /api/stats.
//
// @Summary      Aggregate user statistics
// @Tags         users
// @Produce      json
// @Success      200  {object}  statsResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/stats [get]
func (h *UserHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, statsResponse{
		TotalUsers:  stats.TotalUsers,
		AdminCount:  stats.AdminCount,
		ActiveUsers: stats.ActiveUsers,
	})
}

package handlers

import (
	"net/http"

	"portfolio-tracker/internal/dto"
	"portfolio-tracker/internal/errors"
	"portfolio-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService services.UserServiceInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService services.UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser registers a portfolio owner
// @Summary Create user
// @Tags Users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User details"
// @Success 201 {object} SuccessResponse "User created"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body or validation error"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_002 - Database error"
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req dto.CreateUserRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	user, err := h.userService.CreateUser(c.Request().Context(), req.FirstName, req.LastName, req.Email)
	if err != nil {
		return SendStoreError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    dto.NewUserResponse(user),
		Message: "User created successfully",
	})
}

// GetUser fetches one user
// @Summary Get user by ID
// @Tags Users
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} SuccessResponse "User details"
// @Failure 400 {object} errors.ErrorResponse "USER_002 - Invalid user ID"
// @Failure 404 {object} errors.ErrorResponse "USER_001 - User not found"
// @Router /users/{userId} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	userID, ok, err := parseIDParam(c, "userId", errors.UserInvalidID)
	if !ok {
		return err
	}

	user, err := h.userService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return SendStoreError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.NewUserResponse(user)})
}

// UpdateUserEmail replaces a user's email. The address is not format-checked.
// @Summary Update user email
// @Tags Users
// @Accept json
// @Produce json
// @Param userId path int true "User ID"
// @Param request body dto.UpdateEmailRequest true "New email"
// @Success 200 {object} SuccessResponse "Email updated"
// @Failure 404 {object} errors.ErrorResponse "USER_001 - User not found"
// @Router /users/{userId}/email [patch]
func (h *UserHandler) UpdateUserEmail(c echo.Context) error {
	userID, ok, err := parseIDParam(c, "userId", errors.UserInvalidID)
	if !ok {
		return err
	}

	var req dto.UpdateEmailRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	if err := h.userService.UpdateUserEmail(c.Request().Context(), userID, req.Email); err != nil {
		return SendStoreError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Email updated successfully"})
}

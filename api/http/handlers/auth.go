package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/resumecompare/api/http/middleware"
	"github.com/artem13815/resumecompare/api/http/presenter"
	"github.com/artem13815/resumecompare/pkg/auth"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
}

func NewAuthHandler(useCase auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"createdAt,omitzero"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	Token       string     `json:"token"`
}

// Register handles user registration.
// @Summary Регистрация
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "email и пароль (не короче 8 символов)"
// @Success 201 {object} authResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	req, ok := parseCredentials(c)
	if !ok {
		return nil
	}

	result, err := h.useCase.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserAlreadyExists):
			return presenter.Error(c, http.StatusConflict, "user already exists")
		case errors.Is(err, auth.ErrWeakPassword):
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		default:
			middleware.Logger(c).Error("register user", zap.Error(err))
			return presenter.Error(c, http.StatusInternalServerError, "failed to register user")
		}
	}

	return presenter.JSON(c, http.StatusCreated, authResponse{
		ID:        result.User.ID.String(),
		Email:     result.User.Email,
		CreatedAt: result.User.CreatedAt,
		Token:     result.Token,
	})
}

// Login handles user login.
// @Summary Вход
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "email и пароль"
// @Success 200 {object} authResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	req, ok := parseCredentials(c)
	if !ok {
		return nil
	}

	result, err := h.useCase.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return presenter.Error(c, http.StatusUnauthorized, "invalid credentials")
		}
		middleware.Logger(c).Error("login", zap.Error(err))
		return presenter.Error(c, http.StatusInternalServerError, "failed to login")
	}

	return presenter.JSON(c, http.StatusOK, authResponse{
		ID:          result.User.ID.String(),
		Email:       result.User.Email,
		LastLoginAt: result.User.LastLoginAt,
		Token:       result.Token,
	})
}

func parseCredentials(c *fiber.Ctx) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		_ = presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
		return req, false
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		_ = presenter.Error(c, http.StatusBadRequest, "email and password are required")
		return req, false
	}
	return req, true
}

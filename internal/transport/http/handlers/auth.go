package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rumonkh0/quizbackend/internal/infra/logger"
	"github.com/rumonkh0/quizbackend/internal/infra/security"
	"github.com/rumonkh0/quizbackend/internal/usecase"
)

// Caller-facing wording is part of the API contract and must not drift.
const (
	msgMissingFields     = "Please fill all the fields"
	msgPasswordMismatch  = "Password and Confirm Password should be same"
	msgInvalidRole       = "Role must be either admin or user"
	msgEmailTaken        = "Email is already registered, Please log in"
	msgUsernameTaken     = "Username already exists"
	msgUserNotFound      = "User not found"
	msgAccountLocked     = "Account is temporarily locked due to too many failed login attempts. Please try again later."
	msgLockoutTriggered  = "Account locked due to 3 failed login attempts. Please try again after 15 minutes."
	msgInternal          = "Internal server error"
	msgUserCreated       = "User created successfully"
	msgUserLoggedIn      = "User logged in successfully"
	sessionCookieName    = "token"
)

// AuthHandler exposes registration and login endpoints.
type AuthHandler struct {
	auth *usecase.AuthService
	log  *zap.Logger
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *usecase.AuthService, log *zap.Logger) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{auth: auth, log: log}
}

// RegisterRoutes binds the authentication routes.
func (h *AuthHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/register", h.register)
	r.POST("/login", h.login)
}

func (h *AuthHandler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(msgMissingFields))
		return
	}

	err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.ConfirmPassword, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingFields):
			c.JSON(http.StatusBadRequest, errorResponse(msgMissingFields))
		case errors.Is(err, usecase.ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, errorResponse(msgPasswordMismatch))
		case errors.Is(err, usecase.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, errorResponse(msgInvalidRole))
		case errors.Is(err, usecase.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, errorResponse(msgEmailTaken))
		case errors.Is(err, usecase.ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, errorResponse(msgUsernameTaken))
		default:
			h.log.Error("registration failed",
				zap.String("email", logger.MaskEmail(req.Email)),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, errorResponse(msgInternal))
		}
		return
	}

	c.JSON(http.StatusOK, successResponse(msgUserCreated, nil))
}

func (h *AuthHandler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(msgMissingFields))
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var invalid *usecase.InvalidCredentialsError
		switch {
		case errors.Is(err, usecase.ErrMissingFields):
			c.JSON(http.StatusBadRequest, errorResponse(msgMissingFields))
		case errors.Is(err, usecase.ErrAccountNotFound):
			c.JSON(http.StatusBadRequest, errorResponse(msgUserNotFound))
		case errors.As(err, &invalid):
			c.JSON(http.StatusBadRequest, errorResponse(
				fmt.Sprintf("Invalid credentials. %d attempts remaining.", invalid.Remaining)))
		case errors.Is(err, usecase.ErrLockoutTriggered):
			c.JSON(http.StatusLocked, errorResponse(msgLockoutTriggered))
		case errors.Is(err, usecase.ErrAccountLocked):
			c.JSON(http.StatusLocked, errorResponse(msgAccountLocked))
		default:
			h.log.Error("login failed",
				zap.String("email", logger.MaskEmail(req.Email)),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, errorResponse(msgInternal))
		}
		return
	}

	// Cookie lifetime is deliberately shorter than the token claim.
	c.SetCookie(sessionCookieName, result.Token, int(security.CookieTTL.Seconds()), "/", "", false, true)

	c.JSON(http.StatusOK, successResponse(msgUserLoggedIn, LoginData{
		Token: result.Token,
		User: UserSummary{
			ID:               result.Account.ID,
			Email:            result.Account.Email,
			Username:         result.Account.Username,
			Role:             string(result.Account.Role),
			CreatedAt:        result.Account.CreatedAt,
			AttemptedQuizzes: result.AttemptedQuizzes,
		},
	}))
}

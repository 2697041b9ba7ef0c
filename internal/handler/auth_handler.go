package handler

import (
	"errors"
	"net/http"

	"github.com/abdullahikhalilmuaz/project-server/internal/models"
	"github.com/abdullahikhalilmuaz/project-server/internal/service"
	"github.com/abdullahikhalilmuaz/project-server/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Field presence is checked by the service validators, not binding tags,
// so missing fields come back as structured violations instead of a
// framework error string.
type RegisterRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Registration request parsing failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		respondBadRequest(c, "Invalid request body")
		return
	}

	logger.Log.Info("User registration attempt",
		zap.String("email", req.Email),
		zap.String("ip", c.ClientIP()),
	)

	user, err := h.authService.Register(service.RegisterInput{
		FullName:        req.FullName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            models.Role(req.Role),
	})
	if err != nil {
		if v, ok := asViolations(err); ok {
			respondValidation(c, v)
			return
		}
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			respondBadRequest(c, "An account with this email already exists.")
			return
		}
		respondInternal(c, "An unexpected error occurred during registration.", err)
		return
	}

	respondData(c, http.StatusCreated, "Your account has been created successfully.", user)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Login request parsing failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		respondBadRequest(c, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondBadRequest(c, "Please provide both email and password.")
		return
	}

	logger.Log.Info("User login attempt",
		zap.String("email", req.Email),
		zap.String("ip", c.ClientIP()),
	)

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// One generic message for both unknown email and bad password
			respondUnauthorized(c, "Incorrect email or password.")
			return
		}
		respondInternal(c, "An unexpected error occurred during login.", err)
		return
	}

	respondData(c, http.StatusOK, "You have logged in successfully.", user)
}

package service

import (
	"errors"
	"strings"
	"time"

	"github.com/abdullahikhalilmuaz/project-server/internal/models"
	"github.com/abdullahikhalilmuaz/project-server/internal/repository"
	"github.com/abdullahikhalilmuaz/project-server/internal/utils"
	"github.com/abdullahikhalilmuaz/project-server/internal/validation"
	"github.com/abdullahikhalilmuaz/project-server/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmailAlreadyExists = errors.New("an account with this email already exists")
	// ErrInvalidCredentials deliberately covers both "no such account" and
	// "wrong password" so callers cannot enumerate registered emails.
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

const minPasswordLength = 6

type AuthService struct {
	userRepo *repository.UserRepository
}

func NewAuthService(userRepo *repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// RegisterInput carries the raw registration form.
type RegisterInput struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
	Role            models.Role
}

func (s *AuthService) Register(in RegisterInput) (*models.PublicUser, error) {
	start := time.Now()

	logger.Log.Debug("Processing user registration",
		zap.String("email", in.Email),
	)

	if err := validateRegisterInput(in); err != nil {
		logger.Log.Warn("Registration validation failed",
			zap.String("email", in.Email),
			zap.Error(err),
		)
		return nil, err
	}

	// Exact-match pre-check; the unique index on email is the real guard
	// when two registrations race.
	existing, err := s.userRepo.GetByEmail(in.Email)
	if err != nil {
		logger.Log.Error("Failed to check email existence",
			zap.String("email", in.Email),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil {
		logger.Log.Warn("Email already registered",
			zap.String("email", in.Email),
		)
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(in.Password)
	if err != nil {
		logger.Log.Error("Failed to hash password",
			zap.Error(err),
		)
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: hashedPassword,
		Role:         in.Role,
	}

	if err := s.userRepo.Create(user); err != nil {
		logger.Log.Error("Failed to create user in database",
			zap.String("email", in.Email),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("User registered successfully",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
		zap.Duration("total_duration", time.Since(start)),
	)

	return user.Public(), nil
}

func (s *AuthService) Login(email, password string) (*models.PublicUser, error) {
	start := time.Now()

	logger.Log.Debug("Processing user login",
		zap.String("email", email),
	)

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to get user by email",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil {
		logger.Log.Warn("Login failed: user not found",
			zap.String("email", email),
		)
		return nil, ErrInvalidCredentials
	}

	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		logger.Log.Error("Failed to verify password",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, err
	}
	if !valid {
		logger.Log.Warn("Login failed: invalid password",
			zap.String("email", email),
			zap.String("user_id", user.ID),
		)
		return nil, ErrInvalidCredentials
	}

	logger.Log.Info("User logged in successfully",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
		zap.Duration("total_duration", time.Since(start)),
	)

	return user.Public(), nil
}

func validateRegisterInput(in RegisterInput) error {
	var v validation.Violations

	if strings.TrimSpace(in.FullName) == "" {
		v = v.Add("fullName", "is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		v = v.Add("email", "is required")
	}
	if in.Password == "" {
		v = v.Add("password", "is required")
	}
	if in.ConfirmPassword == "" {
		v = v.Add("confirmPassword", "is required")
	}
	if in.Role == "" {
		v = v.Add("role", "is required")
	} else if !models.ValidRole(in.Role) {
		v = v.Add("role", "must be one of: student, supervisor, admin")
	}

	if in.Password != "" && in.ConfirmPassword != "" && in.Password != in.ConfirmPassword {
		v = v.Add("confirmPassword", "does not match password")
	}
	if in.Password != "" && len(in.Password) < minPasswordLength {
		v = v.Add("password", "must be at least 6 characters long")
	}

	return v.OrNil()
}

package service

import (
	"strings"

	"go-sales-crm/internal/model"
	"go-sales-crm/internal/repository"
	"go-sales-crm/pkg/jwt"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	// Authenticate resolves a bearer token to the current principal.
	Authenticate(tokenString string) (model.Principal, error)
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
	Me(userID uuid.UUID) (*model.UserResponse, error)
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type TokenValidationResponse struct {
	Valid bool               `json:"valid"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(err, "find user")
		}
		return nil, ErrInvalidCredentials
	}

	// 2. Verify password
	if !user.CheckPassword(password) {
		log.Warnf("failed login for %s", user.Email)
		return nil, ErrInvalidCredentials
	}

	// 3. Generate JWT token
	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.FullName, string(user.Role))
	if err != nil {
		return nil, errors.Wrap(err, "generate token")
	}

	return &LoginResponse{Token: token, User: user.ToResponse()}, nil
}

// Authenticate checks the token and re-reads the user so deleted accounts and
// role changes take effect before the token expires.
func (s *authService) Authenticate(tokenString string) (model.Principal, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return model.Principal{}, err
	}
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return model.Principal{}, storeErr(err, ErrUserNotFound, "load session user")
	}
	return user.Principal(), nil
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	principal, err := s.Authenticate(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.Me(principal.UserID)
	if err != nil {
		return nil, err
	}
	return &TokenValidationResponse{Valid: true, User: *user}, nil
}

func (s *authService) Me(userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, storeErr(err, ErrUserNotFound, "get user")
	}
	response := user.ToResponse()
	return &response, nil
}

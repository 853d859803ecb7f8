package service

import (
	"strings"

	"go-sales-crm/internal/model"
	"go-sales-crm/internal/repository"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmailExists = errors.New("email already exists")
	ErrDeleteSelf  = errors.New("cannot delete your own account")
)

type UserService interface {
	CreateUser(p model.Principal, req *CreateUserRequest) (*model.UserResponse, error)
	DeleteUser(p model.Principal, userID uuid.UUID) error
	GetAllUsers(p model.Principal) ([]model.UserResponse, error)
	// ResetPassword sets a new password without the old one. Used by the CLI.
	ResetPassword(email, newPassword string) error
	// EnsureAdmin creates the bootstrap admin when no account has that email.
	EnsureAdmin(email, password, fullName string) (bool, error)
}

type CreateUserRequest struct {
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=6"`
	FullName string     `json:"full_name" validate:"required"`
	Role     model.Role `json:"role" validate:"omitempty,oneof=admin user"`
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(p model.Principal, req *CreateUserRequest) (*model.UserResponse, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}

	// 1. Validate request
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.Role == "" {
		req.Role = model.RoleUser
	}

	// 2. Check if email already exists
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "check email")
	}

	// 3. Create user
	user := &model.User{Email: req.Email, FullName: req.FullName, Role: req.Role}
	user.Stamp(p.Actor())
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	// 4. Save to database
	if err := s.userRepo.Create(user); err != nil {
		return nil, errors.Wrap(err, "create user")
	}
	log.Infof("user %s (%s) created by %s", user.Email, user.Role, p.Actor())

	response := user.ToResponse()
	return &response, nil
}

func (s *userService) DeleteUser(p model.Principal, userID uuid.UUID) error {
	if !p.IsAdmin() {
		return ErrForbidden
	}
	if userID == p.UserID {
		return ErrDeleteSelf
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return storeErr(err, ErrUserNotFound, "delete user")
	}
	return nil
}

func (s *userService) GetAllUsers(p model.Principal) ([]model.UserResponse, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

func (s *userService) ResetPassword(email, newPassword string) error {
	if len(newPassword) < 6 {
		return invalid("password must be at least 6 characters")
	}
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return storeErr(err, ErrUserNotFound, "find user")
	}
	if err := user.SetPassword(newPassword); err != nil {
		return errors.Wrap(err, "hash password")
	}
	return storeErr(s.userRepo.UpdatePassword(user.ID, user.Password), ErrUserNotFound, "update password")
}

func (s *userService) EnsureAdmin(email, password, fullName string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, nil
	}
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, errors.Wrap(err, "check admin")
	}
	_, err := s.CreateUser(model.SystemPrincipal, &CreateUserRequest{
		Email:    email,
		Password: password,
		FullName: fullName,
		Role:     model.RoleAdmin,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

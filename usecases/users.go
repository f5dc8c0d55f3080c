package usecases

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"realestate-server/apperr"
	"realestate-server/auth"
	"realestate-server/dtos"
	"realestate-server/entities"
	"realestate-server/repositories"

	"gorm.io/gorm"
)

const invalidCredentialsMessage = "invalid email or password"

type UserUseCase struct {
	UserRepo repositories.UserRepository
}

func NewUserUseCase(userRepo repositories.UserRepository) *UserUseCase {
	return &UserUseCase{UserRepo: userRepo}
}

// CreateUser hashes the password and stores a new back-office account.
func (uc *UserUseCase) CreateUser(req *dtos.CreateUserRequest) (*entities.User, error) {
	email := normalizeEmail(req.Email)
	if err := uc.ensureEmailFree(email, 0); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, passwordError(err)
	}

	user := &entities.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
		Phone:        strings.TrimSpace(req.Phone),
	}
	if err := uc.UserRepo.Create(user); err != nil {
		return nil, writeError(err, "email already registered", "create user")
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (uc *UserUseCase) GetUser(id int64) (*entities.User, error) {
	if err := requireID(id, "user"); err != nil {
		return nil, err
	}
	user, err := uc.UserRepo.GetByID(id)
	if err != nil {
		return nil, lookupError(err, "user")
	}
	return user, nil
}

// GetAllUsers retrieves all users
func (uc *UserUseCase) GetAllUsers() ([]entities.User, error) {
	users, err := uc.UserRepo.GetAll()
	if err != nil {
		return nil, apperr.Internal("failed to list users", err)
	}
	return users, nil
}

// UpdateUser merges the provided fields into the stored user.
func (uc *UserUseCase) UpdateUser(id int64, req *dtos.UpdateUserRequest) (*entities.User, error) {
	existing, err := uc.GetUser(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != existing.Email {
			if err := uc.ensureEmailFree(email, existing.ID); err != nil {
				return nil, err
			}
			existing.Email = email
		}
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, passwordError(err)
		}
		existing.PasswordHash = hash
	}
	if req.Role != nil {
		existing.Role = *req.Role
	}
	if req.Phone != nil {
		existing.Phone = strings.TrimSpace(*req.Phone)
	}

	if err := uc.UserRepo.Update(existing); err != nil {
		return nil, writeError(err, "email already registered", "update user")
	}
	return existing, nil
}

// DeleteUser deletes a user
func (uc *UserUseCase) DeleteUser(id int64) error {
	if _, err := uc.GetUser(id); err != nil {
		return err
	}
	if err := uc.UserRepo.Delete(id); err != nil {
		return apperr.Internal("failed to delete user", err)
	}
	return nil
}

// Authenticate checks a login. Unknown email and wrong password produce
// the same error.
func (uc *UserUseCase) Authenticate(email, password string) (*entities.User, error) {
	user, err := uc.UserRepo.GetByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidCredentials()
		}
		return nil, apperr.Internal("failed to load user", err)
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, invalidCredentials()
	}
	return user, nil
}

func (uc *UserUseCase) ensureEmailFree(email string, selfID int64) error {
	other, err := uc.UserRepo.GetByEmail(email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	case err != nil:
		return apperr.Internal("failed to check email", err)
	case other.ID != selfID:
		return apperr.Conflict("email already registered")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func invalidCredentials() error {
	return apperr.New(http.StatusUnauthorized, apperr.CodeInvalidCredentials, invalidCredentialsMessage)
}

func passwordError(err error) error {
	if errors.Is(err, auth.ErrPasswordTooShort) {
		return apperr.Validation(fmt.Sprintf("password must be at least %d characters", auth.MinPasswordLength))
	}
	return apperr.Internal("failed to hash password", err)
}

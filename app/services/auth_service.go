package services

import (
	"errors"

	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/app/repositories"
	"github.com/tyabelawras/api/pkg/auth"
)

// ErrInvalidCredentials is returned for both unknown email and bad
// password so the two cases are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// Login verifies the password and returns a signed JWT plus the user.
func (s *AuthService) Login(email, password string) (string, models.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return "", models.User{}, ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", models.User{}, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.UserType)
	if err != nil {
		return "", models.User{}, err
	}

	return token, user, nil
}

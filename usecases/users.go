package usecases

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"recipe-server/entities"
	"recipe-server/repositories"
)

type UserUseCase struct {
	UserRepo  repositories.UserRepository
	TokenRepo repositories.TokenRepository
}

func NewUserUseCase(userRepo repositories.UserRepository, tokenRepo repositories.TokenRepository) *UserUseCase {
	return &UserUseCase{
		UserRepo:  userRepo,
		TokenRepo: tokenRepo,
	}
}

// NormalizeEmail lowercases the domain portion of the address. The local
// part is left untouched.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// CreateUser creates a new account with default flags.
func (uc *UserUseCase) CreateUser(email, password, name string) (*entities.User, error) {
	if email == "" {
		return nil, errors.New("users must have an email address")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:    NormalizeEmail(email),
		Name:     name,
		Password: string(hash),
		IsActive: true,
	}
	if err := uc.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateSuperuser creates a user and grants the staff and superuser flags.
func (uc *UserUseCase) CreateSuperuser(email, password string) (*entities.User, error) {
	user, err := uc.CreateUser(email, password, "")
	if err != nil {
		return nil, err
	}

	user.IsStaff = true
	user.IsSuperuser = true
	if err := uc.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks email/password credentials. Inactive accounts fail
// the same way as wrong passwords.
func (uc *UserUseCase) Authenticate(email, password string) (*entities.User, error) {
	user, err := uc.UserRepo.GetByEmail(NormalizeEmail(email))
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if !user.IsActive {
		return nil, errors.New("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errors.New("invalid credentials")
	}
	return user, nil
}

// IssueToken creates a fresh API token for the user.
func (uc *UserUseCase) IssueToken(userID uint) (*entities.ApiToken, error) {
	token := &entities.ApiToken{UserID: userID}
	if err := uc.TokenRepo.Create(token); err != nil {
		return nil, err
	}
	return token, nil
}

// UserByToken resolves a bearer credential to its user.
func (uc *UserUseCase) UserByToken(key string) (*entities.User, error) {
	if key == "" {
		return nil, errors.New("token is required")
	}
	token, err := uc.TokenRepo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	user, err := uc.UserRepo.GetByID(token.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, errors.New("user is inactive")
	}
	return user, nil
}

// ============= Administration =============

func (uc *UserUseCase) ListUsers() ([]entities.User, error) {
	return uc.UserRepo.GetAll()
}

func (uc *UserUseCase) ToggleActive(userID uint) (*entities.User, error) {
	user, err := uc.UserRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.IsActive = !user.IsActive
	if err := uc.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) ToggleStaff(userID uint) (*entities.User, error) {
	user, err := uc.UserRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.IsStaff = !user.IsStaff
	if err := uc.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) DeleteUser(userID uint) error {
	if _, err := uc.UserRepo.GetByID(userID); err != nil {
		return errors.New("user not found")
	}
	return uc.UserRepo.Delete(userID)
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"campusbarter/internal/auth"
	"campusbarter/internal/cache"
	apperrors "campusbarter/internal/errors"
	"campusbarter/internal/model"
	"campusbarter/internal/repository"
)

const bcryptCost = 10

const profileCacheTTL = 5 * time.Minute

// bearerPrefix is the expected Authorization header scheme.
const bearerPrefix = "Bearer "

var (
	// ErrInvalidCredentials is returned when username or password is incorrect.
	// Unknown usernames and wrong passwords fail identically.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned when registering an existing email.
	ErrEmailTaken = errors.New("email already exists")
)

// AuthResult carries the issued token plus the public identity fields
// returned by register and login.
type AuthResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// AuthService handles registration, login and token-to-user resolution.
type AuthService interface {
	Register(ctx context.Context, username, password, email, fullName string) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	CurrentUser(ctx context.Context, authHeader string) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	cache      *cache.Client
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, cacheClient *cache.Client) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		cache:      cacheClient,
	}
}

func (s *authService) profileCacheKey(username string) string {
	return fmt.Sprintf("user:%s", username)
}

// Register creates a new user with a hashed password and issues a token.
// Username uniqueness is checked before email uniqueness.
func (s *authService) Register(ctx context.Context, username, password, email, fullName string) (*AuthResult, error) {
	taken, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	taken, err = s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		FullName:     fullName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(username)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &AuthResult{Token: token, Username: user.Username, FullName: user.FullName}, nil
}

// Login authenticates a user and issues a token. Whether the username
// was unknown or the password wrong is not leaked.
func (s *authService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.Username)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &AuthResult{Token: token, Username: user.Username, FullName: user.FullName}, nil
}

// CurrentUser resolves an Authorization header to the user's public
// profile. Any validation failure, including the user no longer
// existing, surfaces as an invalid token.
func (s *authService) CurrentUser(ctx context.Context, authHeader string) (*model.User, error) {
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return nil, apperrors.ErrInvalidToken
	}
	tokenString := strings.TrimPrefix(authHeader, bearerPrefix)

	claims, err := s.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	username := claims.Username()

	if data, _ := s.cache.Get(ctx, s.profileCacheKey(username)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.profileCacheKey(username), payload, profileCacheTTL)
	}
	return user, nil
}

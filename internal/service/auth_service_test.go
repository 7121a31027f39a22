package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"campusbarter/internal/auth"
	apperrors "campusbarter/internal/errors"
	"campusbarter/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		email         string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "ayesha",
			email:    "ayesha@campus.edu",
			setupMock: func(m *MockUserRepository) {
				m.On("ExistsByUsername", mock.Anything, "ayesha").Return(false, nil)
				m.On("ExistsByEmail", mock.Anything, "ayesha@campus.edu").Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "username already exists",
			username: "ayesha",
			email:    "other@campus.edu",
			setupMock: func(m *MockUserRepository) {
				m.On("ExistsByUsername", mock.Anything, "ayesha").Return(true, nil)
			},
			expectedError: ErrUsernameTaken,
		},
		{
			name:     "email already exists",
			username: "newuser",
			email:    "ayesha@campus.edu",
			setupMock: func(m *MockUserRepository) {
				m.On("ExistsByUsername", mock.Anything, "newuser").Return(false, nil)
				m.On("ExistsByEmail", mock.Anything, "ayesha@campus.edu").Return(true, nil)
			},
			expectedError: ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, nil)

			result, err := service.Register(context.Background(), tt.username, "password123", tt.email, "Full Name")

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.Equal(t, tt.username, result.Username)
				assert.Equal(t, "Full Name", result.FullName)

				// The token's subject is the registered username.
				claims, err := jwtService.ValidateToken(result.Token)
				assert.NoError(t, err)
				assert.Equal(t, tt.username, claims.Username())
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "ayesha",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "ayesha").Return(&model.User{
					Username:     "ayesha",
					FullName:     "Ayesha Khan",
					PasswordHash: string(hashed),
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:     "wrong password",
			username: "ayesha",
			password: "nope",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "ayesha").Return(&model.User{
					Username:     "ayesha",
					PasswordHash: string(hashed),
				}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			// Same error kind as a wrong password: no leak of which failed
			name:     "unknown username",
			username: "ghost",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, nil)

			result, err := service.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.Equal(t, tt.username, result.Username)
				assert.NotEmpty(t, result.Token)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")

	t.Run("round trip after registration", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("ExistsByUsername", mock.Anything, "ayesha").Return(false, nil)
		mockRepo.On("ExistsByEmail", mock.Anything, "ayesha@campus.edu").Return(false, nil)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
		mockRepo.On("FindByUsername", mock.Anything, "ayesha").Return(&model.User{
			Username: "ayesha",
			Email:    "ayesha@campus.edu",
			FullName: "Ayesha Khan",
		}, nil)

		service := NewAuthService(mockRepo, jwtService, nil)

		result, err := service.Register(context.Background(), "ayesha", "password123", "ayesha@campus.edu", "Ayesha Khan")
		assert.NoError(t, err)

		user, err := service.CurrentUser(context.Background(), "Bearer "+result.Token)
		assert.NoError(t, err)
		assert.Equal(t, "ayesha", user.Username)
		assert.Equal(t, "ayesha@campus.edu", user.Email)
		assert.Equal(t, "Ayesha Khan", user.FullName)
	})

	t.Run("missing bearer prefix", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), jwtService, nil)
		_, err := service.CurrentUser(context.Background(), "token-without-scheme")
		assert.Equal(t, apperrors.ErrInvalidToken, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), jwtService, nil)
		_, err := service.CurrentUser(context.Background(), "Bearer garbage")
		assert.Equal(t, apperrors.ErrInvalidToken, err)
	})

	t.Run("user no longer exists", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByUsername", mock.Anything, "ayesha").Return(nil, gorm.ErrRecordNotFound)

		token, err := jwtService.GenerateToken("ayesha")
		assert.NoError(t, err)

		service := NewAuthService(mockRepo, jwtService, nil)
		_, err = service.CurrentUser(context.Background(), "Bearer "+token)
		assert.Equal(t, apperrors.ErrInvalidToken, err)
	})
}

package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"petshop/internal/models"
	"petshop/internal/repositories"
	"petshop/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called()
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(id)
	return args.Error(0)
}

const testJWTSecret = "test_jwt_secret"

func newAuthService(repo repositories.UserRepository) *services.AuthService {
	return services.NewAuthService(repo, testJWTSecret, time.Hour, zap.NewNop().Sugar())
}

func TestNormalizeRUN(t *testing.T) {
	assert.Equal(t, "123456785", services.NormalizeRUN("12.345.678-5"))
	assert.Equal(t, "12345678K", services.NormalizeRUN("12345678-K"))
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)
	ctx := context.Background()

	in := services.RegisterInput{
		Email:     " Ana@Example.com ",
		Password:  "password123",
		RUN:       "12.345.678-5",
		FirstName: "Ana",
		LastName:  "Rojas",
	}

	mockRepo.On("GetByEmail", "ana@example.com").Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "ana@example.com" &&
			u.RUN == "123456785" &&
			u.Role == models.RoleClient &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password123")) == nil
	})).Return(nil).Once()

	user, err := authService.Register(ctx, in)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleClient, user.Role)
	mockRepo.AssertExpectations(t)

	// Email already registered
	mockRepo.On("GetByEmail", "ana@example.com").Return(&models.User{ID: "1"}, nil).Once()
	_, err = authService.Register(ctx, in)
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
	assert.Contains(t, err.Error(), "email 'ana@example.com' already registered")

	// RUN collision surfaces from the unique index
	mockRepo.On("GetByEmail", "ana@example.com").Return(nil, repositories.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(fmt.Errorf("failed to create user: %w", repositories.ErrDuplicate)).Once()
	_, err = authService.Register(ctx, in)
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)
	ctx := context.Background()

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &models.User{
		ID:        "user-123",
		Email:     "test@example.com",
		FirstName: "Test",
		Password:  string(hashedPassword),
		Role:      models.RoleAdmin,
	}

	mockRepo.On("GetByEmail", "test@example.com").Return(user, nil).Once()
	result, err := authService.Login(ctx, "TEST@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, models.RoleAdmin, result.User.Role)

	claims, err := authService.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, user.Email, claims["email"])
	assert.Equal(t, models.RoleAdmin, claims["role"])

	// Wrong password
	mockRepo.On("GetByEmail", "test@example.com").Return(user, nil).Once()
	_, err = authService.Login(ctx, "test@example.com", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Unknown user gets the same error
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, repositories.ErrNotFound).Once()
	_, err = authService.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := newAuthService(new(MockUserRepository))

	_, err := authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	foreignString, _ := foreign.SignedString([]byte("another_secret"))
	_, err = authService.ValidateToken(foreignString)
	assert.Error(t, err)
}

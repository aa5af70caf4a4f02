package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"rentdesk/internal/config"
	"rentdesk/internal/domain"
	"rentdesk/internal/service"
	"rentdesk/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-key-for-unit-tests",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 168 * time.Hour,
		Issuer:             "rentdesk-test",
	}
}

func hashPassword(password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash)
}

func testAdmin(password string) *domain.Admin {
	return &domain.Admin{
		ID:           uuid.New(),
		Name:         "Test Admin",
		Email:        "admin@test.com",
		PasswordHash: hashPassword(password),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	adminRepo := new(mocks.MockAdminRepo)
	svc := service.NewAuthService(adminRepo, testJWTConfig())

	admin := testAdmin("password123")
	adminRepo.On("GetByEmail", mock.Anything, "admin@test.com").Return(admin, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@test.com",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.True(t, result.ExpiresAt.After(time.Now()))
	adminRepo.AssertExpectations(t)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	adminRepo := new(mocks.MockAdminRepo)
	svc := service.NewAuthService(adminRepo, testJWTConfig())

	admin := testAdmin("password123")
	adminRepo.On("GetByEmail", mock.Anything, "admin@test.com").Return(admin, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@test.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmailMapsToInvalidCredentials(t *testing.T) {
	adminRepo := new(mocks.MockAdminRepo)
	svc := service.NewAuthService(adminRepo, testJWTConfig())

	adminRepo.On("GetByEmail", mock.Anything, "nobody@test.com").
		Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "nobody@test.com",
		Password: "password123",
	})

	// Unknown email and bad password are indistinguishable to the caller.
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveAdmin(t *testing.T) {
	adminRepo := new(mocks.MockAdminRepo)
	svc := service.NewAuthService(adminRepo, testJWTConfig())

	admin := testAdmin("password123")
	admin.IsActive = false
	adminRepo.On("GetByEmail", mock.Anything, "admin@test.com").Return(admin, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@test.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, domain.ErrAdminInactive)
}

func TestAuthService_ValidateToken(t *testing.T) {
	adminRepo := new(mocks.MockAdminRepo)
	svc := service.NewAuthService(adminRepo, testJWTConfig())

	admin := testAdmin("password123")
	adminRepo.On("GetByEmail", mock.Anything, "admin@test.com").Return(admin, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@test.com",
		Password: "password123",
	})
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, admin.ID, claims.AdminID)
	assert.Equal(t, admin.Email, claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestAuthService_ValidateToken_RejectsRefreshToken(t *testing.T) {
	adminRepo := new(mocks.MockAdminRepo)
	svc := service.NewAuthService(adminRepo, testJWTConfig())

	admin := testAdmin("password123")
	adminRepo.On("GetByEmail", mock.Anything, "admin@test.com").Return(admin, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@test.com",
		Password: "password123",
	})
	assert.NoError(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err, "refresh tokens must not pass access validation")
}

func TestAuthService_RefreshToken(t *testing.T) {
	adminRepo := new(mocks.MockAdminRepo)
	svc := service.NewAuthService(adminRepo, testJWTConfig())

	admin := testAdmin("password123")
	adminRepo.On("GetByEmail", mock.Anything, "admin@test.com").Return(admin, nil)
	adminRepo.On("GetByID", mock.Anything, admin.ID).Return(admin, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@test.com",
		Password: "password123",
	})
	assert.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestAuthService_RefreshToken_Garbage(t *testing.T) {
	adminRepo := new(mocks.MockAdminRepo)
	svc := service.NewAuthService(adminRepo, testJWTConfig())

	_, err := svc.RefreshToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

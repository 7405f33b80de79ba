package usecase_test

import (
	"context"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type AuthUserRepoMock struct{ mock.Mock }

func (m *AuthUserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *AuthUserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *AuthUserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *AuthUserRepoMock) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *AuthUserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *AuthUserRepoMock) IncrementTokenVersion(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type AuthRTRepoMock struct{ mock.Mock }

func (m *AuthRTRepoMock) Create(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *AuthRTRepoMock) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	rt, _ := args.Get(0).(*model.RefreshToken)
	return rt, args.Error(1)
}

func (m *AuthRTRepoMock) MarkUsed(ctx context.Context, tokenID string, usedAt time.Time) error {
	args := m.Called(ctx, tokenID, usedAt)
	return args.Error(0)
}

func (m *AuthRTRepoMock) Revoke(ctx context.Context, tokenID string, revokedAt time.Time) error {
	args := m.Called(ctx, tokenID, revokedAt)
	return args.Error(0)
}

func (m *AuthRTRepoMock) DeleteAllByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *AuthRTRepoMock) DeleteByID(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// 入力検証を素通しにするstub
type authValidatorStub struct {
	registerErr error
	loginErr    error
}

func (v *authValidatorStub) ValidateRegister(ctx context.Context, username, email, password string) error {
	return v.registerErr
}

func (v *authValidatorStub) ValidateLogin(ctx context.Context, email, password string) error {
	return v.loginErr
}

func (v *authValidatorStub) ValidateRefresh(ctx context.Context, refreshToken, userAgent string) error {
	return nil
}

func (v *authValidatorStub) ValidateForceLogout(ctx context.Context, targetUserID int64) error {
	return nil
}

func newAuthUsecaseForTest(users *AuthUserRepoMock, rt *AuthRTRepoMock, v usecase.AuthValidator) *usecase.AuthUsecase {
	cfg := config.Config{JWTSecret: "test_secret"}
	return usecase.NewAuthUsecase(cfg, users, rt, v)
}

// =====================
// Register
// =====================

// 登録時はハッシュ保存・初期ロールCUSTOMER
func TestAuthUsecase_Register_Success(t *testing.T) {
	uRepo := new(AuthUserRepoMock)
	rtRepo := new(AuthRTRepoMock)
	uc := newAuthUsecaseForTest(uRepo, rtRepo, &authValidatorStub{})

	uRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		if u.Username != "owner1" || u.Role != model.RoleCustomer || !u.IsActive {
			return false
		}
		//平文は保存されない
		return u.PasswordHash != "CorrectPW123!" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("CorrectPW123!")) == nil
	})).Return(nil)

	out, err := uc.Register(context.Background(), usecase.AuthRegisterRequest{
		Username: "owner1",
		Email:    "owner1@test.com",
		Password: "CorrectPW123!",
	})
	assert.NoError(t, err)
	assert.Equal(t, "owner1", out.User.Username)
	uRepo.AssertExpectations(t)
}

func TestAuthUsecase_Register_ValidationError(t *testing.T) {
	uRepo := new(AuthUserRepoMock)
	rtRepo := new(AuthRTRepoMock)
	uc := newAuthUsecaseForTest(uRepo, rtRepo, &authValidatorStub{registerErr: usecase.ErrValidation})

	_, err := uc.Register(context.Background(), usecase.AuthRegisterRequest{})
	assert.ErrorIs(t, err, usecase.ErrValidation)

	uRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// =====================
// Login
// =====================

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	uRepo := new(AuthUserRepoMock)
	rtRepo := new(AuthRTRepoMock)
	uc := newAuthUsecaseForTest(uRepo, rtRepo, &authValidatorStub{})

	hash, _ := bcrypt.GenerateFromPassword([]byte("CorrectPW123!"), bcrypt.DefaultCost)
	uRepo.On("FindByEmail", mock.Anything, "owner1@test.com").Return(&model.User{
		ID:           1,
		Email:        "owner1@test.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}, nil)

	_, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "owner1@test.com",
		Password: "wrong",
	}, "ua")
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestAuthUsecase_Login_InactiveUser(t *testing.T) {
	uRepo := new(AuthUserRepoMock)
	rtRepo := new(AuthRTRepoMock)
	uc := newAuthUsecaseForTest(uRepo, rtRepo, &authValidatorStub{})

	hash, _ := bcrypt.GenerateFromPassword([]byte("CorrectPW123!"), bcrypt.DefaultCost)
	uRepo.On("FindByEmail", mock.Anything, "owner1@test.com").Return(&model.User{
		ID:           1,
		Email:        "owner1@test.com",
		PasswordHash: string(hash),
		IsActive:     false,
	}, nil)

	_, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "owner1@test.com",
		Password: "CorrectPW123!",
	}, "ua")
	assert.ErrorIs(t, err, usecase.ErrForbidden)
}

func TestAuthUsecase_Login_Success_StoresHashedRefresh(t *testing.T) {
	uRepo := new(AuthUserRepoMock)
	rtRepo := new(AuthRTRepoMock)
	uc := newAuthUsecaseForTest(uRepo, rtRepo, &authValidatorStub{})

	hash, _ := bcrypt.GenerateFromPassword([]byte("CorrectPW123!"), bcrypt.DefaultCost)
	uRepo.On("FindByEmail", mock.Anything, "owner1@test.com").Return(&model.User{
		ID:           1,
		Username:     "owner1",
		Email:        "owner1@test.com",
		PasswordHash: string(hash),
		Role:         model.RoleOwner,
		IsActive:     true,
	}, nil)
	uRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	rtRepo.On("Create", mock.Anything, mock.MatchedBy(func(rt *model.RefreshToken) bool {
		//DBにはハッシュだけが入る
		return rt.UserID == 1 && rt.TokenHash != "" && rt.ID != ""
	})).Return(nil)

	out, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "owner1@test.com",
		Password: "CorrectPW123!",
	}, "ua")
	assert.NoError(t, err)
	assert.NotEmpty(t, out.Body.Token.AccessToken)
	assert.NotEmpty(t, out.RefreshTokenPlain)
	assert.NotEqual(t, out.RefreshTokenPlain, "")
	rtRepo.AssertExpectations(t)
}

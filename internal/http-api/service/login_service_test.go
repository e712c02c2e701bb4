package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"cointemper/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockKakaoClient mocks the KakaoClient interface
type MockKakaoClient struct {
	mock.Mock
}

func (m *MockKakaoClient) Exchange(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *MockKakaoClient) UserInfo(ctx context.Context, accessToken string) (*KakaoProfile, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*KakaoProfile), args.Error(1)
}

func (m *MockKakaoClient) Logout(ctx context.Context, accessToken string) error {
	args := m.Called(ctx, accessToken)
	return args.Error(0)
}

func (m *MockKakaoClient) AuthCodeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func newTestLoginService(userRepo *MockUserRepository, kakao *MockKakaoClient) LoginService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewLoginService(userRepo, NewAuthService(testAuthConfig()), kakao, logger)
}

func TestLogin_ProvisionsOnFirstSight(t *testing.T) {
	userRepo := new(MockUserRepository)
	kakao := new(MockKakaoClient)
	svc := newTestLoginService(userRepo, kakao)

	kakao.On("UserInfo", mock.Anything, "kakao-token").
		Return(&KakaoProfile{Nickname: "kakao-nick", Email: "newbie@example.com"}, nil)
	userRepo.On("FindByEmail", mock.Anything, "newbie@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 9
		}).Return(nil)

	token, user, err := svc.LoginWithAccessToken(context.Background(), "kakao-token")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(9), user.ID)
	assert.Equal(t, "newbie", user.Nickname, "default nickname is the email local part")
	assert.Equal(t, 0, user.Point)
	assert.True(t, user.Dark)
	assert.True(t, user.OnAlarm)
	assert.Equal(t, models.UserActive, user.Status)

	userRepo.AssertExpectations(t)
}

func TestLogin_ExistingUserNotReprovisioned(t *testing.T) {
	userRepo := new(MockUserRepository)
	kakao := new(MockKakaoClient)
	svc := newTestLoginService(userRepo, kakao)

	existing := &models.User{ID: 4, Email: "old@example.com", Nickname: "old"}
	kakao.On("UserInfo", mock.Anything, "kakao-token").
		Return(&KakaoProfile{Nickname: "ignored", Email: "old@example.com"}, nil)
	userRepo.On("FindByEmail", mock.Anything, "old@example.com").Return(existing, nil)

	token, user, err := svc.LoginWithAccessToken(context.Background(), "kakao-token")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, existing, user)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_WithCodeExchangesFirst(t *testing.T) {
	userRepo := new(MockUserRepository)
	kakao := new(MockKakaoClient)
	svc := newTestLoginService(userRepo, kakao)

	existing := &models.User{ID: 4, Email: "old@example.com", Nickname: "old"}
	kakao.On("Exchange", mock.Anything, "auth-code").Return("kakao-token", nil)
	kakao.On("UserInfo", mock.Anything, "kakao-token").
		Return(&KakaoProfile{Email: "old@example.com"}, nil)
	userRepo.On("FindByEmail", mock.Anything, "old@example.com").Return(existing, nil)

	token, user, err := svc.LoginWithCode(context.Background(), "auth-code")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(4), user.ID)
	kakao.AssertExpectations(t)
}

func TestUserNickname(t *testing.T) {
	t.Run("ExistingAccount", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newTestLoginService(userRepo, new(MockKakaoClient))

		userRepo.On("FindByID", mock.Anything, int64(4)).
			Return(&models.User{ID: 4, Nickname: "old"}, nil)

		nickname, err := svc.UserNickname(context.Background(), 4)

		assert.NoError(t, err)
		assert.Equal(t, "old", nickname)
	})

	t.Run("VanishedAccount", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newTestLoginService(userRepo, new(MockKakaoClient))

		userRepo.On("FindByID", mock.Anything, int64(4)).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.UserNickname(context.Background(), 4)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestLoginURL_FreshStatePerCall(t *testing.T) {
	userRepo := new(MockUserRepository)
	kakao := new(MockKakaoClient)
	svc := newTestLoginService(userRepo, kakao)

	kakao.On("AuthCodeURL", mock.AnythingOfType("string")).
		Return("https://kauth.kakao.com/oauth/authorize?state=x")

	_, state1 := svc.LoginURL()
	_, state2 := svc.LoginURL()

	assert.NotEmpty(t, state1)
	assert.NotEqual(t, state1, state2)
}

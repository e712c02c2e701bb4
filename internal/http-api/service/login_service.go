package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"cointemper/internal/http-api/models"
	"cointemper/internal/http-api/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrLoginRequest = errors.New("either an access token or an authorization code is required")

// LoginService turns a Kakao credential into a local session. The first time
// an email is seen a local account is provisioned with default preferences.
type LoginService interface {
	LoginURL() (url, state string)
	LoginWithCode(ctx context.Context, code string) (string, *models.User, error)
	LoginWithAccessToken(ctx context.Context, accessToken string) (string, *models.User, error)
	Logout(ctx context.Context, accessToken string) error
	UserNickname(ctx context.Context, userID int64) (string, error)
}

type loginService struct {
	userRepo    repository.UserRepository
	authService AuthService
	kakao       KakaoClient
	logger      *slog.Logger
}

func NewLoginService(
	userRepo repository.UserRepository,
	authService AuthService,
	kakao KakaoClient,
	logger *slog.Logger,
) LoginService {
	return &loginService{
		userRepo:    userRepo,
		authService: authService,
		kakao:       kakao,
		logger:      logger,
	}
}

// LoginURL builds the Kakao authorization URL together with a fresh state
// token the caller must round-trip.
func (s *loginService) LoginURL() (string, string) {
	state := uuid.New().String()
	return s.kakao.AuthCodeURL(state), state
}

// LoginWithCode exchanges an authorization code first, then logs in with the
// resulting access token.
func (s *loginService) LoginWithCode(ctx context.Context, code string) (string, *models.User, error) {
	accessToken, err := s.kakao.Exchange(ctx, code)
	if err != nil {
		return "", nil, err
	}
	return s.LoginWithAccessToken(ctx, accessToken)
}

// LoginWithAccessToken resolves the Kakao profile, provisions a local account
// on first sight of the email, and issues a session token.
func (s *loginService) LoginWithAccessToken(ctx context.Context, accessToken string) (string, *models.User, error) {
	profile, err := s.kakao.UserInfo(ctx, accessToken)
	if err != nil {
		return "", nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, profile.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, err
		}
		user = &models.User{
			Email:    profile.Email,
			Nickname: nicknameFromEmail(profile.Email),
			Point:    0,
			Dark:     true,
			OnAlarm:  true,
			Status:   models.UserActive,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return "", nil, err
		}
		s.logger.Info("provisioned_new_user", "email", profile.Email, "nickname", user.Nickname)
	}

	token, err := s.authService.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout passes the access token through to Kakao's session invalidation.
func (s *loginService) Logout(ctx context.Context, accessToken string) error {
	return s.kakao.Logout(ctx, accessToken)
}

// UserNickname resolves the display name behind a session, confirming the
// account still exists.
func (s *loginService) UserNickname(ctx context.Context, userID int64) (string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return user.Nickname, nil
}

// nicknameFromEmail uses the local part of the email as the default display
// name for newly provisioned accounts.
func nicknameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cointemper/internal/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/kakao"
	"golang.org/x/time/rate"
)

const (
	kakaoUserInfoURL = "https://kapi.kakao.com/v2/user/me"
	kakaoLogoutURL   = "https://kapi.kakao.com/v1/user/logout"

	// Kakao rejects bursts well below this; stay conservative on outbound calls
	kakaoRateLimit = 5
	kakaoRateBurst = 10
)

// KakaoProfile is the slice of the Kakao account we consume.
type KakaoProfile struct {
	Nickname string
	Email    string
}

// KakaoClient talks to the Kakao OAuth API.
type KakaoClient interface {
	Exchange(ctx context.Context, code string) (accessToken string, err error)
	UserInfo(ctx context.Context, accessToken string) (*KakaoProfile, error)
	Logout(ctx context.Context, accessToken string) error
	AuthCodeURL(state string) string
}

// kakaoUserResponse mirrors the fields of /v2/user/me we read.
type kakaoUserResponse struct {
	Properties struct {
		Nickname string `json:"nickname"`
	} `json:"properties"`
	KakaoAccount struct {
		Email string `json:"email"`
	} `json:"kakao_account"`
}

type kakaoClient struct {
	oauth       *oauth2.Config
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userInfoURL string
	logoutURL   string
}

// NewKakaoClient creates a Kakao API client with rate limiting on outbound
// requests.
func NewKakaoClient(cfg *config.Config) KakaoClient {
	return &kakaoClient{
		oauth: &oauth2.Config{
			ClientID:     cfg.KakaoClientID,
			ClientSecret: cfg.KakaoClientSecret,
			RedirectURL:  cfg.KakaoRedirectURI,
			Endpoint:     kakao.Endpoint,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(kakaoRateLimit), kakaoRateBurst),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		userInfoURL: kakaoUserInfoURL,
		logoutURL:   kakaoLogoutURL,
	}
}

// AuthCodeURL builds the Kakao authorization URL for the given state token.
func (c *kakaoClient) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// Exchange trades an authorization code for a Kakao access token.
func (c *kakaoClient) Exchange(ctx context.Context, code string) (string, error) {
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token.AccessToken, nil
}

// UserInfo fetches the nickname and email bound to a Kakao access token.
func (c *kakaoClient) UserInfo(ctx context.Context, accessToken string) (*KakaoProfile, error) {
	body, err := c.doRequest(ctx, http.MethodPost, c.userInfoURL, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch kakao user info: %w", err)
	}

	var resp kakaoUserResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode kakao user info: %w", err)
	}
	if resp.KakaoAccount.Email == "" {
		return nil, fmt.Errorf("kakao account has no email")
	}

	return &KakaoProfile{
		Nickname: resp.Properties.Nickname,
		Email:    resp.KakaoAccount.Email,
	}, nil
}

// Logout invalidates the Kakao session bound to the access token.
func (c *kakaoClient) Logout(ctx context.Context, accessToken string) error {
	_, err := c.doRequest(ctx, http.MethodPost, c.logoutURL, accessToken)
	if err != nil {
		return fmt.Errorf("kakao logout failed: %w", err)
	}
	return nil
}

func (c *kakaoClient) doRequest(ctx context.Context, method, url, accessToken string) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kakao API returned status %d", resp.StatusCode)
	}
	return body, nil
}

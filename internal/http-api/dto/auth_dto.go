package dto

import "cointemper/internal/http-api/models"

// KakaoLoginRequest carries either a Kakao access token obtained by the
// client, or an authorization code to exchange server-side. Exactly one of
// the two must be set.
type KakaoLoginRequest struct {
	AccessToken string `json:"access_token"`
	Code        string `json:"code"`
}

type LoginURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

type UserResponse struct {
	ID       int64             `json:"id"`
	Email    string            `json:"email"`
	Nickname string            `json:"nickname"`
	Point    int               `json:"point"`
	Dark     bool              `json:"dark"`
	OnAlarm  bool              `json:"on_alarm"`
	Status   models.UserStatus `json:"status"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// FromModelToUserResponse converts a User model to UserResponse DTO
func FromModelToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Nickname: user.Nickname,
		Point:    user.Point,
		Dark:     user.Dark,
		OnAlarm:  user.OnAlarm,
		Status:   user.Status,
	}
}

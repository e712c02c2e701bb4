package dto

import (
	"time"

	"cointemper/internal/http-api/models"
)

// PostCommentDTO is the payload for creating a comment or a reply.
// CommentGroup -1 starts a new thread; any other value must name the id of
// an existing top-level comment under the same symbol.
// Nickname and Password are required for anonymous authors only.
type PostCommentDTO struct {
	Content      string `json:"content" binding:"required,min=1,max=5000"`
	CommentGroup int64  `json:"comment_group" binding:"required"`
	Nickname     string `json:"nickname"`
	Password     string `json:"password"`
}

// CommentDTO is the payload for updating or deleting an existing comment.
// Password authorizes the anonymous path; the registered path is authorized
// by the bearer token instead.
type CommentDTO struct {
	ID       int64  `json:"id" binding:"required"`
	Content  string `json:"content"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// CommentResponse for returning comment information
type CommentResponse struct {
	ID           int64                `json:"id"`
	UserID       *int64               `json:"user_id,omitempty"`
	CoinSymbol   models.CoinSymbol    `json:"coin_symbol"`
	Nickname     string               `json:"nickname"`
	Content      string               `json:"content"`
	CommentGroup int64                `json:"comment_group"`
	Level        int                  `json:"level"`
	CreatedAt    time.Time            `json:"created_at"`
	UpCount      int                  `json:"up_count"`
	DownCount    int                  `json:"down_count"`
	ReportCount  int                  `json:"report_count"`
	Status       models.CommentStatus `json:"status"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:           comment.ID,
		UserID:       comment.UserID,
		CoinSymbol:   comment.CoinSymbol,
		Nickname:     comment.Nickname,
		Content:      comment.Content,
		CommentGroup: comment.CommentGroup,
		Level:        comment.Level,
		CreatedAt:    comment.CreatedAt,
		UpCount:      comment.UpCount,
		DownCount:    comment.DownCount,
		ReportCount:  comment.ReportCount,
		Status:       comment.Status,
	}
}

// FromModelToCommentResponseList converts a thread slice in one pass.
func FromModelToCommentResponseList(comments []models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, *FromModelToCommentResponse(&comments[i]))
	}
	return out
}

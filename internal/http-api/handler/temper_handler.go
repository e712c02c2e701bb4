package handler

import (
	"errors"
	"net/http"
	"strconv"

	"cointemper/internal/http-api/dto"
	"cointemper/internal/http-api/middleware"
	"cointemper/internal/http-api/models"
	"cointemper/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type TemperHandler struct {
	tracker        *service.TemperatureTracker
	commentService service.CommentService
}

func NewTemperHandler(tracker *service.TemperatureTracker, commentService service.CommentService) *TemperHandler {
	return &TemperHandler{
		tracker:        tracker,
		commentService: commentService,
	}
}

// RegisterRoutes registers the /temper surface.
func (h *TemperHandler) RegisterRoutes(router *gin.RouterGroup, authService service.AuthService) {
	router.GET("/coin-temper", h.CoinTemper)
	router.GET("/up/:symbol", middleware.RequireAuth(authService), h.TemperUp)
	router.GET("/down/:symbol", middleware.RequireAuth(authService), h.TemperDown)

	router.POST("/comment/:symbol", middleware.OptionalAuth(authService), h.CreateComment)
	router.GET("/comments/:symbol", h.ListComments)
	router.POST("/comment", middleware.OptionalAuth(authService), h.UpdateComment)
	router.DELETE("/comment", middleware.OptionalAuth(authService), h.DeleteComment)

	router.POST("/comment-report", h.ReportComment)
	router.POST("/comment-like", h.LikeComment)
	router.POST("/comment-dislike", h.DislikeComment)
}

// CoinTemper returns the derived temperature of every tracked symbol in the
// fixed {BTC, ETH, XRP} order.
// GET /temper/coin-temper
func (h *TemperHandler) CoinTemper(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracker.Snapshot())
}

// TemperUp records a buy signal for a symbol.
// GET /temper/up/:symbol
func (h *TemperHandler) TemperUp(c *gin.Context) {
	symbol, ok := pathSymbol(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"temperature": h.tracker.Increase(symbol)})
}

// TemperDown records a sell signal for a symbol.
// GET /temper/down/:symbol
func (h *TemperHandler) TemperDown(c *gin.Context) {
	symbol, ok := pathSymbol(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"temperature": h.tracker.Decrease(symbol)})
}

// CreateComment creates a top-level comment or a reply depending on the
// payload's comment group. A bearer token makes the comment registered;
// without one the payload must carry nickname and password.
// POST /temper/comment/:symbol
func (h *TemperHandler) CreateComment(c *gin.Context) {
	symbol, ok := pathSymbol(c)
	if !ok {
		return
	}

	var req dto.PostCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var userID *int64
	if uid, authed := middleware.CurrentUserID(c); authed {
		userID = &uid
	}

	var comment *models.Comment
	var err error
	if req.CommentGroup == models.TopLevelGroup {
		comment, err = h.commentService.Create(c.Request.Context(), req, symbol, userID)
	} else {
		comment, err = h.commentService.CreateReply(c.Request.Context(), req, symbol, userID)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrParentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAnonymousAuthor), errors.Is(err, service.ErrTopLevelGroup):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create comment"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToCommentResponse(comment))
}

// ListComments returns the full thread for a symbol.
// GET /temper/comments/:symbol
func (h *TemperHandler) ListComments(c *gin.Context) {
	symbol, ok := pathSymbol(c)
	if !ok {
		return
	}

	comments, err := h.commentService.List(c.Request.Context(), symbol)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list comments"})
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToCommentResponseList(comments))
}

// UpdateComment overwrites a comment's content for its owner. The owner is
// resolved from the bearer token when present, otherwise from the payload
// password.
// POST /temper/comment
func (h *TemperHandler) UpdateComment(c *gin.Context) {
	var req dto.CommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	cred, ok := requestCredential(c, req)
	if !ok {
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), req, cred)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update comment"})
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToCommentResponse(comment))
}

// DeleteComment soft-deletes a comment for its owner.
// DELETE /temper/comment
func (h *TemperHandler) DeleteComment(c *gin.Context) {
	var req dto.CommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cred, ok := requestCredential(c, req)
	if !ok {
		return
	}

	deleted, err := h.commentService.Delete(c.Request.Context(), req.ID, cred)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete comment"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": true})
}

// ReportComment increments a comment's report counter.
// POST /temper/comment-report?commentId=
func (h *TemperHandler) ReportComment(c *gin.Context) {
	commentID, ok := queryCommentID(c)
	if !ok {
		return
	}

	count, err := h.commentService.Report(c.Request.Context(), commentID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to report comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report_count": count})
}

// LikeComment increments a comment's up counter.
// POST /temper/comment-like?commentId=
func (h *TemperHandler) LikeComment(c *gin.Context) {
	commentID, ok := queryCommentID(c)
	if !ok {
		return
	}

	count, err := h.commentService.Like(c.Request.Context(), commentID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to like comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"up_count": count})
}

// DislikeComment increments a comment's down counter.
// POST /temper/comment-dislike?commentId=
func (h *TemperHandler) DislikeComment(c *gin.Context) {
	commentID, ok := queryCommentID(c)
	if !ok {
		return
	}

	count, err := h.commentService.Dislike(c.Request.Context(), commentID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to dislike comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"down_count": count})
}

// pathSymbol validates the :symbol path segment. Writes the 400 itself so
// handlers can bail with a bare return.
func pathSymbol(c *gin.Context) (models.CoinSymbol, bool) {
	symbol, err := models.ParseSymbol(c.Param("symbol"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return symbol, true
}

// queryCommentID parses the commentId query parameter.
func queryCommentID(c *gin.Context) (int64, bool) {
	commentID, err := strconv.ParseInt(c.Query("commentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment ID"})
		return 0, false
	}
	return commentID, true
}

// requestCredential builds the mutation credential: the bearer token wins,
// otherwise the payload password is required.
func requestCredential(c *gin.Context, req dto.CommentDTO) (service.Credential, bool) {
	if uid, authed := middleware.CurrentUserID(c); authed {
		return service.UserCredential{UserID: uid}, true
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required for anonymous comments"})
		return nil, false
	}
	return service.PasswordCredential{Password: req.Password}, true
}

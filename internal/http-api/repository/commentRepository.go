package repository

import (
	"context"

	"cointemper/internal/http-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	CreateTopLevel(ctx context.Context, comment *models.Comment) error
	Save(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID int64) (*models.Comment, error)
	GetGroupRoot(ctx context.Context, symbol models.CoinSymbol, group int64) (*models.Comment, error)
	GetBySymbol(ctx context.Context, symbol models.CoinSymbol) ([]models.Comment, error)
	IncrementUp(ctx context.Context, commentID int64) (int, error)
	IncrementDown(ctx context.Context, commentID int64) (int, error)
	IncrementReport(ctx context.Context, commentID int64) (int, error)
	UpdateStatus(ctx context.Context, commentID int64, from, to models.CommentStatus) (bool, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create a new comment
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// CreateTopLevel inserts a thread root and resolves the group sentinel to the
// new row's own id. Both statements run in one transaction so a failure never
// strands a row carrying the sentinel group.
func (r *commentRepository) CreateTopLevel(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Comment{}).
			Where("id = ?", comment.ID).
			UpdateColumn("comment_group", comment.ID).Error; err != nil {
			return err
		}
		comment.CommentGroup = comment.ID
		return nil
	})
}

// Save an existing comment
func (r *commentRepository) Save(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// GetByID retrieves a comment by its ID
func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Where("id = ?", commentID).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetGroupRoot retrieves the non-deleted top-level comment that roots the
// given group under the given symbol.
func (r *commentRepository) GetGroupRoot(ctx context.Context, symbol models.CoinSymbol, group int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Where("id = ? AND coin_symbol = ? AND level = 0 AND status <> ?", group, symbol, models.StatusDeleted).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetBySymbol retrieves the full thread for a symbol. The ordering guarantees
// a top-level comment always precedes its own replies.
func (r *commentRepository) GetBySymbol(ctx context.Context, symbol models.CoinSymbol) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("coin_symbol = ?", symbol).
		Order("comment_group, level, created_at").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Counter updates run as single atomic statements so concurrent callers never
// lose an increment. RETURNING hands back the value this statement produced.
func (r *commentRepository) IncrementUp(ctx context.Context, commentID int64) (int, error) {
	return r.increment(ctx, "up_cnt", commentID)
}

func (r *commentRepository) IncrementDown(ctx context.Context, commentID int64) (int, error) {
	return r.increment(ctx, "down_cnt", commentID)
}

func (r *commentRepository) IncrementReport(ctx context.Context, commentID int64) (int, error) {
	return r.increment(ctx, "report_cnt", commentID)
}

func (r *commentRepository) increment(ctx context.Context, column string, commentID int64) (int, error) {
	var count int
	result := r.db.WithContext(ctx).
		Raw("UPDATE coin_comments SET "+column+" = "+column+" + 1 WHERE id = ? RETURNING "+column, commentID).
		Scan(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return count, nil
}

// UpdateStatus applies a moderation transition only when the transition table
// allows it and the row still holds the expected prior status. Returns whether
// a row changed.
func (r *commentRepository) UpdateStatus(ctx context.Context, commentID int64, from, to models.CommentStatus) (bool, error) {
	if !from.CanTransition(to) {
		return false, nil
	}
	result := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ? AND status = ?", commentID, from).
		UpdateColumn("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

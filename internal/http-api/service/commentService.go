package service

import (
	"context"
	"errors"

	"cointemper/internal/http-api/dto"
	"cointemper/internal/http-api/models"
	"cointemper/internal/http-api/repository"
	"cointemper/internal/middleware/auth"

	"gorm.io/gorm"
)

var (
	// ErrNotFound covers both a missing comment and an ownership mismatch so
	// unauthorized callers cannot probe for existence.
	ErrNotFound        = errors.New("comment not found")
	ErrParentNotFound  = errors.New("parent comment not found")
	ErrTopLevelGroup   = errors.New("comment group must be -1 for a top-level comment")
	ErrAnonymousAuthor = errors.New("anonymous comments require nickname and password")
	ErrUserNotFound    = errors.New("user not found")
)

type CommentService interface {
	Create(ctx context.Context, payload dto.PostCommentDTO, symbol models.CoinSymbol, userID *int64) (*models.Comment, error)
	CreateReply(ctx context.Context, payload dto.PostCommentDTO, symbol models.CoinSymbol, userID *int64) (*models.Comment, error)
	List(ctx context.Context, symbol models.CoinSymbol) ([]models.Comment, error)
	Update(ctx context.Context, d dto.CommentDTO, cred Credential) (*models.Comment, error)
	Delete(ctx context.Context, commentID int64, cred Credential) (bool, error)
	Report(ctx context.Context, commentID int64) (int, error)
	Like(ctx context.Context, commentID int64) (int, error)
	Dislike(ctx context.Context, commentID int64) (int, error)
}

type commentService struct {
	commentRepo     repository.CommentRepository
	userRepo        repository.UserRepository
	cache           *CommentCache
	reportThreshold int
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	cache *CommentCache,
	reportThreshold int,
) CommentService {
	return &commentService{
		commentRepo:     commentRepo,
		userRepo:        userRepo,
		cache:           cache,
		reportThreshold: reportThreshold,
	}
}

// Create persists a new top-level comment. The payload's group sentinel is
// resolved to the persisted row's own id, making the comment its own group
// root.
func (s *commentService) Create(ctx context.Context, payload dto.PostCommentDTO, symbol models.CoinSymbol, userID *int64) (*models.Comment, error) {
	if payload.CommentGroup != models.TopLevelGroup {
		return nil, ErrTopLevelGroup
	}

	comment, err := s.buildComment(ctx, payload, symbol, userID)
	if err != nil {
		return nil, err
	}
	comment.CommentGroup = models.TopLevelGroup
	comment.Level = 0

	// The insert and the group fixup commit together or not at all, so no row
	// ever survives with the sentinel group.
	if err := s.commentRepo.CreateTopLevel(ctx, comment); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, symbol)
	return comment, nil
}

// CreateReply persists a reply under an existing group. The group must name a
// non-deleted top-level comment in the same symbol's thread.
func (s *commentService) CreateReply(ctx context.Context, payload dto.PostCommentDTO, symbol models.CoinSymbol, userID *int64) (*models.Comment, error) {
	root, err := s.commentRepo.GetGroupRoot(ctx, symbol, payload.CommentGroup)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParentNotFound
		}
		return nil, err
	}

	comment, err := s.buildComment(ctx, payload, symbol, userID)
	if err != nil {
		return nil, err
	}
	comment.CommentGroup = root.ID
	comment.Level = root.Level + 1

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, symbol)
	return comment, nil
}

// buildComment assembles the common fields of a new comment. Registered
// authors get their account nickname; anonymous authors must supply a
// nickname and a password, which is stored hashed.
func (s *commentService) buildComment(ctx context.Context, payload dto.PostCommentDTO, symbol models.CoinSymbol, userID *int64) (*models.Comment, error) {
	comment := &models.Comment{
		CoinSymbol: symbol,
		Content:    payload.Content,
		Status:     models.StatusActive,
	}

	if userID != nil {
		user, err := s.userRepo.FindByID(ctx, *userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		comment.UserID = userID
		comment.Nickname = user.Nickname
		return comment, nil
	}

	if payload.Nickname == "" || payload.Password == "" {
		return nil, ErrAnonymousAuthor
	}
	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}
	comment.Nickname = payload.Nickname
	comment.PasswordHash = hash
	return comment, nil
}

// List returns the full thread for a symbol, roots before their replies.
func (s *commentService) List(ctx context.Context, symbol models.CoinSymbol) ([]models.Comment, error) {
	if cached, ok := s.cache.Get(ctx, symbol); ok {
		return cached, nil
	}

	comments, err := s.commentRepo.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, symbol, comments)
	return comments, nil
}

// Update overwrites the content (and, for anonymous comments, the nickname)
// of a comment the credential owns.
func (s *commentService) Update(ctx context.Context, d dto.CommentDTO, cred Credential) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, d.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !cred.authorizes(comment) {
		return nil, ErrNotFound
	}
	if comment.Status == models.StatusDeleted {
		return nil, ErrNotFound
	}

	if d.Content != "" {
		comment.Content = d.Content
	}
	if d.Nickname != "" && comment.IsAnonymous() {
		comment.Nickname = d.Nickname
	}

	if err := s.commentRepo.Save(ctx, comment); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, comment.CoinSymbol)
	return comment, nil
}

// Delete soft-deletes a comment the credential owns. Deleting an already
// deleted comment reports success, so the operation is idempotent.
func (s *commentService) Delete(ctx context.Context, commentID int64, cred Credential) (bool, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if !cred.authorizes(comment) {
		return false, nil
	}

	if comment.Status == models.StatusDeleted {
		return true, nil
	}

	ok, err := s.commentRepo.UpdateStatus(ctx, comment.ID, comment.Status, models.StatusDeleted)
	if err != nil {
		return false, err
	}
	if !ok {
		// Lost a race with a report transition; retry from the refreshed
		// status when the table still allows the deletion.
		fresh, err := s.commentRepo.GetByID(ctx, comment.ID)
		if err != nil {
			return false, err
		}
		if fresh.Status.CanTransition(models.StatusDeleted) {
			if ok, err = s.commentRepo.UpdateStatus(ctx, comment.ID, fresh.Status, models.StatusDeleted); err != nil {
				return false, err
			} else if !ok {
				return false, nil
			}
		}
	}

	s.cache.Invalidate(ctx, comment.CoinSymbol)
	return true, nil
}

// Report increments the report counter and flips an Active comment to
// Reported once the counter reaches the configured threshold. Any caller may
// report; there is no per-caller dedup.
func (s *commentService) Report(ctx context.Context, commentID int64) (int, error) {
	count, err := s.commentRepo.IncrementReport(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	if count >= s.reportThreshold {
		// Conditional on Active so a deleted comment is never resurrected.
		if _, err := s.commentRepo.UpdateStatus(ctx, commentID, models.StatusActive, models.StatusReported); err != nil {
			return 0, err
		}
	}

	return count, nil
}

// Like increments the up counter. No auth and no duplicate-vote guard, same
// as the rest of the moderation counters.
func (s *commentService) Like(ctx context.Context, commentID int64) (int, error) {
	count, err := s.commentRepo.IncrementUp(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return count, nil
}

// Dislike increments the down counter.
func (s *commentService) Dislike(ctx context.Context, commentID int64) (int, error) {
	count, err := s.commentRepo.IncrementDown(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return count, nil
}

package models

import "time"

// CommentStatus is the moderation state of a comment. Transitions are
// one-directional: Active -> Reported, Active -> Deleted, Reported -> Deleted.
// Deleted is terminal.
type CommentStatus string

const (
	StatusActive   CommentStatus = "A"
	StatusReported CommentStatus = "R"
	StatusDeleted  CommentStatus = "D"
)

// CanTransition reports whether moving from s to next is a valid moderation
// step. Self-transitions are rejected along with anything that would leave
// the Deleted state or un-report a comment.
func (s CommentStatus) CanTransition(next CommentStatus) bool {
	switch s {
	case StatusActive:
		return next == StatusReported || next == StatusDeleted
	case StatusReported:
		return next == StatusDeleted
	default:
		return false
	}
}

// TopLevelGroup is the sentinel a submission payload carries when the comment
// starts a new thread. The service resolves it to the persisted row's own id.
const TopLevelGroup int64 = -1

// Comment is a single entry in a coin's sentiment thread. Deleting a comment
// only flips Status so reply threads and counters stay intact.
type Comment struct {
	ID           int64         `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID       *int64        `json:"user_id,omitempty" gorm:"index"` // nil for anonymous authors
	CoinSymbol   CoinSymbol    `json:"coin_symbol" gorm:"type:varchar(8);not null;index"`
	Nickname     string        `json:"nickname" gorm:"not null"`
	PasswordHash string        `json:"-" gorm:"column:password_hash"` // anonymous comments only
	Content      string        `json:"content" gorm:"not null;type:text"`
	CommentGroup int64         `json:"comment_group" gorm:"not null;index"`
	Level        int           `json:"level" gorm:"not null;default:0"`
	CreatedAt    time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpCount      int           `json:"up_count" gorm:"column:up_cnt;not null;default:0"`
	DownCount    int           `json:"down_count" gorm:"column:down_cnt;not null;default:0"`
	ReportCount  int           `json:"report_count" gorm:"column:report_cnt;not null;default:0"`
	Status       CommentStatus `json:"status" gorm:"type:varchar(1);not null;default:'A'"`
}

func (Comment) TableName() string {
	return "coin_comments"
}

// IsTopLevel reports whether the comment roots its own thread.
func (c *Comment) IsTopLevel() bool {
	return c.Level == 0
}

// IsAnonymous reports whether the comment is owned by a password rather than
// a registered account.
func (c *Comment) IsAnonymous() bool {
	return c.UserID == nil
}

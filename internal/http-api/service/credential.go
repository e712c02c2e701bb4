package service

import (
	"cointemper/internal/http-api/models"
	"cointemper/internal/middleware/auth"
)

// Credential identifies who is attempting to mutate a comment. A comment is
// owned either by a registered account or by the password supplied when it
// was posted anonymously, never both.
type Credential interface {
	authorizes(comment *models.Comment) bool
}

// UserCredential authorizes the registered-author path.
type UserCredential struct {
	UserID int64
}

func (c UserCredential) authorizes(comment *models.Comment) bool {
	return comment.UserID != nil && *comment.UserID == c.UserID
}

// PasswordCredential authorizes the anonymous-author path.
type PasswordCredential struct {
	Password string
}

func (c PasswordCredential) authorizes(comment *models.Comment) bool {
	if !comment.IsAnonymous() || comment.PasswordHash == "" {
		return false
	}
	return auth.VerifyPassword(comment.PasswordHash, c.Password) == nil
}

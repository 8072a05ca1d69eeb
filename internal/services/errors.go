package services

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrNicknameTaken      = errors.New("nickname already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrWrongPassword      = errors.New("current password is incorrect")

	ErrUserNotFound     = errors.New("user not found")
	ErrReportNotFound   = errors.New("report not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrTagNotFound      = errors.New("tag not found")

	ErrTitleTaken         = errors.New("title already in use")
	ErrCategoryInUse      = errors.New("category is still used by reports")
	ErrManagerRemoval     = errors.New("the project manager cannot be removed")
	ErrNotMember          = errors.New("user is not a member of the project")
	ErrUserManagesProject = errors.New("user manages a project")
	ErrSelfDelete         = errors.New("admins cannot delete themselves")
	ErrSelfDemote         = errors.New("admins cannot demote themselves")
	ErrBlockedPromotion   = errors.New("blocked users cannot be promoted")
	ErrBlockAdmin         = errors.New("admins cannot be blocked")

	// ErrValidation is wrapped by every input validation failure.
	ErrValidation = errors.New("validation failed")
)

// notFound maps gorm.ErrRecordNotFound to sentinel and passes anything else
// through.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

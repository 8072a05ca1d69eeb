package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/access"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/config"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/models"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/tenant"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db       *gorm.DB
	comments *CommentService
	perPage  int
}

func NewUserService(db *gorm.DB, cfg *config.Config) *UserService {
	return &UserService{db: db, comments: NewCommentService(db, cfg), perPage: cfg.ItemsPerPage}
}

func (s *UserService) List(tenantID string, page int) (*dto.PageResponse[models.User], error) {
	q := s.db.Model(&models.User{}).Scopes(tenant.ForTenant(tenantID))

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	p := NewPage(page, s.perPage)
	var users []models.User
	if err := q.Session(&gorm.Session{}).
		Order("created_at ASC").
		Limit(p.Size).Offset(p.Offset()).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	resp := dto.NewPage(users, total, p.Number, p.Size)
	return &resp, nil
}

func (s *UserService) Get(tenantID string, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Scopes(tenant.ForTenant(tenantID)).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &user, nil
}

// Update changes nickname and email. Everyone but an admin must confirm with
// the target's current password.
func (s *UserService) Update(tenantID string, actor access.Actor, target *models.User, req *dto.UpdateUserRequest) (*models.User, error) {
	if !actor.IsAdmin() {
		if err := bcrypt.CompareHashAndPassword([]byte(target.Password), []byte(req.CurrentPassword)); err != nil {
			return nil, ErrWrongPassword
		}
	}

	updates := map[string]interface{}{}

	if nickname := strings.TrimSpace(req.Nickname); nickname != "" && nickname != target.Nickname {
		if !ValidNickname(nickname) {
			return nil, fmt.Errorf("%w: nickname may only contain letters, digits and dots", ErrValidation)
		}
		taken, err := s.taken(tenantID, "nickname", nickname, target.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrNicknameTaken
		}
		updates["nickname"] = nickname
	}

	if email := normalizeEmail(req.Email); email != "" && email != target.Email {
		if !validEmail(email) {
			return nil, fmt.Errorf("%w: invalid email", ErrValidation)
		}
		taken, err := s.taken(tenantID, "email", email, target.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
		updates["email"] = email
	}

	if len(updates) == 0 {
		return target, nil
	}
	if err := s.db.Model(target).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return target, nil
}

// ChangePassword sets a new password and revokes the target's refresh tokens.
func (s *UserService) ChangePassword(tenantID string, actor access.Actor, target *models.User, req *dto.ChangePasswordRequest) error {
	if !actor.IsAdmin() {
		if err := bcrypt.CompareHashAndPassword([]byte(target.Password), []byte(req.CurrentPassword)); err != nil {
			return ErrWrongPassword
		}
	}
	if len(req.NewPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(target).Update("password", string(hash)).Error; err != nil {
			return err
		}
		return tx.Model(&models.RefreshToken{}).
			Scopes(tenant.ForTenant(tenantID)).
			Where("user_id = ?", target.ID).
			Update("revoked", true).Error
	})
}

func (s *UserService) Promote(tenantID string, target *models.User) (*models.User, error) {
	if target.IsBlocked {
		return nil, ErrBlockedPromotion
	}
	if target.IsAdmin() {
		return target, nil
	}
	target.AddRole(models.RoleAdmin)
	if err := s.saveRoles(tenantID, target); err != nil {
		return nil, err
	}
	return target, nil
}

// Demote removes the admin role. It only refuses an admin demoting
// themselves; it does not check whether another admin remains.
func (s *UserService) Demote(tenantID string, actor access.Actor, target *models.User) (*models.User, error) {
	if actor.Is(target.ID) {
		return nil, ErrSelfDemote
	}
	target.Roles = slices.DeleteFunc(target.Roles, func(r string) bool { return r == models.RoleAdmin })
	if err := s.saveRoles(tenantID, target); err != nil {
		return nil, err
	}
	return target, nil
}

func (s *UserService) ToggleBlock(tenantID string, target *models.User) (*models.User, error) {
	if target.IsAdmin() {
		return nil, ErrBlockAdmin
	}
	blocked := !target.IsBlocked
	if err := s.db.Model(&models.User{}).
		Scopes(tenant.ForTenant(tenantID)).
		Where("id = ?", target.ID).
		Update("is_blocked", blocked).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle block: %w", err)
	}
	target.IsBlocked = blocked
	return target, nil
}

// Delete removes the user with their comments, reports and memberships. A
// project manager cannot be deleted, and neither can an admin deleting
// themselves.
func (s *UserService) Delete(tenantID string, actor access.Actor, target *models.User) error {
	manages, err := managesProject(s.db, tenantID, target.ID)
	if err != nil {
		return err
	}
	if manages {
		return ErrUserManagesProject
	}
	if target.IsAdmin() && actor.Is(target.ID) {
		return ErrSelfDelete
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		comments := s.comments.WithTx(tx)
		if err := comments.DeleteByAuthor(tenantID, target.ID); err != nil {
			return err
		}
		if err := comments.DeleteOnReportsBy(tenantID, target.ID); err != nil {
			return err
		}

		authored := tx.Model(&models.Report{}).
			Select("id").
			Where("tenant_id = ? AND author_id = ?", tenantID, target.ID)
		if err := tx.Exec("DELETE FROM report_tags WHERE report_id IN (?)", authored).Error; err != nil {
			return err
		}
		if err := tx.Scopes(tenant.ForTenant(tenantID)).
			Where("author_id = ?", target.ID).
			Delete(&models.Report{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Report{}).
			Scopes(tenant.ForTenant(tenantID)).
			Where("assigned_to_id = ?", target.ID).
			Update("assigned_to_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_members WHERE user_id = ?", target.ID).Error; err != nil {
			return err
		}
		if err := tx.Scopes(tenant.ForTenant(tenantID)).
			Where("user_id = ?", target.ID).
			Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Scopes(tenant.ForTenant(tenantID)).Delete(&models.User{}, "id = ?", target.ID).Error
	})
}

func (s *UserService) saveRoles(tenantID string, target *models.User) error {
	for _, role := range target.Roles {
		if !models.ValidRole(role) {
			return fmt.Errorf("%w: unknown role %q", ErrValidation, role)
		}
	}
	if err := s.db.Model(&models.User{}).
		Scopes(tenant.ForTenant(tenantID)).
		Where("id = ?", target.ID).
		Update("roles", target.Roles).Error; err != nil {
		return fmt.Errorf("failed to save roles: %w", err)
	}
	return nil
}

func (s *UserService) taken(tenantID, column, value string, except uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).
		Scopes(tenant.ForTenant(tenantID)).
		Where(column+" = ? AND id <> ?", value, except).
		Count(&count).Error
	return count > 0, err
}

func normalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}

package service

import (
	"strings"

	"go.uber.org/zap"

	"bookswap/internal/apperr"
	"bookswap/internal/domain"
	"bookswap/pkg/utils"
)

type UserService struct {
	users domain.UserRepository
	log   *zap.Logger
}

func NewUserService(users domain.UserRepository, log *zap.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) Register(email, username, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)
	if email == "" {
		return nil, apperr.Validation("email is required")
	}
	if username == "" {
		return nil, apperr.Validation("username is required")
	}
	if password == "" {
		return nil, apperr.Validation("password is required")
	}

	if u, err := s.users.FindByEmail(email); err != nil {
		return nil, apperr.Internal("find by email", err)
	} else if u != nil {
		return nil, apperr.Validation("email already registered")
	}
	if u, err := s.users.FindByUsername(username); err != nil {
		return nil, apperr.Internal("find by username", err)
	} else if u != nil {
		return nil, apperr.Validation("username already taken")
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		Username:     username,
		PasswordHash: utils.HashPassword(password),
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(u); err != nil {
		return nil, apperr.Internal("create user", err)
	}
	return u, nil
}

func (s *UserService) Authenticate(email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, apperr.Internal("find by email", err)
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	return u, nil
}

func (s *UserService) Get(id string) (*domain.User, error) {
	u, err := s.users.FindByID(id)
	if err != nil {
		return nil, apperr.Internal("find user", err)
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	return u, nil
}

func (s *UserService) GetProfile(userID string) (*Profile, error) {
	u, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	return profileOf(u), nil
}

func (s *UserService) UpdateProfile(userID string, p Profile) (*Profile, error) {
	u, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	switch p.PreferredMethod {
	case domain.ContactNone, domain.ContactEmail, domain.ContactPhone:
	default:
		return nil, apperr.Validation("preferredMethod must be EMAIL, PHONE or empty")
	}
	if name := strings.TrimSpace(p.DisplayName); name != "" && name != u.Username {
		if other, err := s.users.FindByUsername(name); err != nil {
			return nil, apperr.Internal("find by username", err)
		} else if other != nil {
			return nil, apperr.Validation("username already taken")
		}
		u.Username = name
	}
	u.PublicContact = p.PublicContact
	u.PreferredMethod = p.PreferredMethod
	u.ContactEmail = strings.TrimSpace(p.ContactEmail)
	u.ContactPhone = strings.TrimSpace(p.ContactPhone)

	if err := s.users.Update(u); err != nil {
		return nil, apperr.Internal("update user", err)
	}
	return profileOf(u), nil
}

// EnsureAdmin is the idempotent startup bootstrap: it creates the admin
// account once, guarded by a username lookup, and is a no-op afterwards.
func (s *UserService) EnsureAdmin(username, password, email string) error {
	u, err := s.users.FindByUsername(username)
	if err != nil {
		return err
	}
	if u != nil {
		s.log.Info("admin already present", zap.String("username", username))
		return nil
	}
	if email == "" {
		email = username + "@example.com"
	}
	admin := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		Username:     username,
		PasswordHash: utils.HashPassword(password),
		Role:         domain.RoleAdmin,
	}
	if err := s.users.Create(admin); err != nil {
		return err
	}
	s.log.Info("admin created", zap.String("username", username))
	return nil
}

func (s *UserService) List(q string, offset, limit int, withBanned bool) ([]domain.User, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	users, total, err := s.users.List(strings.TrimSpace(q), offset, limit, withBanned)
	if err != nil {
		return nil, 0, apperr.Internal("list users", err)
	}
	return users, total, nil
}

// Ban soft-deletes a user; their data stays referenced by listings and swaps.
func (s *UserService) Ban(id string) error {
	u, err := s.users.FindByID(id)
	if err != nil {
		return apperr.Internal("find user", err)
	}
	if u == nil {
		return apperr.NotFound("user not found")
	}
	if err := s.users.SoftDelete(id); err != nil {
		return apperr.Internal("ban user", err)
	}
	s.log.Info("user banned", zap.String("user_id", id))
	return nil
}

func profileOf(u *domain.User) *Profile {
	return &Profile{
		DisplayName:     u.Username,
		PublicContact:   u.PublicContact,
		PreferredMethod: u.PreferredMethod,
		ContactEmail:    u.ContactEmail,
		ContactPhone:    u.ContactPhone,
	}
}

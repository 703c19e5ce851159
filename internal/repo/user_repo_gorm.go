package repo

import (
	"errors"

	"gorm.io/gorm"

	"bookswap/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(u *domain.User) error {
	touchInsert(&u.CreatedAt, &u.UpdatedAt)
	return r.db.Create(u).Error
}

func (r *UserRepo) FindByID(id string) (*domain.User, error) {
	return r.findOne("id = ?", id)
}

func (r *UserRepo) FindByEmail(email string) (*domain.User, error) {
	return r.findOne("email = ?", email)
}

func (r *UserRepo) FindByUsername(username string) (*domain.User, error) {
	return r.findOne("username = ?", username)
}

func (r *UserRepo) findOne(query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List(q string, offset, limit int, withBanned bool) ([]domain.User, int64, error) {
	tx := r.db.Model(&domain.User{})
	if withBanned {
		tx = tx.Unscoped()
	}
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("email LIKE ? OR username LIKE ?", like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []domain.User
	if err := tx.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepo) Update(u *domain.User) error {
	touchUpdate(&u.UpdatedAt)
	return r.db.Save(u).Error
}

func (r *UserRepo) SoftDelete(id string) error {
	return r.db.Where("id = ?", id).Delete(&domain.User{}).Error
}

package users

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcryptCost mirrors the cost the account passwords were originally hashed with.
const bcryptCost = 12

type Repo struct{ db *gorm.DB }

func AutoMigrate(db *gorm.DB) error { return db.AutoMigrate(&User{}) }
func New(db *gorm.DB) *Repo         { return &Repo{db: db} }

func HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (r *Repo) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}
func (r *Repo) Update(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Save(u).Error
}
func (r *Repo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&User{}, id).Error
}
func (r *Repo) Get(ctx context.Context, id uint) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
func (r *Repo) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetAluno fetches the user only when it carries the aluno role.
func (r *Repo) GetAluno(ctx context.Context, id uint) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).Where("id = ? AND cargo = ?", id, CargoAluno).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// ListAlunos lists participant accounts ordered by nome.
func (r *Repo) ListAlunos(ctx context.Context) ([]*User, error) {
	var arr []*User
	if err := r.db.WithContext(ctx).Where("cargo = ?", CargoAluno).Order("nome ASC").Find(&arr).Error; err != nil {
		return nil, err
	}
	return arr, nil
}

// CountAlunos counts participant accounts.
func (r *Repo) CountAlunos(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&User{}).Where("cargo = ?", CargoAluno).Count(&n).Error
	return n, err
}

// EmailTakenByOther reports whether email belongs to a user other than id.
func (r *Repo) EmailTakenByOther(ctx context.Context, email string, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&User{}).Where("email = ? AND id <> ?", email, id).Count(&n).Error
	return n > 0, err
}

// Verify checks credentials and returns the account on success.
func (r *Repo) Verify(ctx context.Context, email, senha string) (*User, error) {
	u, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Senha), []byte(senha)); err != nil {
		return nil, errors.New("invalid credentials")
	}
	return u, nil
}

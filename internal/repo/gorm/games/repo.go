package games

import (
	"context"

	"gorm.io/gorm"
)

// Repo provides GORM-based persistence for game definitions.
type Repo struct{ db *gorm.DB }

func AutoMigrate(db *gorm.DB) error { return db.AutoMigrate(&Game{}) }
func NewRepo(db *gorm.DB) *Repo     { return &Repo{db: db} }

func (r *Repo) Create(ctx context.Context, g *Game) error {
	return r.db.WithContext(ctx).Create(g).Error
}
func (r *Repo) Update(ctx context.Context, g *Game) error { return r.db.WithContext(ctx).Save(g).Error }
func (r *Repo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Game{}, id).Error
}
func (r *Repo) Get(ctx context.Context, id uint) (*Game, error) {
	var g Game
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}
func (r *Repo) List(ctx context.Context) ([]*Game, error) {
	var arr []*Game
	if err := r.db.WithContext(ctx).Order("nome ASC").Find(&arr).Error; err != nil {
		return nil, err
	}
	return arr, nil
}
func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Game{}).Count(&n).Error
	return n, err
}

// CountByIDs counts how many of the given ids exist. Used to validate
// jogoIds on event creation: a mismatch means some id is unknown.
func (r *Repo) CountByIDs(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&Game{}).Where("id IN ?", ids).Count(&n).Error
	return n, err
}

package certificates

import (
	"context"

	"gorm.io/gorm"
)

// Repo provides GORM-based persistence for certificates.
type Repo struct{ db *gorm.DB }

func AutoMigrate(db *gorm.DB) error { return db.AutoMigrate(&Certificate{}) }
func NewRepo(db *gorm.DB) *Repo     { return &Repo{db: db} }

func (r *Repo) Create(ctx context.Context, c *Certificate) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// Get loads one certificate with its event and participant.
func (r *Repo) Get(ctx context.Context, id uint) (*Certificate, error) {
	var c Certificate
	if err := r.db.WithContext(ctx).Preload("Evento").Preload("Participante").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByPair returns the certificate for (evento, participante) if any.
func (r *Repo) GetByPair(ctx context.Context, eventoID, participanteID uint) (*Certificate, error) {
	var c Certificate
	err := r.db.WithContext(ctx).
		Where("evento_id = ? AND participante_id = ?", eventoID, participanteID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all certificates (newest first) with relations loaded.
func (r *Repo) List(ctx context.Context) ([]*Certificate, error) {
	var arr []*Certificate
	err := r.db.WithContext(ctx).
		Preload("Evento").Preload("Participante").
		Order("data_emissao DESC").
		Find(&arr).Error
	if err != nil {
		return nil, err
	}
	return arr, nil
}

// ListByParticipant returns one user's certificates (newest first).
func (r *Repo) ListByParticipant(ctx context.Context, participanteID uint) ([]*Certificate, error) {
	var arr []*Certificate
	err := r.db.WithContext(ctx).
		Where("participante_id = ?", participanteID).
		Preload("Evento").Preload("Participante").
		Order("data_emissao DESC").
		Find(&arr).Error
	if err != nil {
		return nil, err
	}
	return arr, nil
}

package enrollments

import (
	"context"

	"gorm.io/gorm"
)

// Repo provides GORM-based persistence for event enrollments.
type Repo struct{ db *gorm.DB }

func AutoMigrate(db *gorm.DB) error { return db.AutoMigrate(&Enrollment{}) }
func NewRepo(db *gorm.DB) *Repo     { return &Repo{db: db} }

func (r *Repo) Create(ctx context.Context, e *Enrollment) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *Repo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Enrollment{}, id).Error
}

// Get loads one enrollment with its event and participant.
func (r *Repo) Get(ctx context.Context, id uint) (*Enrollment, error) {
	var e Enrollment
	if err := r.db.WithContext(ctx).Preload("Evento").Preload("Participante").First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// GetByPair returns the enrollment for (evento, participante) if any.
func (r *Repo) GetByPair(ctx context.Context, eventoID, participanteID uint) (*Enrollment, error) {
	var e Enrollment
	err := r.db.WithContext(ctx).
		Where("evento_id = ? AND participante_id = ?", eventoID, participanteID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListByEvent lists an event's enrollments (oldest first) with participants.
func (r *Repo) ListByEvent(ctx context.Context, eventoID uint) ([]*Enrollment, error) {
	var arr []*Enrollment
	err := r.db.WithContext(ctx).
		Where("evento_id = ?", eventoID).
		Preload("Participante").
		Order("data_inscricao ASC").
		Find(&arr).Error
	if err != nil {
		return nil, err
	}
	return arr, nil
}

// ListConfirmedByEvent lists confirmed enrollments with participants, for
// certificate issuance.
func (r *Repo) ListConfirmedByEvent(ctx context.Context, eventoID uint) ([]*Enrollment, error) {
	var arr []*Enrollment
	err := r.db.WithContext(ctx).
		Where("evento_id = ? AND status = ?", eventoID, StatusConfirmada).
		Preload("Participante").
		Find(&arr).Error
	if err != nil {
		return nil, err
	}
	return arr, nil
}

// ListByParticipant lists a user's enrollments (newest first) with events.
func (r *Repo) ListByParticipant(ctx context.Context, participanteID uint) ([]*Enrollment, error) {
	var arr []*Enrollment
	err := r.db.WithContext(ctx).
		Where("participante_id = ?", participanteID).
		Preload("Evento").
		Order("data_inscricao DESC").
		Find(&arr).Error
	if err != nil {
		return nil, err
	}
	return arr, nil
}

// DeleteByEvent removes all enrollments of an event (event deletion cascade).
func (r *Repo) DeleteByEvent(ctx context.Context, eventoID uint) error {
	return r.db.WithContext(ctx).Where("evento_id = ?", eventoID).Delete(&Enrollment{}).Error
}

package records

import (
	"context"

	"gorm.io/gorm"
)

// Filter narrows List/Count to records of one event, game or participant.
// Zero values mean "no filter".
type Filter struct {
	EventoID       uint
	JogoID         uint
	ParticipanteID uint
}

// Repo provides GORM-based persistence for play records.
type Repo struct{ db *gorm.DB }

func AutoMigrate(db *gorm.DB) error { return db.AutoMigrate(&PlayRecord{}, &RecordParticipant{}) }
func NewRepo(db *gorm.DB) *Repo     { return &Repo{db: db} }

// Create persists the record and its participant rows in one transaction.
func (r *Repo) Create(ctx context.Context, rec *PlayRecord, participanteIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return err
		}
		for _, pid := range participanteIDs {
			if err := tx.Create(&RecordParticipant{RegistroID: rec.ID, ParticipanteID: pid}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repo) filtered(ctx context.Context, f Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&PlayRecord{})
	if f.EventoID != 0 {
		q = q.Where("evento_id = ?", f.EventoID)
	}
	if f.JogoID != 0 {
		q = q.Where("jogo_id = ?", f.JogoID)
	}
	if f.ParticipanteID != 0 {
		q = q.Where("id IN (?)", r.db.Model(&RecordParticipant{}).Select("registro_id").Where("participante_id = ?", f.ParticipanteID))
	}
	return q
}

// List returns one page of records (newest dataInicio first) with all
// relations loaded.
func (r *Repo) List(ctx context.Context, f Filter, page, limit int) ([]*PlayRecord, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	var arr []*PlayRecord
	err := r.filtered(ctx, f).
		Preload("Jogo").Preload("Evento").Preload("Sala").
		Preload("Participantes").Preload("Participantes.Participante").
		Order("data_inicio DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&arr).Error
	if err != nil {
		return nil, err
	}
	return arr, nil
}

// ListFiltered returns every matching record (no pagination) with all
// relations loaded, for the per-game and per-event detail views.
func (r *Repo) ListFiltered(ctx context.Context, f Filter) ([]*PlayRecord, error) {
	var arr []*PlayRecord
	err := r.filtered(ctx, f).
		Preload("Jogo").Preload("Evento").Preload("Sala").
		Preload("Participantes").Preload("Participantes.Participante").
		Order("data_inicio DESC").
		Find(&arr).Error
	if err != nil {
		return nil, err
	}
	return arr, nil
}

func (r *Repo) Count(ctx context.Context, f Filter) (int64, error) {
	var n int64
	err := r.filtered(ctx, f).Count(&n).Error
	return n, err
}

// Get loads one record with all relations.
func (r *Repo) Get(ctx context.Context, id uint) (*PlayRecord, error) {
	var rec PlayRecord
	err := r.db.WithContext(ctx).
		Preload("Jogo").Preload("Evento").Preload("Sala").
		Preload("Participantes").Preload("Participantes.Participante").
		First(&rec, id).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListAll loads every record with its participant rows. The dashboard and
// the derived list statistics fold over this in memory; volumes are
// human-scale.
func (r *Repo) ListAll(ctx context.Context) ([]*PlayRecord, error) {
	var arr []*PlayRecord
	if err := r.db.WithContext(ctx).Preload("Participantes").Find(&arr).Error; err != nil {
		return nil, err
	}
	return arr, nil
}

func (r *Repo) CountByGame(ctx context.Context, jogoID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&PlayRecord{}).Where("jogo_id = ?", jogoID).Count(&n).Error
	return n, err
}

func (r *Repo) CountByEvent(ctx context.Context, eventoID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&PlayRecord{}).Where("evento_id = ?", eventoID).Count(&n).Error
	return n, err
}

// CountParticipations counts how many play records reference the user.
// A non-zero count blocks participant deletion.
func (r *Repo) CountParticipations(ctx context.Context, participanteID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&RecordParticipant{}).Where("participante_id = ?", participanteID).Count(&n).Error
	return n, err
}

// CountRoomRecords counts records held in a room.
func (r *Repo) CountRoomRecords(ctx context.Context, salaID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&PlayRecord{}).Where("sala_id = ?", salaID).Count(&n).Error
	return n, err
}

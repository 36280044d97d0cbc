package events

import (
	"context"

	"gorm.io/gorm"
)

// Repo provides GORM-based persistence for events and their rooms.
type Repo struct{ db *gorm.DB }

func AutoMigrate(db *gorm.DB) error { return db.AutoMigrate(&Event{}, &Room{}, &EventGame{}) }
func NewRepo(db *gorm.DB) *Repo     { return &Repo{db: db} }

// CreateWithGames persists the event (rooms ride along via the association)
// and its game links in one transaction, so a failed link leaves nothing
// behind.
func (r *Repo) CreateWithGames(ctx context.Context, e *Event, jogoIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		for i, jid := range jogoIDs {
			if err := tx.Create(&EventGame{EventoID: e.ID, JogoID: jid, Prioridade: i}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repo) Update(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// Get loads an event with its rooms.
func (r *Repo) Get(ctx context.Context, id uint) (*Event, error) {
	var e Event
	if err := r.db.WithContext(ctx).Preload("Salas").First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns all events with rooms, newest data first.
func (r *Repo) List(ctx context.Context) ([]*Event, error) {
	var arr []*Event
	if err := r.db.WithContext(ctx).Preload("Salas").Order("data DESC").Find(&arr).Error; err != nil {
		return nil, err
	}
	return arr, nil
}

// ListRecent returns the latest n events with rooms.
func (r *Repo) ListRecent(ctx context.Context, n int) ([]*Event, error) {
	var arr []*Event
	if err := r.db.WithContext(ctx).Preload("Salas").Order("data DESC").Limit(n).Find(&arr).Error; err != nil {
		return nil, err
	}
	return arr, nil
}

func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Event{}).Count(&n).Error
	return n, err
}

// UpdateStatus sets the lifecycle status. Returns gorm.ErrRecordNotFound
// when the event does not exist.
func (r *Repo) UpdateStatus(ctx context.Context, id uint, status string) (*Event, error) {
	var e Event
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	e.Status = status
	if err := r.db.WithContext(ctx).Save(&e).Error; err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Delete removes the event and everything it owns: rooms and game links.
// Callers must have checked the play-record guard first.
func (r *Repo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("evento_id = ?", id).Delete(&Room{}).Error; err != nil {
			return err
		}
		if err := tx.Where("evento_id = ?", id).Delete(&EventGame{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Event{}, id).Error
	})
}

// Rooms

func (r *Repo) CreateRoom(ctx context.Context, room *Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// ListRooms lists rooms, optionally filtered by event, ordered by nome.
func (r *Repo) ListRooms(ctx context.Context, eventoID uint) ([]*Room, error) {
	var arr []*Room
	q := r.db.WithContext(ctx).Order("nome ASC")
	if eventoID != 0 {
		q = q.Where("evento_id = ?", eventoID)
	}
	if err := q.Find(&arr).Error; err != nil {
		return nil, err
	}
	return arr, nil
}

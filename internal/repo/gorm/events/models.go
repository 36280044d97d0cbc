package events

import "time"

// Event lifecycle statuses. Transitions are validated by membership only;
// no ordering is enforced.
const (
	StatusPlanejado   = "planejado"
	StatusEmAndamento = "em-andamento"
	StatusFinalizado  = "finalizado"
)

// ValidStatus reports whether s is one of the three lifecycle values.
func ValidStatus(s string) bool {
	return s == StatusPlanejado || s == StatusEmAndamento || s == StatusFinalizado
}

// Event is a scheduled occasion. It owns its rooms: an event is created with
// at least one room and deleting it removes them.
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Nome        string    `gorm:"size:255;not null" json:"nome"`
	Data        time.Time `json:"data"`
	Local       string    `gorm:"size:255;not null" json:"local"`
	Descricao   string    `gorm:"type:text" json:"descricao"`
	Organizador string    `gorm:"size:255;not null" json:"organizador"`
	Status      string    `gorm:"size:32;not null;default:planejado" json:"status"`
	Salas       []Room    `gorm:"foreignKey:EventoID" json:"salas"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Room is a capacity-bounded sub-location owned by exactly one event.
type Room struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Nome       string    `gorm:"size:255;not null" json:"nome"`
	Capacidade int       `gorm:"not null" json:"capacidade"`
	EventoID   uint      `gorm:"index;not null" json:"eventoId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Room) TableName() string { return "salas" }

// EventGame links a game planned for an event, in priority order.
type EventGame struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	EventoID   uint `gorm:"uniqueIndex:idx_evento_jogo;not null" json:"eventoId"`
	JogoID     uint `gorm:"uniqueIndex:idx_evento_jogo;not null" json:"jogoId"`
	Prioridade int  `json:"prioridade"`
}

func (EventGame) TableName() string { return "evento_jogos" }

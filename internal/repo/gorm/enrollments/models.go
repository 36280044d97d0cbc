package enrollments

import (
	"time"

	"github.com/ludico-app/ludico/internal/repo/gorm/events"
	"github.com/ludico-app/ludico/internal/repo/gorm/users"
)

// StatusConfirmada is the status new enrollments are created with.
const StatusConfirmada = "confirmada"

// Enrollment registers a participant's interest in an event. At most one
// per (evento, participante) pair.
type Enrollment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	EventoID       uint      `gorm:"uniqueIndex:idx_evento_inscrito;not null" json:"eventoId"`
	ParticipanteID uint      `gorm:"uniqueIndex:idx_evento_inscrito;not null" json:"participanteId"`
	Status         string    `gorm:"size:32;not null;default:confirmada" json:"status"`
	DataInscricao  time.Time `json:"dataInscricao"`

	Evento       *events.Event `gorm:"foreignKey:EventoID" json:"evento,omitempty"`
	Participante *users.User   `gorm:"foreignKey:ParticipanteID" json:"participante,omitempty"`
}

func (Enrollment) TableName() string { return "inscricoes" }

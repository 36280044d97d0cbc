package certificates

import (
	"time"

	"github.com/ludico-app/ludico/internal/repo/gorm/events"
	"github.com/ludico-app/ludico/internal/repo/gorm/users"
)

// Certificate proves a user's participation in a finalized event. At most
// one per (evento, participante) pair.
type Certificate struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	EventoID           uint      `gorm:"uniqueIndex:idx_evento_certificado;not null" json:"eventoId"`
	ParticipanteID     uint      `gorm:"uniqueIndex:idx_evento_certificado;not null" json:"participanteId"`
	HorasParticipacao  int       `gorm:"not null" json:"horasParticipacao"`
	CodigoCertificado  string    `gorm:"size:64;uniqueIndex;not null" json:"codigoCertificado"`
	DataEmissao        time.Time `json:"dataEmissao"`

	Evento       *events.Event `gorm:"foreignKey:EventoID" json:"evento,omitempty"`
	Participante *users.User   `gorm:"foreignKey:ParticipanteID" json:"participante,omitempty"`
}

func (Certificate) TableName() string { return "certificados" }

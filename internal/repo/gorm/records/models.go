package records

import (
	"time"

	"github.com/ludico-app/ludico/internal/repo/gorm/events"
	"github.com/ludico-app/ludico/internal/repo/gorm/games"
	"github.com/ludico-app/ludico/internal/repo/gorm/users"
)

// PlayRecord registers one game played within an event room by a set of
// participants. Games, events and users referenced by a record cannot be
// deleted while it exists.
type PlayRecord struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	JogoID      uint       `gorm:"index;not null" json:"jogoId"`
	EventoID    uint       `gorm:"index;not null" json:"eventoId"`
	SalaID      uint       `gorm:"index;not null" json:"salaId"`
	DataInicio  time.Time  `json:"dataInicio"`
	DataFim     *time.Time `json:"dataFim"`
	Observacoes *string    `gorm:"type:text" json:"observacoes"`

	Jogo          *games.Game         `gorm:"foreignKey:JogoID" json:"jogo,omitempty"`
	Evento        *events.Event       `gorm:"foreignKey:EventoID" json:"evento,omitempty"`
	Sala          *events.Room        `gorm:"foreignKey:SalaID" json:"sala,omitempty"`
	Participantes []RecordParticipant `gorm:"foreignKey:RegistroID" json:"participantes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (PlayRecord) TableName() string { return "registros" }

// RecordParticipant joins one participant to one play record.
type RecordParticipant struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	RegistroID     uint `gorm:"uniqueIndex:idx_registro_participante;not null" json:"registroId"`
	ParticipanteID uint `gorm:"uniqueIndex:idx_registro_participante;not null" json:"participanteId"`

	Participante *users.User `gorm:"foreignKey:ParticipanteID" json:"participante,omitempty"`
}

func (RecordParticipant) TableName() string { return "registro_participantes" }

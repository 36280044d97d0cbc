package users

import "time"

// Roles a user account can hold.
const (
	CargoSupervisor = "supervisor"
	CargoAluno      = "aluno"
)

// User is an account: supervisors administer the system, alunos participate
// in events and play sessions.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nome      string    `gorm:"size:255;not null" json:"nome"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Senha     string    `gorm:"size:255;not null" json:"-"`
	Cargo     string    `gorm:"size:32;not null;default:aluno" json:"cargo"`
	Idade     *int      `json:"idade"`
	Telefone  *string   `gorm:"size:64" json:"telefone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

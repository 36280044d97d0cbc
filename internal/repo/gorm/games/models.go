package games

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Game is the DB model for a recreational game definition.
type Game struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Nome         string    `gorm:"size:255;not null" json:"nome"`
	Categoria    string    `gorm:"size:128;not null" json:"categoria"`
	Descricao    string    `gorm:"type:text" json:"descricao"`
	MinJogadores int       `json:"minJogadores"`
	MaxJogadores int       `json:"maxJogadores"`
	// average match duration in minutes
	DuracaoMedia int `json:"duracaoMedia"`
	// Material stores the required material list (JSON array of strings)
	Material  datatypes.JSON `gorm:"type:json" json:"material"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Helpers to encode/decode Game.Material
func (g *Game) GetMaterialList() []string {
	arr := []string{}
	if len(g.Material) == 0 {
		return arr
	}
	_ = json.Unmarshal(g.Material, &arr)
	return arr
}
func (g *Game) SetMaterialList(items []string) {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	g.Material = b
}

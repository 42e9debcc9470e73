package models

import (
	"time"

	"gorm.io/gorm"
)

// Perfis de acesso.
const (
	PerfilAdmin  = "admin"
	PerfilFiscal = "fiscal"
	PerfilGestor = "gestor"
)

// Usuario é um usuário interno do sistema (fiscal, gestor ou admin).
type Usuario struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `                  json:"createdAt"`
	UpdatedAt time.Time      `                  json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index"      json:"-"`

	NomeCompleto string `gorm:"column:nome_completo"      json:"nomeCompleto"`
	Email        string `gorm:"column:email;uniqueIndex"  json:"email"`
	SenhaHash    string `gorm:"column:senha_hash"         json:"-"`
	Perfil       string `gorm:"column:perfil"             json:"perfil"`
}

func (Usuario) TableName() string { return "usuarios" }

// EhAdmin informa se o usuário tem capacidade administrativa
// (bloquear/reabrir medições e aditivos, excluir com override).
func (u *Usuario) EhAdmin() bool { return u.Perfil == PerfilAdmin }

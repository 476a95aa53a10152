package afiliado

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Afiliado é o dono do programa de indicação: recebe comissões sobre
// pagamentos e assinaturas correlacionados pelo externalReference.
type Afiliado struct {
	ID                 string  `gorm:"primaryKey;size:36" json:"id"`
	Nome               string  `json:"nome"`
	Sobrenome          string  `json:"sobrenome"`
	Email              string  `gorm:"unique" json:"email"`
	Telefone           string  `json:"telefone"`
	CPFCNPJ            string  `gorm:"column:cpf_cnpj" json:"cpfCnpj"`
	ChavePix           string  `json:"chavePix"`
	Senha              string  `json:"-"`
	PercentualComissao float64 `gorm:"not null;default:3" json:"percentualComissao"`
	IsAdmin            bool    `gorm:"not null;default:false" json:"isAdmin"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Afiliado) TableName() string {
	return "afiliados"
}

// BeforeCreate garante um UUID como chave primária; é esse valor que viaja
// no externalReference do provedor de pagamentos.
func (a *Afiliado) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

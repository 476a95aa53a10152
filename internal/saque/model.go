package saque

import (
	"time"

	"gorm.io/gorm"
)

// Status possíveis de um saque.
const (
	StatusPendente  = "pendente"
	StatusPago      = "pago"
	StatusCancelado = "cancelado"
)

// Saque é um pedido de resgate do afiliado contra o saldo disponível.
// Criado pelo afiliado (ou admin), mutado somente por transição de status
// feita por admin; o webhook nunca toca nesta tabela.
type Saque struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	AfiliadoID    string     `gorm:"size:36;not null;index" json:"afiliadoId"`
	Valor         float64    `gorm:"not null" json:"valor"`
	Status        string     `gorm:"size:20;not null;default:'pendente';index" json:"status"`
	ChavePix      string     `json:"chavePix"`
	Observacao    string     `json:"observacao"`
	DataPagamento *time.Time `json:"dataPagamento"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (Saque) TableName() string {
	return "saques"
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Saque{})
}

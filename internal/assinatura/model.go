package assinatura

import (
	"time"

	"github.com/nexumpay/api-afiliados/internal/asaas"
	"gorm.io/gorm"
)

// Status de assinatura espelhados do Asaas.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
	StatusExpired  = "EXPIRED"
)

// Subscription é o espelho local de uma cobrança recorrente do Asaas.
// Mesma disciplina de upsert do Payment.
type Subscription struct {
	ID                string    `gorm:"primaryKey;size:40" json:"id"`
	AfiliadoID        string    `gorm:"size:36;index" json:"afiliadoId"`
	CustomerID        string    `gorm:"size:40;index" json:"customerId"`
	BillingType       string    `gorm:"size:20" json:"billingType"`
	Status            string    `gorm:"size:20;index" json:"status"`
	Valor             float64   `gorm:"not null;default:0" json:"valor"`
	Ciclo             string    `gorm:"size:20" json:"ciclo"`
	Descricao         string    `json:"descricao"`
	ProximoVencimento string    `json:"proximoVencimento"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// FromAsaas renomeia os campos do payload do webhook para o schema local.
func FromAsaas(s *asaas.Assinatura, afiliadoID string) *Subscription {
	return &Subscription{
		ID:                s.ID,
		AfiliadoID:        afiliadoID,
		CustomerID:        s.Customer,
		BillingType:       s.BillingType,
		Status:            s.Status,
		Valor:             s.Value,
		Ciclo:             s.Cycle,
		Descricao:         s.Description,
		ProximoVencimento: s.NextDueDate,
	}
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Subscription{})
}

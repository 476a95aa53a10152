package pagamento

import (
	"time"

	"github.com/nexumpay/api-afiliados/internal/asaas"
	"gorm.io/gorm"
)

// Status de cobrança espelhados do Asaas.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusReceived  = "RECEIVED"
	StatusOverdue   = "OVERDUE"
	StatusRefunded  = "REFUNDED"
	StatusCancelled = "CANCELLED"
)

// Payment é o espelho local de uma cobrança do Asaas (avulsa ou parcela).
// Histórico imutável exceto transições de status dirigidas por eventos
// posteriores do webhook.
type Payment struct {
	ID             string    `gorm:"primaryKey;size:40" json:"id"`
	AfiliadoID     string    `gorm:"size:36;index" json:"afiliadoId"`
	CustomerID     string    `gorm:"size:40;index" json:"customerId"`
	BillingType    string    `gorm:"size:20" json:"billingType"`
	Status         string    `gorm:"size:20;index" json:"status"`
	Valor          float64   `gorm:"not null;default:0" json:"valor"`
	ValorLiquido   float64   `gorm:"not null;default:0" json:"valorLiquido"`
	Descricao      string    `json:"descricao"`
	DataVencimento string    `json:"dataVencimento"`
	DataPagamento  string    `json:"dataPagamento"`
	InvoiceURL     string    `json:"invoiceUrl"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Payment) TableName() string {
	return "payments"
}

// FromAsaas renomeia os campos do payload do webhook para o schema local.
// Campos opcionais ausentes passam adiante como zero, sem validação.
func FromAsaas(p *asaas.Cobranca, afiliadoID string) *Payment {
	return &Payment{
		ID:             p.ID,
		AfiliadoID:     afiliadoID,
		CustomerID:     p.Customer,
		BillingType:    p.BillingType,
		Status:         p.Status,
		Valor:          p.Value,
		ValorLiquido:   p.NetValue,
		Descricao:      p.Description,
		DataVencimento: p.DueDate,
		DataPagamento:  p.PaymentDate,
		InvoiceURL:     p.InvoiceURL,
	}
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Payment{})
}

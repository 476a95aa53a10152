package webhook

import (
	"time"

	"github.com/nexumpay/api-afiliados/internal/asaas"
	"gorm.io/gorm"
)

// Evento é o envelope entregue pelo Asaas. Os sub-objetos são opcionais e
// discriminados pelo tipo do evento.
type Evento struct {
	ID                string            `json:"id"`
	Event             string            `json:"event"`
	Payment           *asaas.Cobranca   `json:"payment"`
	Subscription      *asaas.Assinatura `json:"subscription"`
	ExternalReference string            `json:"externalReference"`
}

// AfiliadoID devolve o primeiro externalReference não vazio entre o topo do
// envelope, o payment e a subscription.
func (e *Evento) AfiliadoID() string {
	if e.ExternalReference != "" {
		return e.ExternalReference
	}
	if e.Payment != nil && e.Payment.ExternalReference != "" {
		return e.Payment.ExternalReference
	}
	if e.Subscription != nil && e.Subscription.ExternalReference != "" {
		return e.Subscription.ExternalReference
	}
	return ""
}

// WebhookEvent é o livro-razão de eventos já processados, usado para
// deduplicar reentregas do provedor.
type WebhookEvent struct {
	EventID     string     `gorm:"primaryKey;size:64" json:"eventId"`
	Tipo        string     `gorm:"size:60;index" json:"tipo"`
	AfiliadoID  string     `gorm:"size:36;index" json:"afiliadoId"`
	Payload     string     `json:"payload"`
	ProcessedAt *time.Time `json:"processedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (WebhookEvent) TableName() string {
	return "webhook_events"
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&WebhookEvent{})
}

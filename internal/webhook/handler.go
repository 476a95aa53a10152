package webhook

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/nexumpay/api-afiliados/internal/asaas"
	"github.com/nexumpay/api-afiliados/internal/assinatura"
	"github.com/nexumpay/api-afiliados/internal/cliente"
	"github.com/nexumpay/api-afiliados/internal/pagamento"
	"github.com/nexumpay/api-afiliados/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Eventos de cobrança que disparam upsert do espelho de payment.
const (
	EventoPagamentoCriado     = "PAYMENT_CREATED"
	EventoPagamentoConfirmado = "PAYMENT_CONFIRMED"
	EventoPagamentoRecebido   = "PAYMENT_RECEIVED"
	EventoPagamentoVencido    = "PAYMENT_OVERDUE"

	EventoAssinaturaCriada   = "SUBSCRIPTION_CREATED"
	EventoAssinaturaAlterada = "SUBSCRIPTION_UPDATED"
	EventoAssinaturaAtivada  = "SUBSCRIPTION_ACTIVATED"
)

// Handler ingere eventos do Asaas e despacha para os upserts de espelho.
// Erros de persistência local respondem 500 para que o provedor reentregue;
// a reentrega é segura pelo upsert-por-id mais o livro-razão de eventos.
type Handler struct {
	DB          *gorm.DB
	Asaas       *asaas.Client
	Eventos     *Repository
	Clientes    *cliente.Repository
	Pagamentos  *pagamento.Repository
	Assinaturas *assinatura.Repository
}

func NewHandler(db *gorm.DB, client *asaas.Client) *Handler {
	return &Handler{
		DB:          db,
		Asaas:       client,
		Eventos:     NewRepository(db),
		Clientes:    cliente.NewRepository(db),
		Pagamentos:  pagamento.NewRepository(db),
		Assinaturas: assinatura.NewRepository(db),
	}
}

// POST /api/webhook
func (h *Handler) Receber(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "erro ao ler corpo", http.StatusBadRequest)
		return
	}

	var ev Evento
	if err := json.Unmarshal(raw, &ev); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}

	// Reentrega de evento já processado: confirma sem redespachar. A
	// consulta ao livro-razão é best-effort: duas entregas simultâneas do
	// mesmo evento podem ambas despachar, mas o upsert-por-id converge e o
	// registro duplicado é absorvido pelo insert com DO NOTHING.
	if ev.ID != "" {
		processado, err := h.Eventos.JaProcessado(ev.ID)
		if err != nil {
			http.Error(w, "erro ao consultar eventos processados", http.StatusInternalServerError)
			return
		}
		if processado {
			utils.RespondJSON(w, http.StatusOK, map[string]bool{"received": true, "duplicate": true})
			return
		}
	}

	afiliadoID := ev.AfiliadoID()

	switch ev.Event {
	case EventoPagamentoConfirmado, EventoPagamentoRecebido, EventoPagamentoVencido:
		if ev.Payment == nil {
			http.Error(w, "evento de pagamento sem objeto payment", http.StatusBadRequest)
			return
		}
		if err := h.Pagamentos.Upsert(pagamento.FromAsaas(ev.Payment, afiliadoID)); err != nil {
			log.Printf("webhook: erro ao gravar pagamento %s: %v", ev.Payment.ID, err)
			http.Error(w, "erro ao gravar pagamento", http.StatusInternalServerError)
			return
		}
		if ev.Payment.Customer != "" {
			if err := h.upsertCustomer(r, ev.Payment.Customer, afiliadoID); err != nil {
				http.Error(w, "erro ao gravar customer", http.StatusInternalServerError)
				return
			}
		}

	case EventoAssinaturaCriada, EventoAssinaturaAlterada, EventoAssinaturaAtivada:
		if ev.Subscription == nil {
			http.Error(w, "evento de assinatura sem objeto subscription", http.StatusBadRequest)
			return
		}
		if err := h.Assinaturas.Upsert(assinatura.FromAsaas(ev.Subscription, afiliadoID)); err != nil {
			log.Printf("webhook: erro ao gravar assinatura %s: %v", ev.Subscription.ID, err)
			http.Error(w, "erro ao gravar assinatura", http.StatusInternalServerError)
			return
		}
		if ev.Subscription.Customer != "" {
			if err := h.upsertCustomer(r, ev.Subscription.Customer, afiliadoID); err != nil {
				http.Error(w, "erro ao gravar customer", http.StatusInternalServerError)
				return
			}
		}

	case EventoPagamentoCriado:
		if ev.Payment == nil {
			http.Error(w, "evento de pagamento sem objeto payment", http.StatusBadRequest)
			return
		}
		if err := h.Pagamentos.Upsert(pagamento.FromAsaas(ev.Payment, afiliadoID)); err != nil {
			log.Printf("webhook: erro ao gravar pagamento %s: %v", ev.Payment.ID, err)
			http.Error(w, "erro ao gravar pagamento", http.StatusInternalServerError)
			return
		}

	default:
		// Evento desconhecido: aceito e ignorado, sem tocar em nenhuma tabela.
		utils.RespondJSON(w, http.StatusOK, map[string]bool{"received": true})
		return
	}

	eventID := ev.ID
	if eventID == "" {
		eventID = uuid.NewString()
	}
	registro := &WebhookEvent{
		EventID:    eventID,
		Tipo:       ev.Event,
		AfiliadoID: afiliadoID,
		Payload:    string(raw),
	}
	if err := h.Eventos.MarcarProcessado(registro); err != nil {
		log.Printf("webhook: erro ao registrar evento %s: %v", eventID, err)
		http.Error(w, "erro ao registrar evento", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]bool{"received": true})
}

// upsertCustomer busca o customer completo no provedor e espelha localmente.
// Falha na busca remota só é logada: o upsert do payment/subscription já
// aconteceu e não depende do espelho de customer.
func (h *Handler) upsertCustomer(r *http.Request, customerID, afiliadoID string) error {
	c, err := h.Asaas.BuscarCliente(r.Context(), customerID)
	if err != nil {
		log.Printf("webhook: falha ao buscar customer %s no Asaas: %v", customerID, err)
		return nil
	}
	return h.Clientes.Upsert(cliente.FromAsaas(c, afiliadoID))
}

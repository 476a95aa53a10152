package dashboard

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/nexumpay/api-afiliados/internal/asaas"
	"github.com/nexumpay/api-afiliados/internal/assinatura"
	"github.com/nexumpay/api-afiliados/internal/pagamento"
	"github.com/nexumpay/api-afiliados/internal/saque"
	"github.com/nexumpay/api-afiliados/internal/utils"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Timeout independente de cada chamada remota do agregador; estourou,
// a perna degrada para vazio em vez de derrubar a requisição.
const provedorTimeout = 10 * time.Second

// Percentual de comissão aplicado sobre assinaturas ativas.
const percentualMensalidades = 0.03

// Detalhes traz as contagens exibidas na UI junto dos totais.
type Detalhes struct {
	QtdPagamentosRecebidos int `json:"qtd_pagamentos_recebidos"`
	QtdAssinaturasAtivas   int `json:"qtd_assinaturas_ativas"`
	QtdSaquesPagos         int `json:"qtd_saques_pagos"`
	QtdSaquesPendentes     int `json:"qtd_saques_pendentes"`
}

// Resumo é o snapshot de saldo do afiliado.
type Resumo struct {
	AfiliadoID           string   `json:"afiliado_id"`
	TotalClientes        int      `json:"total_clientes"`
	PagamentosAReceber   float64  `json:"pagamentos_a_receber"`
	MensalidadesAReceber float64  `json:"mensalidades_a_receber"`
	TotalBruto           float64  `json:"total_bruto"`
	TotalSacado          float64  `json:"total_sacado"`
	TotalPendenteSaque   float64  `json:"total_pendente_saque"`
	TotalAReceber        float64  `json:"total_a_receber"`
	TotalAcumulado       float64  `json:"total_acumulado"`
	Detalhes             Detalhes `json:"detalhes"`
}

type resumoResponse struct {
	Success bool    `json:"success"`
	Data    *Resumo `json:"data"`
}

// Handler agrega saques locais e dados vivos do provedor num snapshot.
type Handler struct {
	DB     *gorm.DB
	Asaas  *asaas.Client
	Saques *saque.Repository
	Cache  *Cache
}

func NewHandler(db *gorm.DB, client *asaas.Client, cache *Cache) *Handler {
	return &Handler{
		DB:     db,
		Asaas:  client,
		Saques: saque.NewRepository(db),
		Cache:  cache,
	}
}

// GET /api/dashboard?afiliadoId=<uuid>
func (h *Handler) Obter(w http.ResponseWriter, r *http.Request) {
	afiliadoID := r.URL.Query().Get("afiliadoId")
	if afiliadoID == "" {
		http.Error(w, "afiliadoId é obrigatório", http.StatusBadRequest)
		return
	}
	if _, err := uuid.Parse(afiliadoID); err != nil {
		http.Error(w, "afiliadoId inválido", http.StatusBadRequest)
		return
	}

	w.Header().Set("Cache-Control", "private, max-age=60, stale-while-revalidate=120")

	if resumo, ok := h.Cache.Buscar(r.Context(), afiliadoID); ok {
		utils.RespondJSON(w, http.StatusOK, resumoResponse{Success: true, Data: resumo})
		return
	}

	resumo := h.montarResumo(r.Context(), afiliadoID)

	if err := h.Cache.Guardar(r.Context(), afiliadoID, resumo); err != nil {
		log.Printf("dashboard: erro ao guardar snapshot no cache: %v", err)
	}

	utils.RespondJSON(w, http.StatusOK, resumoResponse{Success: true, Data: resumo})
}

// montarResumo dispara as quatro leituras em paralelo e combina o resultado.
// Cada perna tem timeout próprio e degrada para vazio em caso de erro.
func (h *Handler) montarResumo(ctx context.Context, afiliadoID string) *Resumo {
	var (
		saques      []saque.Saque
		clientes    []asaas.Cliente
		cobrancas   []asaas.Cobranca
		assinaturas []asaas.Assinatura
	)

	var g errgroup.Group

	g.Go(func() error {
		list, err := h.Saques.ListarPorAfiliado(afiliadoID)
		if err != nil {
			log.Printf("dashboard: erro ao listar saques de %s: %v", afiliadoID, err)
			return nil
		}
		saques = list
		return nil
	})

	g.Go(func() error {
		subCtx, cancel := context.WithTimeout(ctx, provedorTimeout)
		defer cancel()
		list, err := h.Asaas.ListarClientes(subCtx, afiliadoID)
		if err != nil {
			log.Printf("dashboard: erro ao listar clientes de %s: %v", afiliadoID, err)
			return nil
		}
		clientes = list
		return nil
	})

	g.Go(func() error {
		subCtx, cancel := context.WithTimeout(ctx, provedorTimeout)
		defer cancel()
		list, err := h.Asaas.ListarCobrancas(subCtx, afiliadoID)
		if err != nil {
			log.Printf("dashboard: erro ao listar cobranças de %s: %v", afiliadoID, err)
			return nil
		}
		cobrancas = list
		return nil
	})

	g.Go(func() error {
		subCtx, cancel := context.WithTimeout(ctx, provedorTimeout)
		defer cancel()
		list, err := h.Asaas.ListarAssinaturas(subCtx, afiliadoID, assinatura.StatusActive)
		if err != nil {
			log.Printf("dashboard: erro ao listar assinaturas de %s: %v", afiliadoID, err)
			return nil
		}
		assinaturas = list
		return nil
	})

	_ = g.Wait()

	return calcularResumo(afiliadoID, saques, clientes, cobrancas, assinaturas)
}

// calcularResumo aplica a aritmética de saldo sobre as quatro fontes.
func calcularResumo(afiliadoID string, saques []saque.Saque, clientes []asaas.Cliente, cobrancas []asaas.Cobranca, assinaturas []asaas.Assinatura) *Resumo {
	r := &Resumo{AfiliadoID: afiliadoID, TotalClientes: len(clientes)}

	for _, s := range saques {
		switch s.Status {
		case saque.StatusPago:
			r.TotalSacado += s.Valor
			r.Detalhes.QtdSaquesPagos++
		case saque.StatusPendente:
			r.TotalPendenteSaque += s.Valor
			r.Detalhes.QtdSaquesPendentes++
		}
	}

	for _, c := range cobrancas {
		if c.Status == pagamento.StatusReceived || c.Status == pagamento.StatusConfirmed {
			r.PagamentosAReceber += c.Value
			r.Detalhes.QtdPagamentosRecebidos++
		}
	}

	for _, a := range assinaturas {
		if a.Status == assinatura.StatusActive {
			r.MensalidadesAReceber += percentualMensalidades * a.Value
			r.Detalhes.QtdAssinaturasAtivas++
		}
	}

	r.TotalBruto = r.PagamentosAReceber + r.MensalidadesAReceber
	r.TotalAcumulado = r.TotalBruto

	disponivel := r.TotalBruto - r.TotalSacado - r.TotalPendenteSaque
	if disponivel < 0 {
		disponivel = 0
	}
	r.TotalAReceber = disponivel

	return r
}

package saque

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/nexumpay/api-afiliados/internal/afiliado"
	"github.com/nexumpay/api-afiliados/internal/assinatura"
	"github.com/nexumpay/api-afiliados/internal/auth"
	"github.com/nexumpay/api-afiliados/internal/pagamento"
	"github.com/nexumpay/api-afiliados/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/* ============================== Handler & DTOs ============================== */

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// DTO usado no POST /saques
type SaqueCreateDTO struct {
	Valor      float64 `json:"valor"`
	ChavePix   string  `json:"chavePix"`
	Observacao string  `json:"observacao"`
}

// DTO usado no PATCH /saques/{id}/status
type statusUpdateDTO struct {
	Status string `json:"status"`
}

/* ============================== Utilidades ============================== */

// Saldo disponível calculado sobre os espelhos locais: cobranças
// CONFIRMED/RECEIVED mais o percentual do afiliado sobre assinaturas ACTIVE,
// menos saques pagos e pendentes, com piso em zero.
func saldoDisponivel(db *gorm.DB, af *afiliado.Afiliado) (float64, error) {
	recebiveis, err := pagamento.NewRepository(db).SomarRecebiveis(db, af.ID)
	if err != nil {
		return 0, err
	}
	ativas, err := assinatura.NewRepository(db).SomarAtivas(db, af.ID)
	if err != nil {
		return 0, err
	}
	pagos, err := NewRepository(db).SomarPorStatus(db, af.ID, StatusPago)
	if err != nil {
		return 0, err
	}
	pendentes, err := NewRepository(db).SomarPorStatus(db, af.ID, StatusPendente)
	if err != nil {
		return 0, err
	}

	bruto := recebiveis + ativas*af.PercentualComissao/100
	disponivel := bruto - pagos - pendentes
	if disponivel < 0 {
		disponivel = 0
	}
	return disponivel, nil
}

/* ============================== Endpoints ============================== */

// POST /saques
// A criação roda em transação segurando lock na linha do afiliado, para que
// dois pedidos concorrentes não sacem o mesmo saldo duas vezes. O cálculo do
// dashboard continua sem lock e eventualmente consistente.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	afiliadoID := auth.UserID(r.Context())

	var in SaqueCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if in.Valor <= 0 {
		http.Error(w, "valor do saque deve ser maior que zero", http.StatusBadRequest)
		return
	}

	tx := h.Repo.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Falha ao iniciar transação", http.StatusInternalServerError)
		return
	}

	sess := tx
	if tx.Dialector.Name() == "postgres" {
		sess = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var af afiliado.Afiliado
	if err := sess.First(&af, "id = ?", afiliadoID).Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "afiliado não encontrado", http.StatusNotFound)
		return
	}

	disponivel, err := saldoDisponivel(tx, &af)
	if err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao calcular saldo disponível", http.StatusInternalServerError)
		return
	}
	if in.Valor > disponivel {
		_ = tx.Rollback()
		http.Error(w, "saldo insuficiente para o saque", http.StatusUnprocessableEntity)
		return
	}

	chave := in.ChavePix
	if chave == "" {
		chave = af.ChavePix
	}

	s := &Saque{
		AfiliadoID: afiliadoID,
		Valor:      in.Valor,
		Status:     StatusPendente,
		ChavePix:   chave,
		Observacao: in.Observacao,
	}

	if err := h.Repo.Criar(tx, s); err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao criar saque", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao confirmar transação", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, s)
}

// GET /saques
// Admin vê todos (filtro opcional ?status=); afiliado vê somente os seus.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	if auth.IsAdmin(r.Context()) {
		list, err := h.Repo.ListarTodos(r.URL.Query().Get("status"))
		if err != nil {
			http.Error(w, "Erro ao buscar saques", http.StatusInternalServerError)
			return
		}
		utils.RespondJSON(w, http.StatusOK, list)
		return
	}

	list, err := h.Repo.ListarPorAfiliado(auth.UserID(r.Context()))
	if err != nil {
		http.Error(w, "Erro ao buscar saques", http.StatusInternalServerError)
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

// PATCH /saques/{id}/status
// Permite: "pendente" -> "pago" (carimba data de pagamento) e
// "pendente" -> "cancelado". "pago" é terminal.
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID do saque inválido", http.StatusBadRequest)
		return
	}

	var payload statusUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if payload.Status != StatusPago && payload.Status != StatusCancelado {
		http.Error(w, "status inválido", http.StatusBadRequest)
		return
	}

	s, err := h.Repo.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "saque não encontrado", http.StatusNotFound)
		return
	}

	if s.Status != StatusPendente {
		http.Error(w, "transição de status não permitida", http.StatusUnprocessableEntity)
		return
	}

	s.Status = payload.Status
	if payload.Status == StatusPago {
		now := time.Now()
		s.DataPagamento = &now
	}

	if err := h.Repo.Atualizar(s); err != nil {
		http.Error(w, "Erro ao atualizar saque", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, s)
}

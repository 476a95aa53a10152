package afiliado

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nexumpay/api-afiliados/internal/auth"
	"github.com/nexumpay/api-afiliados/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// request DTOs
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createAfiliadoRequest struct {
	Nome      string `json:"nome"`
	Sobrenome string `json:"sobrenome"`
	Email     string `json:"email"`
	Telefone  string `json:"telefone"`
	CpfCnpj   string `json:"cpfCnpj"`
	ChavePix  string `json:"chavePix"`
	Senha     string `json:"senha"`
}

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// Login gera um JWT para credenciais válidas
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.BuscarPorEmail(h.DB, req.Email)
	if err != nil {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	if !utils.VerificarSenha(user.Senha, req.Password) {
		http.Error(w, "senha incorreta", http.StatusUnauthorized)
		return
	}

	token, err := auth.GerarToken(user.ID, user.IsAdmin)
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// CriarAfiliado cadastra novo afiliado (livre de autenticação)
func (h *Handler) CriarAfiliado(w http.ResponseWriter, r *http.Request) {
	var req createAfiliadoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Senha == "" {
		http.Error(w, "email e senha são obrigatórios", http.StatusBadRequest)
		return
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	a := Afiliado{
		Nome:               req.Nome,
		Sobrenome:          req.Sobrenome,
		Email:              req.Email,
		Telefone:           req.Telefone,
		CPFCNPJ:            req.CpfCnpj,
		ChavePix:           req.ChavePix,
		Senha:              hash,
		PercentualComissao: 3,
	}

	if err := h.Repository.Salvar(h.DB, &a); err != nil {
		http.Error(w, "erro ao salvar afiliado", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, a)
}

// ListarAfiliados retorna todos ou apenas o próprio registro
func (h *Handler) ListarAfiliados(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	isAdmin := auth.IsAdmin(r.Context())

	if isAdmin {
		afiliados, err := h.Repository.ListarTodos(h.DB)
		if err != nil {
			http.Error(w, "erro ao listar afiliados", http.StatusInternalServerError)
			return
		}
		utils.RespondJSON(w, http.StatusOK, afiliados)
		return
	}

	// não-admin vê apenas o próprio
	obj, err := h.Repository.BuscarPorID(h.DB, userID)
	if err != nil {
		http.Error(w, "afiliado não encontrado", http.StatusNotFound)
		return
	}
	utils.RespondJSON(w, http.StatusOK, []Afiliado{*obj})
}

// BuscarPorID retorna um afiliado pelo ID
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	isAdmin := auth.IsAdmin(r.Context())

	id := mux.Vars(r)["id"]
	if !isAdmin && id != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	obj, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		http.Error(w, "afiliado não encontrado", http.StatusNotFound)
		return
	}
	utils.RespondJSON(w, http.StatusOK, obj)
}

// AtualizarAfiliado altera dados de um afiliado existente
func (h *Handler) AtualizarAfiliado(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	isAdmin := auth.IsAdmin(r.Context())

	id := mux.Vars(r)["id"]
	if !isAdmin && id != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	var dados Afiliado
	if err := json.NewDecoder(r.Body).Decode(&dados); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.Atualizar(h.DB, id, &dados); err != nil {
		http.Error(w, "erro ao atualizar afiliado", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("afiliado atualizado com sucesso"))
}

// DeletarAfiliado remove um afiliado
func (h *Handler) DeletarAfiliado(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	isAdmin := auth.IsAdmin(r.Context())

	id := mux.Vars(r)["id"]
	if !isAdmin && id != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	if err := h.Repository.Deletar(h.DB, id); err != nil {
		http.Error(w, "erro ao excluir afiliado", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("afiliado excluído com sucesso"))
}

// ResetSenha gera uma senha temporária para o afiliado e devolve ao admin,
// que a repassa por canal próprio. O afiliado troca depois via atualização.
func (h *Handler) ResetSenha(w http.ResponseWriter, r *http.Request) {
	if !auth.IsAdmin(r.Context()) {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	id := mux.Vars(r)["id"]

	senha, err := utils.GerarSenhaTemporaria()
	if err != nil {
		http.Error(w, "erro ao gerar senha temporária", http.StatusInternalServerError)
		return
	}

	hash, err := utils.HashSenha(senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	if err := h.Repository.AtualizarSenha(h.DB, id, hash); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "afiliado não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao atualizar senha", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"senhaTemporaria": senha})
}

// Me retorna o usuário logado
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var a Afiliado
	if err := h.DB.First(&a, "id = ?", userID).Error; err != nil {
		http.Error(w, "afiliado não encontrado", http.StatusNotFound)
		return
	}

	utils.RespondJSON(w, http.StatusOK, a)
}

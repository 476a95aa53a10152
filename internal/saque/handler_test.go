package saque

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nexumpay/api-afiliados/internal/afiliado"
	"github.com/nexumpay/api-afiliados/internal/assinatura"
	"github.com/nexumpay/api-afiliados/internal/auth"
	"github.com/nexumpay/api-afiliados/internal/pagamento"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func novoBancoTeste(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&afiliado.Afiliado{}))
	require.NoError(t, pagamento.Migrate(db))
	require.NoError(t, assinatura.Migrate(db))
	require.NoError(t, Migrate(db))
	return db
}

// Semeia um afiliado com R$300 em cobranças recebíveis e uma assinatura
// ativa de R$1000 (3% => R$30), saldo bruto de R$330.
func semearAfiliado(t *testing.T, db *gorm.DB) *afiliado.Afiliado {
	t.Helper()
	af := &afiliado.Afiliado{
		ID:                 uuid.NewString(),
		Nome:               "Afiliada",
		Email:              uuid.NewString() + "@example.com",
		PercentualComissao: 3,
	}
	require.NoError(t, db.Create(af).Error)

	pagRepo := pagamento.NewRepository(db)
	require.NoError(t, pagRepo.Upsert(&pagamento.Payment{ID: "p-" + af.ID[:8] + "1", AfiliadoID: af.ID, Status: pagamento.StatusConfirmed, Valor: 100}))
	require.NoError(t, pagRepo.Upsert(&pagamento.Payment{ID: "p-" + af.ID[:8] + "2", AfiliadoID: af.ID, Status: pagamento.StatusReceived, Valor: 200}))
	require.NoError(t, assinatura.NewRepository(db).Upsert(&assinatura.Subscription{ID: "s-" + af.ID[:8], AfiliadoID: af.ID, Status: assinatura.StatusActive, Valor: 1000}))

	return af
}

func contextoAutenticado(req *http.Request, afiliadoID string, admin bool) *http.Request {
	ctx := context.WithValue(req.Context(), auth.CtxUserID, afiliadoID)
	ctx = context.WithValue(ctx, auth.CtxIsAdmin, admin)
	return req.WithContext(ctx)
}

func pedirSaque(t *testing.T, h *Handler, afiliadoID string, valor float64) *httptest.ResponseRecorder {
	t.Helper()
	corpo := fmt.Sprintf(`{"valor": %v, "chavePix": "pix@example.com"}`, valor)
	req := httptest.NewRequest(http.MethodPost, "/saques", strings.NewReader(corpo))
	req = contextoAutenticado(req, afiliadoID, false)
	rr := httptest.NewRecorder()
	h.Criar(rr, req)
	return rr
}

func TestCriarSaqueDentroDoSaldo(t *testing.T) {
	db := novoBancoTeste(t)
	af := semearAfiliado(t, db)
	h := NewHandler(NewRepository(db))

	rr := pedirSaque(t, h, af.ID, 200)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var s Saque
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &s))
	assert.Equal(t, StatusPendente, s.Status)
	assert.Equal(t, 200.0, s.Valor)
	assert.Equal(t, "pix@example.com", s.ChavePix)
}

func TestCriarSaqueAcimaDoSaldoResponde422(t *testing.T) {
	db := novoBancoTeste(t)
	af := semearAfiliado(t, db)
	h := NewHandler(NewRepository(db))

	// bruto = 330; 400 estoura o disponível
	rr := pedirSaque(t, h, af.ID, 400)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var count int64
	require.NoError(t, db.Model(&Saque{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSaquePendenteReduzOSaldoDisponivel(t *testing.T) {
	db := novoBancoTeste(t)
	af := semearAfiliado(t, db)
	h := NewHandler(NewRepository(db))

	require.Equal(t, http.StatusCreated, pedirSaque(t, h, af.ID, 300).Code)

	// 300 pendentes de 330: só restam 30
	assert.Equal(t, http.StatusUnprocessableEntity, pedirSaque(t, h, af.ID, 31).Code)
	assert.Equal(t, http.StatusCreated, pedirSaque(t, h, af.ID, 30).Code)
}

func TestCriarSaqueValorInvalido(t *testing.T) {
	db := novoBancoTeste(t)
	af := semearAfiliado(t, db)
	h := NewHandler(NewRepository(db))

	rr := pedirSaque(t, h, af.ID, 0)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = pedirSaque(t, h, af.ID, -10)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func atualizarStatus(t *testing.T, h *Handler, id uint, status string) *httptest.ResponseRecorder {
	t.Helper()
	corpo := fmt.Sprintf(`{"status": %q}`, status)
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/saques/%d/status", id), strings.NewReader(corpo))
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(id)})
	req = contextoAutenticado(req, "admin-id", true)
	rr := httptest.NewRecorder()
	h.AtualizarStatus(rr, req)
	return rr
}

func TestTransicaoDeStatus(t *testing.T) {
	db := novoBancoTeste(t)
	af := semearAfiliado(t, db)
	h := NewHandler(NewRepository(db))

	require.Equal(t, http.StatusCreated, pedirSaque(t, h, af.ID, 100).Code)

	var s Saque
	require.NoError(t, db.First(&s).Error)

	rr := atualizarStatus(t, h, s.ID, StatusPago)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	pago, err := h.Repo.BuscarPorID(s.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPago, pago.Status)
	require.NotNil(t, pago.DataPagamento)

	// "pago" é terminal
	rr = atualizarStatus(t, h, s.ID, StatusCancelado)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestTransicaoParaStatusInvalido(t *testing.T) {
	db := novoBancoTeste(t)
	af := semearAfiliado(t, db)
	h := NewHandler(NewRepository(db))

	require.Equal(t, http.StatusCreated, pedirSaque(t, h, af.ID, 50).Code)

	var s Saque
	require.NoError(t, db.First(&s).Error)

	rr := atualizarStatus(t, h, s.ID, "pendente")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListarSeparaAdminDeAfiliado(t *testing.T) {
	db := novoBancoTeste(t)
	af1 := semearAfiliado(t, db)
	af2 := semearAfiliado(t, db)
	h := NewHandler(NewRepository(db))

	require.Equal(t, http.StatusCreated, pedirSaque(t, h, af1.ID, 10).Code)
	require.Equal(t, http.StatusCreated, pedirSaque(t, h, af2.ID, 20).Code)

	// afiliado vê só os próprios saques
	req := httptest.NewRequest(http.MethodGet, "/saques", nil)
	req = contextoAutenticado(req, af1.ID, false)
	rr := httptest.NewRecorder()
	h.Listar(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var meus []Saque
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &meus))
	require.Len(t, meus, 1)
	assert.Equal(t, af1.ID, meus[0].AfiliadoID)

	// admin vê todos
	req = httptest.NewRequest(http.MethodGet, "/saques", nil)
	req = contextoAutenticado(req, "admin-id", true)
	rr = httptest.NewRecorder()
	h.Listar(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var todos []Saque
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &todos))
	assert.Len(t, todos, 2)
}

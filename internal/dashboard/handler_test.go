package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nexumpay/api-afiliados/internal/asaas"
	"github.com/nexumpay/api-afiliados/internal/saque"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
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
	require.NoError(t, saque.Migrate(db))
	return db
}

func TestCalcularResumoExemploDaPlanilha(t *testing.T) {
	// totalBruto = 1000, sacado = 300, pendente = 200 => a receber = 500
	saques := []saque.Saque{
		{AfiliadoID: "af", Valor: 300, Status: saque.StatusPago},
		{AfiliadoID: "af", Valor: 200, Status: saque.StatusPendente},
	}
	cobrancas := []asaas.Cobranca{
		{ID: "p1", Status: "RECEIVED", Value: 600},
		{ID: "p2", Status: "CONFIRMED", Value: 250},
	}
	assinaturas := []asaas.Assinatura{
		{ID: "s1", Status: "ACTIVE", Value: 5000},
	}

	r := calcularResumo("af", saques, nil, cobrancas, assinaturas)

	assert.Equal(t, 850.0, r.PagamentosAReceber)
	assert.Equal(t, 150.0, r.MensalidadesAReceber)
	assert.Equal(t, 1000.0, r.TotalBruto)
	assert.Equal(t, 300.0, r.TotalSacado)
	assert.Equal(t, 200.0, r.TotalPendenteSaque)
	assert.Equal(t, 500.0, r.TotalAReceber)
	assert.Equal(t, 1000.0, r.TotalAcumulado)
}

func TestCalcularResumoNuncaNegativo(t *testing.T) {
	saques := []saque.Saque{
		{AfiliadoID: "af", Valor: 900, Status: saque.StatusPago},
		{AfiliadoID: "af", Valor: 500, Status: saque.StatusPendente},
	}
	cobrancas := []asaas.Cobranca{
		{ID: "p1", Status: "RECEIVED", Value: 100},
	}

	r := calcularResumo("af", saques, nil, cobrancas, nil)

	assert.Equal(t, 0.0, r.TotalAReceber)
	assert.Equal(t, 100.0, r.TotalBruto)
}

func TestCalcularResumoIgnoraStatusForaDoEscopo(t *testing.T) {
	cobrancas := []asaas.Cobranca{
		{ID: "p1", Status: "PENDING", Value: 100},
		{ID: "p2", Status: "OVERDUE", Value: 100},
		{ID: "p3", Status: "RECEIVED", Value: 100},
	}
	saques := []saque.Saque{
		{AfiliadoID: "af", Valor: 10, Status: saque.StatusCancelado},
	}

	r := calcularResumo("af", saques, nil, cobrancas, nil)

	assert.Equal(t, 100.0, r.PagamentosAReceber)
	assert.Equal(t, 1, r.Detalhes.QtdPagamentosRecebidos)
	assert.Zero(t, r.TotalSacado)
	assert.Zero(t, r.TotalPendenteSaque)
}

func provedorFake(t *testing.T, falha bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if falha {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		switch r.URL.Path {
		case "/customers":
			fmt.Fprint(w, `{"data":[{"id":"cus_1"},{"id":"cus_2"}]}`)
		case "/payments":
			fmt.Fprint(w, `{"data":[{"id":"pay_1","status":"RECEIVED","value":400},{"id":"pay_2","status":"PENDING","value":999}]}`)
		case "/subscriptions":
			assert.Equal(t, "ACTIVE", r.URL.Query().Get("status"))
			fmt.Fprint(w, `{"data":[{"id":"sub_1","status":"ACTIVE","value":1000}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestObterAgregaAsQuatroFontes(t *testing.T) {
	db := novoBancoTeste(t)
	afiliadoID := uuid.NewString()

	require.NoError(t, db.Create(&saque.Saque{AfiliadoID: afiliadoID, Valor: 100, Status: saque.StatusPago}).Error)
	require.NoError(t, db.Create(&saque.Saque{AfiliadoID: afiliadoID, Valor: 50, Status: saque.StatusPendente}).Error)

	srv := provedorFake(t, false)
	t.Cleanup(srv.Close)
	h := NewHandler(db, asaas.NewClient(srv.URL, "chave-teste", srv.Client()), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?afiliadoId="+afiliadoID, nil)
	rr := httptest.NewRecorder()
	h.Obter(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "private, max-age=60, stale-while-revalidate=120", rr.Header().Get("Cache-Control"))

	var resp struct {
		Success bool   `json:"success"`
		Data    Resumo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, afiliadoID, resp.Data.AfiliadoID)
	assert.Equal(t, 2, resp.Data.TotalClientes)
	assert.Equal(t, 400.0, resp.Data.PagamentosAReceber)
	assert.Equal(t, 30.0, resp.Data.MensalidadesAReceber)
	assert.Equal(t, 430.0, resp.Data.TotalBruto)
	assert.Equal(t, 100.0, resp.Data.TotalSacado)
	assert.Equal(t, 50.0, resp.Data.TotalPendenteSaque)
	assert.Equal(t, 280.0, resp.Data.TotalAReceber)
	assert.Equal(t, 1, resp.Data.Detalhes.QtdPagamentosRecebidos)
	assert.Equal(t, 1, resp.Data.Detalhes.QtdAssinaturasAtivas)
}

func TestObterDegradaParaZeroQuandoProvedorFalha(t *testing.T) {
	db := novoBancoTeste(t)
	afiliadoID := uuid.NewString()

	require.NoError(t, db.Create(&saque.Saque{AfiliadoID: afiliadoID, Valor: 100, Status: saque.StatusPago}).Error)

	srv := provedorFake(t, true)
	t.Cleanup(srv.Close)
	h := NewHandler(db, asaas.NewClient(srv.URL, "chave-teste", srv.Client()), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?afiliadoId="+afiliadoID, nil)
	rr := httptest.NewRecorder()
	h.Obter(rr, req)

	// Falha remota degrada para vazio; a requisição nunca vira 500.
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data Resumo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Zero(t, resp.Data.TotalBruto)
	assert.Equal(t, 100.0, resp.Data.TotalSacado)
	assert.Zero(t, resp.Data.TotalAReceber)
}

func TestObterValidaAfiliadoID(t *testing.T) {
	db := novoBancoTeste(t)
	h := NewHandler(db, asaas.NewClient("http://localhost", "x", nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rr := httptest.NewRecorder()
	h.Obter(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/dashboard?afiliadoId=nao-e-uuid", nil)
	rr = httptest.NewRecorder()
	h.Obter(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// fake que conta as idas ao provedor, para observar o curto-circuito do cache
func provedorContado(t *testing.T, chamadas *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chamadas.Add(1)
		switch r.URL.Path {
		case "/customers":
			fmt.Fprint(w, `{"data":[{"id":"cus_1"}]}`)
		case "/payments":
			fmt.Fprint(w, `{"data":[{"id":"pay_1","status":"RECEIVED","value":400}]}`)
		case "/subscriptions":
			fmt.Fprint(w, `{"data":[]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestObterServeDoCacheDentroDoTTL(t *testing.T) {
	db := novoBancoTeste(t)
	afiliadoID := uuid.NewString()

	var chamadas atomic.Int32
	srv := provedorContado(t, &chamadas)
	t.Cleanup(srv.Close)

	mr := miniredis.RunT(t)
	h := NewHandler(db, asaas.NewClient(srv.URL, "chave-teste", srv.Client()), NewCache(mr.Addr()))

	obter := func() Resumo {
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard?afiliadoId="+afiliadoID, nil)
		rr := httptest.NewRecorder()
		h.Obter(rr, req)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var resp struct {
			Data Resumo `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		return resp.Data
	}

	primeiro := obter()
	assert.EqualValues(t, 3, chamadas.Load())
	assert.Equal(t, 400.0, primeiro.PagamentosAReceber)

	// dentro do TTL o snapshot sai do cache, sem novas idas ao provedor
	segundo := obter()
	assert.EqualValues(t, 3, chamadas.Load())
	assert.Equal(t, primeiro, segundo)

	// TTL vencido recalcula
	mr.FastForward(cacheTTL + time.Second)
	obter()
	assert.EqualValues(t, 6, chamadas.Load())
}

func TestObterRespondeMesmoComCacheForaDoAr(t *testing.T) {
	db := novoBancoTeste(t)
	afiliadoID := uuid.NewString()

	var chamadas atomic.Int32
	srv := provedorContado(t, &chamadas)
	t.Cleanup(srv.Close)

	mr := miniredis.RunT(t)
	cache := NewCache(mr.Addr())
	mr.Close()

	h := NewHandler(db, asaas.NewClient(srv.URL, "chave-teste", srv.Client()), cache)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?afiliadoId="+afiliadoID, nil)
	rr := httptest.NewRecorder()
	h.Obter(rr, req)

	// Redis indisponível só custa o recálculo; a resposta continua 200
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Data Resumo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 400.0, resp.Data.PagamentosAReceber)
	assert.EqualValues(t, 3, chamadas.Load())
}

package asaas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// APIError carrega o corpo devolvido pelo Asaas em respostas não-2xx,
// repassado sem tradução para quem chamou.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("asaas: status %d: %s", e.Status, e.Body)
}

// Client é o cliente HTTP do Asaas. Construído explicitamente e injetado
// nos handlers; não existe instância global.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient cria um cliente para a API do Asaas. httpClient pode ser nil,
// caso em que um cliente com timeout de 30s é usado.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: baseURL, apiKey: apiKey, http: httpClient}
}

// do executa uma única tentativa; não há retry em nenhuma chamada.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("access_token", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Body: string(raw)}
	}

	if out != nil {
		return json.Unmarshal(raw, out)
	}
	return nil
}

// CriarCliente cria um customer no Asaas.
func (c *Client) CriarCliente(ctx context.Context, req CriarClienteRequest) (*Cliente, error) {
	var out Cliente
	if err := c.do(ctx, http.MethodPost, "/customers", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BuscarCliente busca o customer completo pelo id do provedor.
func (c *Client) BuscarCliente(ctx context.Context, id string) (*Cliente, error) {
	var out Cliente
	if err := c.do(ctx, http.MethodGet, "/customers/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListarClientes lista customers cujo externalReference é o id do afiliado.
func (c *Client) ListarClientes(ctx context.Context, externalReference string) ([]Cliente, error) {
	q := url.Values{"externalReference": {externalReference}}
	var out listaClientes
	if err := c.do(ctx, http.MethodGet, "/customers", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CriarCobranca cria um payment no Asaas.
func (c *Client) CriarCobranca(ctx context.Context, req CriarCobrancaRequest) (*Cobranca, error) {
	var out Cobranca
	if err := c.do(ctx, http.MethodPost, "/payments", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListarCobrancas lista payments pelo externalReference.
func (c *Client) ListarCobrancas(ctx context.Context, externalReference string) ([]Cobranca, error) {
	q := url.Values{"externalReference": {externalReference}}
	var out listaCobrancas
	if err := c.do(ctx, http.MethodGet, "/payments", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// BuscarQrCodePix busca o QR Code de uma cobrança PIX já criada.
func (c *Client) BuscarQrCodePix(ctx context.Context, paymentID string) (*QrCodePix, error) {
	var out QrCodePix
	if err := c.do(ctx, http.MethodGet, "/payments/"+paymentID+"/pixQrCode", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TokenizarCartao tokeniza um cartão de crédito para o customer informado.
func (c *Client) TokenizarCartao(ctx context.Context, req TokenizarCartaoRequest) (*CartaoTokenizado, error) {
	var out CartaoTokenizado
	if err := c.do(ctx, http.MethodPost, "/creditCard/tokenize", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CriarAssinatura cria uma subscription no Asaas.
func (c *Client) CriarAssinatura(ctx context.Context, req CriarAssinaturaRequest) (*Assinatura, error) {
	var out Assinatura
	if err := c.do(ctx, http.MethodPost, "/subscriptions", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListarAssinaturas lista subscriptions pelo externalReference; status é
// opcional (vazio lista todas).
func (c *Client) ListarAssinaturas(ctx context.Context, externalReference, status string) ([]Assinatura, error) {
	q := url.Values{"externalReference": {externalReference}}
	if status != "" {
		q.Set("status", status)
	}
	var out listaAssinaturas
	if err := c.do(ctx, http.MethodGet, "/subscriptions", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

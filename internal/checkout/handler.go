package checkout

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/nexumpay/api-afiliados/internal/asaas"
	"github.com/nexumpay/api-afiliados/internal/utils"

	"github.com/go-playground/validator/v10"
)

// Métodos de pagamento aceitos.
const (
	MetodoPix    = "PIX"
	MetodoBoleto = "BOLETO"
	MetodoCartao = "CREDIT_CARD"
)

// Dias após o vencimento para cancelar o registro de um boleto.
const diasCancelamentoBoleto = 7

// Handler orquestra o checkout: customer, tokenização, cobrança, QR Code
// PIX e assinatura opcional. Cada chamada externa é uma tentativa única;
// a primeira falha aborta o fluxo inteiro.
type Handler struct {
	Asaas    *asaas.Client
	Validate *validator.Validate

	// Espera antes de buscar o QR Code de uma cobrança PIX recém-criada.
	AguardoPixQr time.Duration
}

func NewHandler(client *asaas.Client) *Handler {
	return &Handler{
		Asaas:        client,
		Validate:     validator.New(),
		AguardoPixQr: 2 * time.Second,
	}
}

// calcularVencimento devolve o vencimento conforme o método: PIX vence em
// 1 hora, os demais em 3 dias.
func calcularVencimento(metodo string, agora time.Time) time.Time {
	if metodo == MetodoPix {
		return agora.Add(1 * time.Hour)
	}
	return agora.Add(72 * time.Hour)
}

// respondErroProvedor repassa o corpo bruto do provedor num 500.
func respondErroProvedor(w http.ResponseWriter, err error) {
	var apiErr *asaas.APIError
	if errors.As(err, &apiErr) {
		utils.RespondError(w, http.StatusInternalServerError, apiErr.Body)
		return
	}
	utils.RespondError(w, http.StatusInternalServerError, err.Error())
}

// POST /api/checkout
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "payload inválido: "+err.Error())
		return
	}

	ctx := r.Context()

	// 1. Customer no provedor
	cli, err := h.Asaas.CriarCliente(ctx, asaas.CriarClienteRequest{
		Name:              req.Nome,
		Email:             req.Email,
		CpfCnpj:           req.CpfCnpj,
		Phone:             req.Telefone,
		MobilePhone:       req.Celular,
		PostalCode:        req.Cep,
		Address:           req.Endereco,
		AddressNumber:     req.Numero,
		Province:          req.Bairro,
		ExternalReference: req.AfiliadoID,
	})
	if err != nil {
		respondErroProvedor(w, err)
		return
	}

	// 2. Tokenização quando o pagamento é no cartão
	var token *asaas.CartaoTokenizado
	if req.PaymentMethod == MetodoCartao {
		token, err = h.Asaas.TokenizarCartao(ctx, asaas.TokenizarCartaoRequest{
			Customer: cli.ID,
			CreditCard: asaas.CreditCard{
				HolderName:  req.Cartao.Nome,
				Number:      req.Cartao.Numero,
				ExpiryMonth: req.Cartao.MesValidade,
				ExpiryYear:  req.Cartao.AnoValidade,
				CCV:         req.Cartao.CCV,
			},
			CreditCardHolderInfo: h.holderInfo(&req),
		})
		if err != nil {
			respondErroProvedor(w, err)
			return
		}
	}

	// 3. Vencimento por método
	vencimento := calcularVencimento(req.PaymentMethod, time.Now())

	// 4. Cobrança com payload específico do método
	cobrancaReq := asaas.CriarCobrancaRequest{
		Customer:          cli.ID,
		BillingType:       req.PaymentMethod,
		Value:             req.Valor,
		DueDate:           vencimento.Format("2006-01-02"),
		Description:       req.Descricao,
		ExternalReference: req.AfiliadoID,
	}
	switch req.PaymentMethod {
	case MetodoPix:
		cobrancaReq.PixExpirationDate = vencimento.Format("2006-01-02 15:04:05")
	case MetodoBoleto:
		dias := diasCancelamentoBoleto
		cobrancaReq.DaysAfterDueDateToRegistrationCancellation = &dias
	case MetodoCartao:
		cobrancaReq.CreditCardToken = token.CreditCardToken
		// Dados crus como fallback caso o token seja recusado.
		cobrancaReq.CreditCard = &asaas.CreditCard{
			HolderName:  req.Cartao.Nome,
			Number:      req.Cartao.Numero,
			ExpiryMonth: req.Cartao.MesValidade,
			ExpiryYear:  req.Cartao.AnoValidade,
			CCV:         req.Cartao.CCV,
		}
		holder := h.holderInfo(&req)
		cobrancaReq.CreditCardHolderInfo = &holder
	}

	cobranca, err := h.Asaas.CriarCobranca(ctx, cobrancaReq)
	if err != nil {
		respondErroProvedor(w, err)
		return
	}

	resp := checkoutResponse{
		Success: true,
		Summary: Summary{
			CustomerID: cli.ID,
			PaymentID:  cobranca.ID,
			Valor:      req.Valor,
			Vencimento: vencimento.Format(time.RFC3339),
			Metodo:     req.PaymentMethod,
		},
	}

	// 5. QR Code PIX: consulta única após espera fixa
	if req.PaymentMethod == MetodoPix {
		time.Sleep(h.AguardoPixQr)
		qr, err := h.Asaas.BuscarQrCodePix(ctx, cobranca.ID)
		if err != nil {
			respondErroProvedor(w, err)
			return
		}
		resp.PixQrCode = qr.EncodedImage
		resp.PixPayload = qr.Payload
		resp.PixExpirationDate = qr.ExpirationDate
	}

	if req.PaymentMethod == MetodoBoleto {
		resp.BankSlipURL = cobranca.BankSlipURL
	}
	if req.PaymentMethod == MetodoCartao {
		resp.TransactionReceiptURL = cobranca.TransactionReceiptURL
	}

	// 6. Assinatura mensal quando o plano tem recorrência e o método é cartão
	if req.Plano != nil && req.Plano.ValorMensal > 0 && req.PaymentMethod == MetodoCartao {
		ass, err := h.Asaas.CriarAssinatura(ctx, asaas.CriarAssinaturaRequest{
			Customer:          cli.ID,
			BillingType:       MetodoCartao,
			Value:             req.Plano.ValorMensal,
			NextDueDate:       vencimento.Format("2006-01-02"),
			Cycle:             "MONTHLY",
			Description:       req.Plano.Nome,
			ExternalReference: req.AfiliadoID,
			CreditCardToken:   token.CreditCardToken,
		})
		if err != nil {
			respondErroProvedor(w, err)
			return
		}
		resp.Summary.SubscriptionID = ass.ID
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) holderInfo(req *CheckoutRequest) asaas.CreditCardHolderInfo {
	return asaas.CreditCardHolderInfo{
		Name:          req.Nome,
		Email:         req.Email,
		CpfCnpj:       req.CpfCnpj,
		PostalCode:    req.Cep,
		AddressNumber: req.Numero,
		Phone:         req.Telefone,
		MobilePhone:   req.Celular,
	}
}

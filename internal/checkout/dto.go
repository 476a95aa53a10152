package checkout

// CartaoDTO carrega os dados do cartão e do titular num checkout
// CREDIT_CARD.
type CartaoDTO struct {
	Nome        string `json:"nome" validate:"required"`
	Numero      string `json:"numero" validate:"required"`
	MesValidade string `json:"mesValidade" validate:"required"`
	AnoValidade string `json:"anoValidade" validate:"required"`
	CCV         string `json:"ccv" validate:"required"`
}

// PlanoDTO descreve o plano adquirido; ValorMensal > 0 indica componente
// recorrente.
type PlanoDTO struct {
	Nome        string  `json:"nome"`
	ValorMensal float64 `json:"valorMensal"`
}

// CheckoutRequest é validado na borda; payload mal formado é rejeitado
// antes de qualquer chamada ao provedor.
type CheckoutRequest struct {
	Nome          string     `json:"nome" validate:"required"`
	Email         string     `json:"email" validate:"required,email"`
	CpfCnpj       string     `json:"cpfCnpj" validate:"required"`
	Telefone      string     `json:"telefone"`
	Celular       string     `json:"celular"`
	Cep           string     `json:"cep"`
	Endereco      string     `json:"endereco"`
	Numero        string     `json:"numero"`
	Bairro        string     `json:"bairro"`
	PaymentMethod string     `json:"paymentMethod" validate:"required,oneof=PIX BOLETO CREDIT_CARD"`
	Valor         float64    `json:"valor" validate:"required,gt=0"`
	Descricao     string     `json:"descricao"`
	AfiliadoID    string     `json:"afiliadoId"`
	Plano         *PlanoDTO  `json:"plano"`
	Cartao        *CartaoDTO `json:"cartao" validate:"required_if=PaymentMethod CREDIT_CARD"`
}

// Summary resume o que foi criado no provedor.
type Summary struct {
	CustomerID     string  `json:"customerId"`
	PaymentID      string  `json:"paymentId"`
	SubscriptionID string  `json:"subscriptionId,omitempty"`
	Valor          float64 `json:"valor"`
	Vencimento     string  `json:"vencimento"`
	Metodo         string  `json:"metodo"`
}

type checkoutResponse struct {
	Success bool `json:"success"`

	// PIX
	PixQrCode         string `json:"pixQrCode,omitempty"`
	PixPayload        string `json:"pixPayload,omitempty"`
	PixExpirationDate string `json:"pixExpirationDate,omitempty"`

	// Boleto
	BankSlipURL string `json:"bankSlipUrl,omitempty"`

	// Cartão
	TransactionReceiptURL string `json:"transactionReceiptUrl,omitempty"`

	Summary Summary `json:"summary"`
}

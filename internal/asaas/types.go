package asaas

// Cliente espelha o customer do Asaas.
type Cliente struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	CpfCnpj           string `json:"cpfCnpj"`
	Phone             string `json:"phone"`
	MobilePhone       string `json:"mobilePhone"`
	ExternalReference string `json:"externalReference"`
	Deleted           bool   `json:"deleted"`
	DateCreated       string `json:"dateCreated"`
}

type CriarClienteRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	CpfCnpj              string `json:"cpfCnpj"`
	Phone                string `json:"phone,omitempty"`
	MobilePhone          string `json:"mobilePhone,omitempty"`
	PostalCode           string `json:"postalCode,omitempty"`
	Address              string `json:"address,omitempty"`
	AddressNumber        string `json:"addressNumber,omitempty"`
	Province             string `json:"province,omitempty"`
	ExternalReference    string `json:"externalReference,omitempty"`
	NotificationDisabled bool   `json:"notificationDisabled"`
}

// Cobranca espelha o payment do Asaas.
type Cobranca struct {
	ID                    string  `json:"id"`
	Customer              string  `json:"customer"`
	BillingType           string  `json:"billingType"`
	Status                string  `json:"status"`
	Value                 float64 `json:"value"`
	NetValue              float64 `json:"netValue"`
	Description           string  `json:"description"`
	DueDate               string  `json:"dueDate"`
	PaymentDate           string  `json:"paymentDate"`
	ExternalReference     string  `json:"externalReference"`
	InvoiceURL            string  `json:"invoiceUrl"`
	BankSlipURL           string  `json:"bankSlipUrl"`
	TransactionReceiptURL string  `json:"transactionReceiptUrl"`
}

// Dados do cartão
type CreditCard struct {
	HolderName  string `json:"holderName"`
	Number      string `json:"number"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	CCV         string `json:"ccv"`
}

// Dados do titular (antifraude)
type CreditCardHolderInfo struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	CpfCnpj       string `json:"cpfCnpj"`
	PostalCode    string `json:"postalCode"`
	AddressNumber string `json:"addressNumber"`
	Phone         string `json:"phone"`
	MobilePhone   string `json:"mobilePhone,omitempty"`
}

type CriarCobrancaRequest struct {
	Customer          string  `json:"customer"`
	BillingType       string  `json:"billingType"`
	Value             float64 `json:"value"`
	DueDate           string  `json:"dueDate"`
	Description       string  `json:"description,omitempty"`
	ExternalReference string  `json:"externalReference,omitempty"`

	// PIX
	PixExpirationDate string `json:"pixExpirationDate,omitempty"`

	// Boleto
	DaysAfterDueDateToRegistrationCancellation *int `json:"daysAfterDueDateToRegistrationCancellation,omitempty"`

	// Cartão de crédito
	CreditCardToken      string                `json:"creditCardToken,omitempty"`
	CreditCard           *CreditCard           `json:"creditCard,omitempty"`
	CreditCardHolderInfo *CreditCardHolderInfo `json:"creditCardHolderInfo,omitempty"`
}

type TokenizarCartaoRequest struct {
	Customer             string               `json:"customer"`
	CreditCard           CreditCard           `json:"creditCard"`
	CreditCardHolderInfo CreditCardHolderInfo `json:"creditCardHolderInfo"`
	RemoteIP             string               `json:"remoteIp,omitempty"`
}

type CartaoTokenizado struct {
	CreditCardToken  string `json:"creditCardToken"`
	CreditCardNumber string `json:"creditCardNumber"`
	CreditCardBrand  string `json:"creditCardBrand"`
}

// Assinatura espelha o subscription do Asaas.
type Assinatura struct {
	ID                string  `json:"id"`
	Customer          string  `json:"customer"`
	BillingType       string  `json:"billingType"`
	Status            string  `json:"status"`
	Value             float64 `json:"value"`
	Cycle             string  `json:"cycle"`
	Description       string  `json:"description"`
	NextDueDate       string  `json:"nextDueDate"`
	ExternalReference string  `json:"externalReference"`
}

type CriarAssinaturaRequest struct {
	Customer          string  `json:"customer"`
	BillingType       string  `json:"billingType"`
	Value             float64 `json:"value"`
	NextDueDate       string  `json:"nextDueDate"`
	Cycle             string  `json:"cycle"`
	Description       string  `json:"description,omitempty"`
	ExternalReference string  `json:"externalReference,omitempty"`
	CreditCardToken   string  `json:"creditCardToken,omitempty"`
}

// QrCodePix é a resposta de GET /payments/{id}/pixQrCode.
type QrCodePix struct {
	EncodedImage   string `json:"encodedImage"`
	Payload        string `json:"payload"`
	ExpirationDate string `json:"expirationDate"`
}

// Respostas paginadas de listagem
type listaClientes struct {
	Data []Cliente `json:"data"`
}

type listaCobrancas struct {
	Data []Cobranca `json:"data"`
}

type listaAssinaturas struct {
	Data []Assinatura `json:"data"`
}

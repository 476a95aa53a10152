package cliente

import (
	"time"

	"github.com/nexumpay/api-afiliados/internal/asaas"
	"gorm.io/gorm"
)

// Customer é o espelho local do customer do Asaas, etiquetado com o afiliado
// dono. Criado e atualizado somente pelo webhook; nunca apagado localmente —
// o campo Deleted espelha o estado no provedor.
type Customer struct {
	ID          string    `gorm:"primaryKey;size:40" json:"id"`
	AfiliadoID  string    `gorm:"size:36;index" json:"afiliadoId"`
	Nome        string    `json:"nome"`
	Email       string    `json:"email"`
	CPFCNPJ     string    `gorm:"column:cpf_cnpj" json:"cpfCnpj"`
	Telefone    string    `json:"telefone"`
	Celular     string    `json:"celular"`
	Deleted     bool      `gorm:"not null;default:false" json:"deleted"`
	DataCriacao string    `json:"dataCriacao"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Customer) TableName() string {
	return "customers"
}

// FromAsaas renomeia os campos do provedor para o schema local.
func FromAsaas(c *asaas.Cliente, afiliadoID string) *Customer {
	return &Customer{
		ID:          c.ID,
		AfiliadoID:  afiliadoID,
		Nome:        c.Name,
		Email:       c.Email,
		CPFCNPJ:     c.CpfCnpj,
		Telefone:    c.Phone,
		Celular:     c.MobilePhone,
		Deleted:     c.Deleted,
		DataCriacao: c.DateCreated,
	}
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Customer{})
}

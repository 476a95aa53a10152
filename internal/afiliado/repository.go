package afiliado

import (
	"gorm.io/gorm"
)

type Repository interface {
	BuscarPorEmail(db *gorm.DB, email string) (*Afiliado, error)
	Salvar(db *gorm.DB, a *Afiliado) error
	BuscarPorID(db *gorm.DB, id string) (*Afiliado, error)
	ListarTodos(db *gorm.DB) ([]Afiliado, error)
	Atualizar(db *gorm.DB, id string, novosDados *Afiliado) error
	AtualizarSenha(db *gorm.DB, id string, hash string) error
	Deletar(db *gorm.DB, id string) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Afiliado, error) {
	var a Afiliado
	if err := db.Where("email = ?", email).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repositoryImpl) Salvar(db *gorm.DB, a *Afiliado) error {
	return db.Save(a).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id string) (*Afiliado, error) {
	var a Afiliado
	err := db.First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Afiliado, error) {
	var afiliados []Afiliado
	err := db.Find(&afiliados).Error
	return afiliados, err
}

// Atualizar nunca toca em Senha, IsAdmin ou PercentualComissao; esses campos
// só mudam por fluxos próprios de admin.
func (r *repositoryImpl) Atualizar(db *gorm.DB, id string, novosDados *Afiliado) error {
	var existente Afiliado
	if err := db.First(&existente, "id = ?", id).Error; err != nil {
		return err
	}

	existente.Nome = novosDados.Nome
	existente.Sobrenome = novosDados.Sobrenome
	existente.Email = novosDados.Email
	existente.Telefone = novosDados.Telefone
	existente.CPFCNPJ = novosDados.CPFCNPJ
	existente.ChavePix = novosDados.ChavePix

	return db.Save(&existente).Error
}

// AtualizarSenha troca somente o hash de senha do afiliado.
func (r *repositoryImpl) AtualizarSenha(db *gorm.DB, id string, hash string) error {
	var existente Afiliado
	if err := db.First(&existente, "id = ?", id).Error; err != nil {
		return err
	}

	existente.Senha = hash
	return db.Save(&existente).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id string) error {
	return db.Delete(&Afiliado{}, "id = ?", id).Error
}

package saque

import (
	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Saque
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Criar insere um novo saque usando a sessão informada (permite transação).
func (r *Repository) Criar(db *gorm.DB, s *Saque) error {
	return db.Create(s).Error
}

// BuscarPorID retorna um saque pelo ID
func (r *Repository) BuscarPorID(id uint) (*Saque, error) {
	var s Saque
	if err := r.DB.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ListarPorAfiliado retorna os saques de um afiliado, mais recentes primeiro.
func (r *Repository) ListarPorAfiliado(afiliadoID string) ([]Saque, error) {
	var list []Saque
	err := r.DB.Where("afiliado_id = ?", afiliadoID).Order("created_at DESC").Find(&list).Error
	return list, err
}

// ListarTodos retorna todos os saques, com filtro opcional por status.
func (r *Repository) ListarTodos(status string) ([]Saque, error) {
	var list []Saque
	q := r.DB.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&list).Error
	return list, err
}

// Atualizar salva alterações em um saque existente.
func (r *Repository) Atualizar(s *Saque) error {
	return r.DB.Save(s).Error
}

// SomarPorStatus soma o valor dos saques de um afiliado em um status.
func (r *Repository) SomarPorStatus(db *gorm.DB, afiliadoID, status string) (float64, error) {
	var total float64
	err := db.Model(&Saque{}).
		Where("afiliado_id = ? AND status = ?", afiliadoID, status).
		Select("COALESCE(SUM(valor), 0)").
		Scan(&total).Error
	return total, err
}

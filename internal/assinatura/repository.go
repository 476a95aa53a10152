package assinatura

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsula operações de banco para Subscription
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Upsert insere ou atualiza pelo id do provedor, carimbando updated_at.
func (r *Repository) Upsert(s *Subscription) error {
	s.UpdatedAt = time.Now()
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(s).Error
}

// BuscarPorID retorna uma assinatura pelo id do provedor.
func (r *Repository) BuscarPorID(id string) (*Subscription, error) {
	var s Subscription
	if err := r.DB.First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// SomarAtivas soma o valor das assinaturas ACTIVE do afiliado.
func (r *Repository) SomarAtivas(db *gorm.DB, afiliadoID string) (float64, error) {
	var total float64
	err := db.Model(&Subscription{}).
		Where("afiliado_id = ? AND status = ?", afiliadoID, StatusActive).
		Select("COALESCE(SUM(valor), 0)").
		Scan(&total).Error
	return total, err
}

package cliente

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsula operações de banco para Customer
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Upsert insere ou atualiza pelo id do provedor, carimbando updated_at.
// Reentregas do mesmo evento são idempotentes por construção.
func (r *Repository) Upsert(c *Customer) error {
	c.UpdatedAt = time.Now()
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(c).Error
}

// BuscarPorID retorna um customer pelo id do provedor.
func (r *Repository) BuscarPorID(id string) (*Customer, error) {
	var c Customer
	if err := r.DB.First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

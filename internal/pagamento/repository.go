package pagamento

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsula operações de banco para Payment
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Upsert insere ou atualiza pelo id do provedor. A chave primária é o id
// atribuído pelo Asaas, então reentregar o mesmo evento converge para o
// estado do último payload.
func (r *Repository) Upsert(p *Payment) error {
	p.UpdatedAt = time.Now()
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(p).Error
}

// BuscarPorID retorna uma cobrança pelo id do provedor.
func (r *Repository) BuscarPorID(id string) (*Payment, error) {
	var p Payment
	if err := r.DB.First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// SomarRecebiveis soma o valor das cobranças CONFIRMED/RECEIVED do afiliado.
func (r *Repository) SomarRecebiveis(db *gorm.DB, afiliadoID string) (float64, error) {
	var total float64
	err := db.Model(&Payment{}).
		Where("afiliado_id = ? AND status IN ?", afiliadoID, []string{StatusConfirmed, StatusReceived}).
		Select("COALESCE(SUM(valor), 0)").
		Scan(&total).Error
	return total, err
}

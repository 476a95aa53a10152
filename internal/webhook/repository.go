package webhook

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsula o livro-razão de eventos processados
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// JaProcessado informa se o evento do provedor já foi processado.
func (r *Repository) JaProcessado(eventID string) (bool, error) {
	var ev WebhookEvent
	err := r.DB.First(&ev, "event_id = ?", eventID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ev.ProcessedAt != nil, nil
}

// MarcarProcessado registra o evento com carimbo de processamento. O insert
// ignora conflito de event_id: se duas entregas simultâneas do mesmo evento
// chegarem aqui, vale o primeiro registro e as duas respondem 200.
func (r *Repository) MarcarProcessado(ev *WebhookEvent) error {
	now := time.Now()
	ev.ProcessedAt = &now
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoNothing: true,
	}).Create(ev).Error
}

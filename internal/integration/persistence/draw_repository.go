// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/goalguard/backend/internal/application/adapter"
	"github.com/goalguard/backend/internal/domain/entity"
	domainerror "github.com/goalguard/backend/internal/domain/error"
	"github.com/goalguard/backend/internal/integration/persistence/model"
)

// drawRepository implements the adapter.DrawRepository interface.
type drawRepository struct {
	db *gorm.DB
}

// NewDrawRepository creates a new draw repository instance.
func NewDrawRepository(db *gorm.DB) adapter.DrawRepository {
	return &drawRepository{
		db: db,
	}
}

// Create creates a new draw.
func (r *drawRepository) Create(ctx context.Context, draw *entity.Draw) error {
	drawModel := model.DrawFromEntity(draw)
	result := r.db.WithContext(ctx).Create(drawModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a draw by its ID.
func (r *drawRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Draw, error) {
	var drawModel model.DrawModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&drawModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrDrawNotFound
		}
		return nil, result.Error
	}
	return drawModel.ToEntity(), nil
}

// FindDue retrieves upcoming draws whose draw date has passed.
func (r *drawRepository) FindDue(ctx context.Context, now time.Time) ([]*entity.Draw, error) {
	var drawModels []model.DrawModel
	result := r.db.WithContext(ctx).
		Where("status = ? AND draw_date <= ?", string(entity.DrawStatusUpcoming), now).
		Order("draw_date ASC").
		Find(&drawModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toDrawEntities(drawModels), nil
}

// FindCurrent retrieves upcoming draws ordered by draw date.
func (r *drawRepository) FindCurrent(ctx context.Context, now time.Time) ([]*entity.Draw, error) {
	var drawModels []model.DrawModel
	result := r.db.WithContext(ctx).
		Where("status = ? AND draw_date > ?", string(entity.DrawStatusUpcoming), now).
		Order("draw_date ASC").
		Find(&drawModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toDrawEntities(drawModels), nil
}

// FindCompleted retrieves the most recent completed draws.
func (r *drawRepository) FindCompleted(ctx context.Context, limit int) ([]*entity.Draw, error) {
	var drawModels []model.DrawModel
	result := r.db.WithContext(ctx).
		Where("status = ?", string(entity.DrawStatusCompleted)).
		Order("draw_date DESC").
		Limit(limit).
		Find(&drawModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toDrawEntities(drawModels), nil
}

// Claim transitions the draw from upcoming to in_progress with a single
// conditional update. RowsAffected tells us whether this caller won; a
// concurrent executor that already claimed the row leaves nothing to update.
func (r *drawRepository) Claim(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.DrawModel{}).
		Where("id = ? AND status = ?", id, string(entity.DrawStatusUpcoming)).
		Updates(map[string]interface{}{
			"status":     string(entity.DrawStatusInProgress),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Release returns a claimed draw to upcoming so the next tick retries it.
func (r *drawRepository) Release(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.DrawModel{}).
		Where("id = ? AND status = ?", id, string(entity.DrawStatusInProgress)).
		Updates(map[string]interface{}{
			"status":     string(entity.DrawStatusUpcoming),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Complete persists the winner list and the terminal status in one update.
func (r *drawRepository) Complete(ctx context.Context, draw *entity.Draw) error {
	drawModel := model.DrawFromEntity(draw)
	result := r.db.WithContext(ctx).
		Model(&model.DrawModel{}).
		Where("id = ?", draw.ID).
		Updates(map[string]interface{}{
			"status":      drawModel.Status,
			"winners":     drawModel.Winners,
			"executed_at": drawModel.ExecutedAt,
			"updated_at":  drawModel.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func toDrawEntities(models []model.DrawModel) []*entity.Draw {
	out := make([]*entity.Draw, len(models))
	for i, m := range models {
		out[i] = m.ToEntity()
	}
	return out
}

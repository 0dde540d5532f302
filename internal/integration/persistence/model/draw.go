// Package model defines database models for persistence layer.
package model

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goalguard/backend/internal/domain/entity"
	"github.com/goalguard/backend/internal/domain/valueobject"
)

// DrawModel represents the draws table in the database. The prize structure
// and winner list are stored as JSON documents; the status column carries the
// single-row conditional update that guards draw execution.
type DrawModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Kind           string          `gorm:"type:varchar(30);not null"`
	Name           string          `gorm:"type:varchar(100);not null"`
	PrizePool      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	EntryStart     time.Time       `gorm:"not null"`
	EntryEnd       time.Time       `gorm:"not null"`
	DrawDate       time.Time       `gorm:"not null;index"`
	Status         string          `gorm:"type:varchar(20);not null;default:'upcoming';index"`
	MinimumTasks   int             `gorm:"not null;default:1"`
	PrizeStructure string          `gorm:"type:jsonb;not null;default:'{}'"`
	Winners        string          `gorm:"type:jsonb;not null;default:'[]'"`
	ExecutedAt     sql.NullTime
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for the DrawModel.
func (DrawModel) TableName() string {
	return "draws"
}

// ToEntity converts a DrawModel to a domain Draw entity.
func (m *DrawModel) ToEntity() *entity.Draw {
	var structure valueobject.PrizeStructure
	if m.PrizeStructure != "" {
		if err := json.Unmarshal([]byte(m.PrizeStructure), &structure); err != nil {
			slog.Warn("Failed to unmarshal prize structure", "error", err, "id", m.ID)
		}
	}

	var winners []entity.Winner
	if m.Winners != "" {
		if err := json.Unmarshal([]byte(m.Winners), &winners); err != nil {
			slog.Warn("Failed to unmarshal draw winners", "error", err, "id", m.ID)
		}
	}

	var executedAt *time.Time
	if m.ExecutedAt.Valid {
		executedAt = &m.ExecutedAt.Time
	}

	return &entity.Draw{
		ID:             m.ID,
		Kind:           entity.DrawKind(m.Kind),
		Name:           m.Name,
		PrizePool:      m.PrizePool,
		EntryStart:     m.EntryStart,
		EntryEnd:       m.EntryEnd,
		DrawDate:       m.DrawDate,
		Status:         entity.DrawStatus(m.Status),
		MinimumTasks:   m.MinimumTasks,
		PrizeStructure: structure,
		Winners:        winners,
		ExecutedAt:     executedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// DrawFromEntity creates a DrawModel from a domain Draw entity.
func DrawFromEntity(draw *entity.Draw) *DrawModel {
	structureJSON, err := json.Marshal(draw.PrizeStructure)
	if err != nil {
		slog.Error("Failed to marshal prize structure", "error", err, "id", draw.ID)
		structureJSON = []byte("{}")
	}

	winnersJSON, err := json.Marshal(draw.Winners)
	if err != nil {
		slog.Error("Failed to marshal draw winners", "error", err, "id", draw.ID)
		winnersJSON = []byte("[]")
	}
	if draw.Winners == nil {
		winnersJSON = []byte("[]")
	}

	var executedAt sql.NullTime
	if draw.ExecutedAt != nil {
		executedAt = sql.NullTime{Time: *draw.ExecutedAt, Valid: true}
	}

	return &DrawModel{
		ID:             draw.ID,
		Kind:           string(draw.Kind),
		Name:           draw.Name,
		PrizePool:      draw.PrizePool,
		EntryStart:     draw.EntryStart,
		EntryEnd:       draw.EntryEnd,
		DrawDate:       draw.DrawDate,
		Status:         string(draw.Status),
		MinimumTasks:   draw.MinimumTasks,
		PrizeStructure: string(structureJSON),
		Winners:        string(winnersJSON),
		ExecutedAt:     executedAt,
		CreatedAt:      draw.CreatedAt,
		UpdatedAt:      draw.UpdatedAt,
	}
}

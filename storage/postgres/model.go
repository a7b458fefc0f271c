package postgres

import (
	"time"

	"labor-contract/types"
)

// Session 对应数据库里的 wizard_sessions 表
type Session struct {
	ID          string               `gorm:"column:id;primaryKey;type:uuid"`
	CurrentStep int                  `gorm:"column:current_step;type:smallint;not null"`
	Contract    types.ContractRecord `gorm:"column:contract;type:jsonb;serializer:json"`
	LastReport  *types.ReviewReport  `gorm:"column:last_report;type:jsonb;serializer:json"`

	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"index"`
}

func (Session) TableName() string {
	return "wizard_sessions"
}

func fromSession(s *types.Session) *Session {
	return &Session{
		ID:          s.ID,
		CurrentStep: int(s.CurrentStep),
		Contract:    s.Contract.Clone(),
		LastReport:  s.Clone().LastReport,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (r *Session) toSession() *types.Session {
	return &types.Session{
		ID:          r.ID,
		CurrentStep: types.Step(r.CurrentStep),
		Contract:    r.Contract,
		LastReport:  r.LastReport,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

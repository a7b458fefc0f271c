package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"labor-contract/types"
)

// SessionRepo 封装对 wizard_sessions 表的所有操作
type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Create(ctx context.Context, s *types.Session) error {
	return r.db.WithContext(ctx).Create(fromSession(s)).Error
}

func (r *SessionRepo) Get(ctx context.Context, id string) (*types.Session, error) {
	var row Session
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toSession(), nil
}

// Save 覆盖整行；会话不存在时返回 ErrSessionNotFound
func (r *SessionRepo) Save(ctx context.Context, s *types.Session) error {
	row := fromSession(s)
	res := r.db.WithContext(ctx).
		Model(&Session{}).
		Where("id = ?", s.ID).
		Select("current_step", "contract", "last_report", "updated_at").
		Updates(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return types.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Session{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return types.ErrSessionNotFound
	}
	return nil
}

// PurgeIdle 定时任务：删除 before 之前未更新的会话，返回被删除的 id
func (r *SessionRepo) PurgeIdle(ctx context.Context, before time.Time) ([]string, error) {
	var purged []Session
	err := r.db.WithContext(ctx).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Where("updated_at < ?", before).
		Delete(&purged).Error
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(purged))
	for i, s := range purged {
		ids[i] = s.ID
	}
	return ids, nil
}

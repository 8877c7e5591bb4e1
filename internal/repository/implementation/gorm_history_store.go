package implementation

import (
	"context"
	"errors"

	"ats-assistant-be/internal/model"
	"ats-assistant-be/pkg/assistant"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormHistoryStore struct {
	db *gorm.DB
}

var _ assistant.HistoryStore = &GormHistoryStore{}

func NewGormHistoryStore(db *gorm.DB) *GormHistoryStore {
	return &GormHistoryStore{db: db}
}

func (s *GormHistoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	var m model.HistoryBlob
	if err := s.db.WithContext(ctx).Where("history_key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, assistant.ErrHistoryNotFound
		}
		return nil, err
	}
	return []byte(m.Data), nil
}

func (s *GormHistoryStore) Put(ctx context.Context, key string, blob []byte) error {
	m := model.HistoryBlob{Key: key, Data: datatypes.JSON(blob)}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "history_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&m).Error
}

func (s *GormHistoryStore) Clear(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("history_key = ?", key).Delete(&model.HistoryBlob{}).Error
}

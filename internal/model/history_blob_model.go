package model

import (
	"time"

	"gorm.io/datatypes"
)

// HistoryBlob stores one owner's chat or search history as a JSON document.
type HistoryBlob struct {
	Key       string         `gorm:"column:history_key;primaryKey;size:191"`
	Data      datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (HistoryBlob) TableName() string {
	return "assistant_history"
}

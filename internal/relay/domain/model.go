package domain

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

var (
	// ErrDuplicate marks a callback whose id was already ingested.
	ErrDuplicate = errors.New("relay: duplicate callback")
)

// CallbackRecord is a persisted Sweetpay callback.
type CallbackRecord struct {
	ID              snowflake.ID   `json:"id" gorm:"primaryKey"`
	CallbackID      int64          `json:"callback_id" gorm:"not null;index"`
	Event           string         `json:"event" gorm:"type:text;not null"`
	SessionID       string         `json:"session_id" gorm:"type:text;index"`
	MerchantOrderID string         `json:"merchant_order_id" gorm:"type:text;index"`
	Status          string         `json:"status" gorm:"type:text"`
	Payload         datatypes.JSON `json:"payload" gorm:"not null"`
	ReceivedAt      time.Time      `json:"received_at" gorm:"not null"`
}

func (CallbackRecord) TableName() string { return "sweetpay_callbacks" }

// Service ingests raw callback requests: verify, parse, deduplicate,
// persist.
type Service interface {
	Ingest(ctx context.Context, payload []byte, headers http.Header) (*CallbackRecord, error)
}

package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/redis/go-redis/v9"
	"github.com/sweetpay/sweetpay-go/internal/config"
	"github.com/sweetpay/sweetpay-go/internal/relay/domain"
	"github.com/sweetpay/sweetpay-go/webhook"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// dedupeTTL bounds how long a callback id is remembered. Sweetpay
// retries failed deliveries for at most a day.
const dedupeTTL = 24 * time.Hour

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Redis *redis.Client `optional:"true"`
	Cfg   config.Config
	GenID *snowflake.Node
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	redis  *redis.Client
	secret string
	genID  *snowflake.Node
}

func NewService(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("relay.service"),
		redis:  p.Redis,
		secret: p.Cfg.CallbackSecret,
		genID:  p.GenID,
	}
}

// Ingest verifies the callback token, parses the envelope, drops
// duplicates and persists the rest.
func (s *Service) Ingest(ctx context.Context, payload []byte, headers http.Header) (*domain.CallbackRecord, error) {
	env, err := webhook.ParseAndVerify(payload, headers, s.secret)
	if err != nil {
		return nil, err
	}

	fresh, err := s.markSeen(ctx, env.CallbackID)
	if err != nil {
		return nil, err
	}
	if !fresh {
		s.log.Debug("callback already ingested",
			zap.Int64("callback_id", env.CallbackID),
			zap.String("event", env.Event))
		return nil, domain.ErrDuplicate
	}

	record := &domain.CallbackRecord{
		ID:              s.genID.Generate(),
		CallbackID:      env.CallbackID,
		Event:           env.Event,
		SessionID:       env.Payload.SessionID,
		MerchantOrderID: env.Payload.MerchantOrderID,
		Status:          env.Payload.Status,
		Payload:         datatypes.JSON(payload),
		ReceivedAt:      time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("store callback: %w", err)
	}

	s.log.Info("callback ingested",
		zap.Int64("callback_id", env.CallbackID),
		zap.String("event", env.Event),
		zap.String("status", env.Payload.Status))
	return record, nil
}

// markSeen claims the callback id. Without redis configured every
// callback counts as fresh and the database is the only record.
func (s *Service) markSeen(ctx context.Context, callbackID int64) (bool, error) {
	if s.redis == nil {
		return true, nil
	}
	key := fmt.Sprintf("sweetpay:relay:callback:%d", callbackID)
	ok, err := s.redis.SetNX(ctx, key, 1, dedupeTTL).Result()
	if err != nil {
		return false, fmt.Errorf("dedupe callback: %w", err)
	}
	return ok, nil
}

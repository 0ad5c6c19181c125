package observability

import (
	"github.com/sweetpay/sweetpay-go/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewLogger builds the process logger. Debug mode switches to the
// development encoder.
func NewLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

var Module = fx.Module("observability",
	fx.Provide(NewLogger),
)

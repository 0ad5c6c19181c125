package relay

import (
	"context"
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/sweetpay/sweetpay-go/internal/config"
	redismod "github.com/sweetpay/sweetpay-go/internal/redis"
	"github.com/sweetpay/sweetpay-go/internal/relay/domain"
	"github.com/sweetpay/sweetpay-go/internal/relay/server"
	"github.com/sweetpay/sweetpay-go/internal/relay/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var Module = fx.Module("relay",
	redismod.Module,
	fx.Provide(NewDB),
	fx.Provide(NewSnowflake),
	fx.Provide(service.NewService),
	fx.Provide(server.New),
	fx.Invoke(RunHTTP),
)

// NewDB opens the callback store. A postgres:// DSN selects postgres;
// anything else is treated as a sqlite path.
func NewDB(cfg config.Config) (*gorm.DB, error) {
	var dial gorm.Dialector
	if strings.HasPrefix(cfg.DatabaseDSN, "postgres://") || strings.HasPrefix(cfg.DatabaseDSN, "postgresql://") {
		dial = postgres.Open(cfg.DatabaseDSN)
	} else {
		dial = sqlite.Open(cfg.DatabaseDSN)
	}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&domain.CallbackRecord{}); err != nil {
		return nil, err
	}
	return db, nil
}

func NewSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

// RunHTTP starts the relay HTTP server under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, cfg config.Config, srv *server.Server, log *zap.Logger) {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	srv.Register(engine)

	httpSrv := &http.Server{Addr: cfg.ListenAddr, Handler: engine}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("relay listening", zap.String("addr", cfg.ListenAddr))
			go func() {
				if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("relay server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return httpSrv.Shutdown(ctx)
		},
	})
}

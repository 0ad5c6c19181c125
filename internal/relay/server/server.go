package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sweetpay/sweetpay-go/internal/relay/domain"
	"github.com/sweetpay/sweetpay-go/webhook"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// maxCallbackBody caps how much of a callback request is read.
const maxCallbackBody = 1 << 20

type Params struct {
	fx.In

	Svc     domain.Service
	Log     *zap.Logger
	Metrics prometheus.Registerer `optional:"true"`
}

type Server struct {
	svc       domain.Service
	log       *zap.Logger
	callbacks *prometheus.CounterVec
}

func New(p Params) *Server {
	reg := p.Metrics
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &Server{
		svc: p.Svc,
		log: p.Log.Named("relay.server"),
		callbacks: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "sweetpay_relay_callbacks_total",
			Help: "Callbacks received by the relay, by result.",
		}, []string{"result"}),
	}
}

// Register wires the relay routes onto the engine.
func (s *Server) Register(r *gin.Engine) {
	r.POST("/callbacks", s.handleCallback)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (s *Server) handleCallback(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxCallbackBody))
	if err != nil {
		s.callbacks.WithLabelValues("read_error").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	record, err := s.svc.Ingest(c.Request.Context(), payload, c.Request.Header)
	switch {
	case err == nil:
		s.callbacks.WithLabelValues("ingested").Inc()
		c.JSON(http.StatusOK, gin.H{"data": record})
	case errors.Is(err, domain.ErrDuplicate):
		// Acknowledge retries so Sweetpay stops resending.
		s.callbacks.WithLabelValues("duplicate").Inc()
		c.JSON(http.StatusOK, gin.H{"status": "duplicate"})
	case errors.Is(err, webhook.ErrInvalidToken):
		s.callbacks.WithLabelValues("unauthorized").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid callback token"})
	case errors.Is(err, webhook.ErrInvalidPayload):
		s.callbacks.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid callback payload"})
	default:
		s.callbacks.WithLabelValues("error").Inc()
		s.log.Error("callback ingestion failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

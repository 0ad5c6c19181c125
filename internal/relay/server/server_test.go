package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweetpay/sweetpay-go/internal/relay/domain"
	"github.com/sweetpay/sweetpay-go/webhook"
	"go.uber.org/zap"
)

type stubService struct {
	record *domain.CallbackRecord
	err    error
}

func (s *stubService) Ingest(ctx context.Context, payload []byte, headers http.Header) (*domain.CallbackRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.record, nil
}

func testEngine(t *testing.T, svc domain.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := New(Params{
		Svc:     svc,
		Log:     zap.NewNop(),
		Metrics: prometheus.NewRegistry(),
	})
	r := gin.New()
	srv.Register(r)
	return r
}

func postCallback(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/callbacks", strings.NewReader(body))
	req.Header.Set(webhook.CallbackTokenHeader, "secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCallbackIngested(t *testing.T) {
	r := testEngine(t, &stubService{record: &domain.CallbackRecord{CallbackID: 1, Event: "TEST"}})
	w := postCallback(r, `{"callbackId":1,"event":"TEST"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"callback_id":1`)
}

func TestCallbackDuplicateIsAcknowledged(t *testing.T) {
	r := testEngine(t, &stubService{err: domain.ErrDuplicate})
	w := postCallback(r, `{"callbackId":1,"event":"TEST"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "duplicate")
}

func TestCallbackInvalidToken(t *testing.T) {
	r := testEngine(t, &stubService{err: webhook.ErrInvalidToken})
	w := postCallback(r, `{}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCallbackInvalidPayload(t *testing.T) {
	r := testEngine(t, &stubService{err: webhook.ErrInvalidPayload})
	w := postCallback(r, "junk")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCallbackInternalError(t *testing.T) {
	r := testEngine(t, &stubService{err: errors.New("db down")})
	w := postCallback(r, `{"callbackId":1,"event":"TEST"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealthz(t *testing.T) {
	r := testEngine(t, &stubService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

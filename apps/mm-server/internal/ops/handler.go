// Package ops は運用向けHTTPエンドポイント（ヘルスチェック、メトリクス、TMSIテーブル参照）を提供する。
package ops

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/store"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/apperr"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/httputil"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/logging"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/model"
	"github.com/gin-gonic/gin"
)

// TraceIDKey はgin.Contextに保存するトレースIDのキー
const TraceIDKey = "trace_id"

// Pinger はValkeyの疎通確認を行う。store.ValkeyClient が実装する。
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler は運用APIのハンドラ
type Handler struct {
	valkey Pinger
	subs   store.SubscriberTable
	masker *logging.Masker
}

// NewHandler は新しいHandlerを生成する
func NewHandler(valkey Pinger, subs store.SubscriberTable, maskIMSI bool) *Handler {
	return &Handler{
		valkey: valkey,
		subs:   subs,
		masker: logging.NewMasker(maskIMSI),
	}
}

// healthResponse はヘルスチェックレスポンスを表す。
type healthResponse struct {
	Status string `json:"status"`
}

// tmsiResponse はTMSI逆引きのレスポンスを表す。
type tmsiResponse struct {
	TMSI string `json:"tmsi"`
	IMSI string `json:"imsi"`
}

// HandleHealth はGET /health のハンドラ。
func (h *Handler) HandleHealth(c *gin.Context) {
	if err := h.valkey.Ping(c.Request.Context()); err != nil {
		traceID, _ := c.Get(TraceIDKey)
		slog.Warn("ヘルスチェック失敗",
			"event_id", "HEALTH_VALKEY_ERR",
			"trace_id", traceID,
			"error", err,
		)
		httputil.WriteError(c, httputil.ServiceUnavailable("valkey unavailable").WithInstance(c.Request.URL.Path))
		return
	}
	c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

// HandleSubscriber はGET /api/v1/subscribers/:imsi のハンドラ。
func (h *Handler) HandleSubscriber(c *gin.Context) {
	imsi := c.Param("imsi")
	if err := validateIMSI(imsi); err != nil {
		httputil.AbortWithErr(c, err)
		return
	}
	sub, err := h.subs.Subscriber(c.Request.Context(), imsi)
	if err != nil {
		h.logLookupError(c, "imsi", h.masker.IMSI(imsi), err)
		httputil.AbortWithErr(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// HandleTMSI はGET /api/v1/tmsis/:tmsi のハンドラ。
func (h *Handler) HandleTMSI(c *gin.Context) {
	raw := c.Param("tmsi")
	tmsi, err := model.ParseTMSIHex(raw)
	if err != nil {
		httputil.AbortWithErr(c, fmt.Errorf("%w: %v", apperr.ErrInvalidTMSI, err))
		return
	}
	imsi, err := h.subs.IMSI(c.Request.Context(), tmsi)
	if err != nil {
		h.logLookupError(c, "tmsi", raw, err)
		httputil.AbortWithErr(c, err)
		return
	}
	if imsi == "" {
		httputil.AbortWithErr(c, fmt.Errorf("%w: %s", apperr.ErrTMSINotFound, model.FormatTMSIHex(tmsi)))
		return
	}
	c.JSON(http.StatusOK, tmsiResponse{TMSI: model.FormatTMSIHex(tmsi), IMSI: imsi})
}

func (h *Handler) logLookupError(c *gin.Context, key, value string, err error) {
	if errors.Is(err, apperr.ErrIMSINotFound) {
		return
	}
	traceID, _ := c.Get(TraceIDKey)
	slog.Error("TMSIテーブル参照失敗",
		"event_id", "OPS_LOOKUP_ERR",
		"trace_id", traceID,
		key, value,
		"error", err,
	)
}

// validateIMSI はIMSI形式（6〜15桁の数字）を検証する。
func validateIMSI(imsi string) error {
	if len(imsi) < 6 || len(imsi) > 15 {
		return fmt.Errorf("%w: %d digits", apperr.ErrInvalidIMSI, len(imsi))
	}
	for _, c := range imsi {
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: non-digit character", apperr.ErrInvalidIMSI)
		}
	}
	return nil
}

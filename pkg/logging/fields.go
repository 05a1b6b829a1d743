package logging

import (
	"fmt"
	"log/slog"

	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
)

// ログフィールド名の定数
const (
	FieldTraceID    = "trace_id"
	FieldEventID    = "event_id"
	FieldError      = "error"
	FieldChannel    = "channel"
	FieldIMSI       = "imsi"
	FieldIMEI       = "imei"
	FieldMobileID   = "mobile_id"
	FieldTMSI       = "tmsi"
	FieldCause      = "cause"
	FieldLatencyMs  = "latency_ms"
	FieldHTTPStatus = "http_status"
)

// WithTraceID はトレースIDのslog.Attrを返す。
func WithTraceID(traceID string) slog.Attr {
	return slog.String(FieldTraceID, traceID)
}

// WithEventID はイベントIDのslog.Attrを返す。
func WithEventID(eventID string) slog.Attr {
	return slog.String(FieldEventID, eventID)
}

// WithError はエラーのslog.Attrを返す。
func WithError(err error) slog.Attr {
	if err == nil {
		return slog.String(FieldError, "")
	}
	return slog.String(FieldError, err.Error())
}

// WithChannel は論理チャネル識別子のslog.Attrを返す。
func WithChannel(id string) slog.Attr {
	return slog.String(FieldChannel, id)
}

// WithTMSI はTMSIを8桁16進数で表したslog.Attrを返す。
func WithTMSI(tmsi uint32) slog.Attr {
	return slog.String(FieldTMSI, fmt.Sprintf("%08x", tmsi))
}

// WithCause は拒否理由コードのslog.Attrを返す。
func WithCause(cause uint8) slog.Attr {
	return slog.Int(FieldCause, int(cause))
}

// WithLatency はレイテンシ（ミリ秒）のslog.Attrを返す。
func WithLatency(ms int64) slog.Attr {
	return slog.Int64(FieldLatencyMs, ms)
}

// WithHTTPStatus はHTTPステータスコードのslog.Attrを返す。
func WithHTTPStatus(status int) slog.Attr {
	return slog.Int(FieldHTTPStatus, status)
}

// CommonFields はマスキング設定を保持するログフィールド生成器。
type CommonFields struct {
	masker *Masker
}

// NewCommonFields は新しいCommonFieldsを生成する。
func NewCommonFields(masker *Masker) *CommonFields {
	if masker == nil {
		masker = NewMasker(false)
	}
	return &CommonFields{masker: masker}
}

// WithIMSI はマスキングされたIMSIのslog.Attrを返す。
func (cf *CommonFields) WithIMSI(imsi string) slog.Attr {
	return slog.String(FieldIMSI, cf.masker.IMSI(imsi))
}

// WithIMEI はマスキングされたIMEIのslog.Attrを返す。
func (cf *CommonFields) WithIMEI(imei string) slog.Attr {
	return slog.String(FieldIMEI, cf.masker.IMEI(imei))
}

// WithMobileID は種別付きでマスキングされた移動機識別子のslog.Attrを返す。
func (cf *CommonFields) WithMobileID(id *l3.MobileIdentity) slog.Attr {
	return slog.String(FieldMobileID, cf.masker.MobileID(id))
}

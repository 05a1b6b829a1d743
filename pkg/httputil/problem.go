// Package httputil はHTTP関連のユーティリティを提供する。
package httputil

import (
	"errors"
	"net/http"

	"github.com/Alopex9527/OpenBTS-UMTS/pkg/apperr"
)

// ProblemDetail はRFC 7807準拠のエラーレスポンス構造体。
type ProblemDetail struct {
	Type     string `json:"type"`               // エラータイプのURI
	Title    string `json:"title"`              // エラータイトル
	Status   int    `json:"status"`             // HTTPステータスコード
	Detail   string `json:"detail,omitempty"`   // 詳細説明
	Instance string `json:"instance,omitempty"` // 対象リソースのパス
}

// NewProblemDetail は新しいProblemDetailを生成する。
func NewProblemDetail(status int, detail string) *ProblemDetail {
	return &ProblemDetail{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

// WithInstance は対象リソースのパスを設定する。
func (p *ProblemDetail) WithInstance(path string) *ProblemDetail {
	p.Instance = path
	return p
}

// BadRequest は400 Bad Requestのエラーレスポンスを生成する。
func BadRequest(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusBadRequest, detail)
}

// NotFound は404 Not Foundのエラーレスポンスを生成する。
func NotFound(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusNotFound, detail)
}

// InternalServerError は500 Internal Server Errorのエラーレスポンスを生成する。
func InternalServerError(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusInternalServerError, detail)
}

// ServiceUnavailable は503 Service Unavailableのエラーレスポンスを生成する。
func ServiceUnavailable(detail string) *ProblemDetail {
	return NewProblemDetail(http.StatusServiceUnavailable, detail)
}

// FromError はエラーの種類に応じたProblemDetailを生成する。
//   - バリデーションエラー → 400
//   - IMSI/TMSI未登録 → 404
//   - Valkey接続エラー → 503
//   - その他 → 500
func FromError(err error) *ProblemDetail {
	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve),
		errors.Is(err, apperr.ErrInvalidIMSI),
		errors.Is(err, apperr.ErrInvalidTMSI):
		return BadRequest(err.Error())
	case errors.Is(err, apperr.ErrIMSINotFound),
		errors.Is(err, apperr.ErrTMSINotFound):
		return NotFound(err.Error())
	case errors.Is(err, apperr.ErrValkeyConnection):
		return ServiceUnavailable("subscriber table unavailable")
	default:
		return InternalServerError("internal error")
	}
}

// ContentType はRFC 7807で定義されたContent-Typeヘッダー値。
const ContentType = "application/problem+json"

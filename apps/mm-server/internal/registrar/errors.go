package registrar

import (
	"errors"
	"fmt"

	"github.com/Alopex9527/OpenBTS-UMTS/pkg/apperr"
)

// センチネルエラー
var (
	// ErrTimeout は登録バックエンドに期限内に到達できなかった場合のエラー。
	// 接続エラー、Circuit Breaker Open、5xx応答はすべてこのエラーに該当する。
	ErrTimeout = apperr.ErrRegistrarUnavailable

	// ErrCircuitOpen はCircuit BreakerがOpen状態の場合のエラー
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrInvalidResponse は登録バックエンドからのレスポンスが不正な場合のエラー
	ErrInvalidResponse = errors.New("invalid response from registrar")

	// ErrTraceIDMissing はコンテキストにTrace IDが設定されていない場合のエラー
	ErrTraceIDMissing = errors.New("trace id missing in context")
)

// APIError はHTTP APIエラーを表す
type APIError struct {
	StatusCode int
	Message    string
	Details    *ProblemDetails
}

func (e *APIError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("registrar api error: %d %s - %s", e.StatusCode, e.Details.Title, e.Details.Detail)
	}
	return fmt.Sprintf("registrar api error: %d %s", e.StatusCode, e.Message)
}

// IsNotFound は登録が存在しないエラーかどうかを判定する
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsServerError はサーバーエラーかどうかを判定する
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// ConnectionError は接続エラーを表す
type ConnectionError struct {
	Cause error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Cause)
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// unavailable は到達不能を示すエラーを ErrTimeout でラップする
func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrTimeout, err)
}

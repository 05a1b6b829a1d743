package registrar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/config"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
)

// Client は登録バックエンドクライアントの実装
type Client struct {
	httpClient *resty.Client
	cb         *gobreaker.CircuitBreaker
	baseURL    string
}

// NewClient は新しい登録バックエンドクライアントを生成する。
func NewClient(cfg *config.Config) *Client {
	dialer := &net.Dialer{Timeout: config.RegistrarConnectTimeout}
	httpClient := resty.New().
		SetTimeout(config.RegistrarRequestTimeout).
		SetTransport(&http.Transport{
			DialContext:         dialer.DialContext,
			TLSHandshakeTimeout: config.RegistrarConnectTimeout,
		})

	cbSettings := gobreaker.Settings{
		Name:        config.CBName,
		MaxRequests: config.CBMaxRequests,
		Interval:    config.CBInterval,
		Timeout:     config.CBTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(config.CBFailureThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			switch to {
			case gobreaker.StateOpen:
				slog.Warn("circuit breaker opened",
					"event_id", "CB_OPEN",
					"cb_name", name,
				)
			case gobreaker.StateHalfOpen:
				slog.Info("circuit breaker half-open",
					"event_id", "CB_HALF_OPEN",
					"cb_name", name,
				)
			case gobreaker.StateClosed:
				slog.Info("circuit breaker closed",
					"event_id", "CB_CLOSE",
					"cb_name", name,
				)
			}
		},
	}

	return &Client{
		httpClient: httpClient,
		cb:         gobreaker.NewCircuitBreaker(cbSettings),
		baseURL:    strings.TrimRight(cfg.RegistrarURL, "/"),
	}
}

// Register はSIP登録を行う。
// 4xx応答は未登録（Success=false）として扱い、エラーを返さない。
func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*RegisterResult, error) {
	traceID := TraceID(ctx)
	if traceID == "" {
		return nil, ErrTraceIDMissing
	}

	body, apiErr, err := c.execute(func() (*resty.Response, error) {
		return c.httpClient.R().
			SetContext(ctx).
			SetHeader(HeaderTraceID, traceID).
			SetHeader(HeaderContentType, ContentTypeJSON).
			SetBody(req).
			Post(c.baseURL + pathRegistrations)
	})
	if err != nil {
		return nil, err
	}
	if apiErr != nil {
		return &RegisterResult{Success: false}, nil
	}
	return parseRegisterResponse(body)
}

// Unregister はSIP登録を解除する。登録が存在しない（404）場合は成功として扱う。
func (c *Client) Unregister(ctx context.Context, imsi string) error {
	traceID := TraceID(ctx)
	if traceID == "" {
		return ErrTraceIDMissing
	}

	_, apiErr, err := c.execute(func() (*resty.Response, error) {
		return c.httpClient.R().
			SetContext(ctx).
			SetHeader(HeaderTraceID, traceID).
			SetPathParam("imsi", imsi).
			Delete(c.baseURL + pathRegistration)
	})
	if err != nil {
		return err
	}
	if apiErr != nil && !apiErr.IsNotFound() {
		return apiErr
	}
	return nil
}

// execute はCircuit Breaker経由でリクエストを実行する。
// 到達不能（接続エラー、5xx、CB Open）は ErrTimeout でラップしたエラー、
// 4xx等のCB対象外エラーは apiErr として返す。
func (c *Client) execute(do func() (*resty.Response, error)) ([]byte, *APIError, error) {
	start := time.Now()

	result, err := c.cb.Execute(func() (any, error) {
		resp, err := do()
		if err != nil {
			return nil, &ConnectionError{Cause: err}
		}

		latencyMs := time.Since(start).Milliseconds()
		statusCode := resp.StatusCode()

		// CB失敗判定対象: 5xx（501除く）
		if statusCode >= 500 && statusCode != http.StatusNotImplemented {
			apiErr := parseAPIError(statusCode, resp.Body())
			slog.Error("registrar api error",
				"event_id", "REG_API_ERR",
				"error", apiErr.Error(),
				"http_status", statusCode,
				"latency_ms", latencyMs,
			)
			return nil, apiErr
		}

		// CB対象外: 2xx以外はCBカウントに含めない
		if statusCode < 200 || statusCode >= 300 {
			apiErr := parseAPIError(statusCode, resp.Body())
			slog.Warn("registrar api rejected request",
				"event_id", "REG_API_REJECT",
				"error", apiErr.Error(),
				"http_status", statusCode,
				"latency_ms", latencyMs,
			)
			return apiErr, nil
		}

		slog.Debug("registrar api success",
			"http_status", statusCode,
			"latency_ms", latencyMs,
		)
		return resp.Body(), nil
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, nil, unavailable(ErrCircuitOpen)
		}
		return nil, nil, unavailable(err)
	}

	switch v := result.(type) {
	case *APIError:
		return nil, v, nil
	case []byte:
		return v, nil, nil
	default:
		return nil, nil, ErrInvalidResponse
	}
}

// parseRegisterResponse はJSONレスポンスをRegisterResultに変換する。
func parseRegisterResponse(body []byte) (*RegisterResult, error) {
	var raw registerResponseJSON
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrInvalidResponse, err)
	}

	switch raw.Result {
	case ResultSuccess:
		return &RegisterResult{Success: true}, nil
	case ResultFailure:
		return &RegisterResult{Success: false}, nil
	case ResultChallenge:
		rand, err := l3.ParseRANDHex(raw.RAND)
		if err != nil {
			return nil, fmt.Errorf("%w: rand: %v", ErrInvalidResponse, err)
		}
		return &RegisterResult{Success: false, Challenge: &rand}, nil
	default:
		return nil, fmt.Errorf("%w: unknown result %q", ErrInvalidResponse, raw.Result)
	}
}

// parseAPIError はHTTPエラーレスポンスをAPIErrorに変換する。
func parseAPIError(statusCode int, body []byte) *APIError {
	var details ProblemDetails
	if err := json.Unmarshal(body, &details); err == nil && details.Title != "" {
		return &APIError{
			StatusCode: statusCode,
			Message:    details.Title,
			Details:    &details,
		}
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    string(body),
	}
}

// traceIDKey はコンテキストからTrace IDを取得するためのキー型
type traceIDKey struct{}

// WithTraceID はコンテキストにTrace IDを設定する。
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceID はコンテキストに設定されたTrace IDを返す。未設定の場合は空文字列。
func TraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey{}).(string)
	return traceID
}

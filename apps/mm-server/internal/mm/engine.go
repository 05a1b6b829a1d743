package mm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/channel"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/config"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/registrar"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/store"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/apperr"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/logging"
)

// 手順名（ログとメトリクスのラベル）
const (
	ProcedureLocationUpdating = "location_updating"
	ProcedureIMSIDetach       = "imsi_detach"
	ProcedureCMService        = "cm_service"
)

// Engine はMM手順を実行する。手順ごとの状態は持たず、複数チャネルから並行に呼び出せる。
type Engine struct {
	cfg      *config.Config
	reg      registrar.Registrar
	subs     store.SubscriberTable
	cache    store.AuthCache
	cc       CallStarter
	recorder Recorder
	fields   *logging.CommonFields
	random   func() uint64
	now      func() time.Time
}

// Option はEngineの任意設定。
type Option func(*Engine)

// WithRecorder は手順結果の記録先を設定する
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

// WithRandom はRAND生成に使う乱数源を差し替える
func WithRandom(fn func() uint64) Option {
	return func(e *Engine) {
		if fn != nil {
			e.random = fn
		}
	}
}

// NewEngine は新しいEngineを生成する
func NewEngine(
	cfg *config.Config,
	reg registrar.Registrar,
	subs store.SubscriberTable,
	cache store.AuthCache,
	cc CallStarter,
	opts ...Option,
) *Engine {
	e := &Engine{
		cfg:      cfg,
		reg:      reg,
		subs:     subs,
		cache:    cache,
		cc:       cc,
		recorder: nopRecorder{},
		fields:   logging.NewCommonFields(logging.NewMasker(cfg.LogMaskIMSI)),
		random:   rand.Uint64,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type nopRecorder struct{}

func (nopRecorder) Procedure(string, string)              {}
func (nopRecorder) ObserveDuration(string, time.Duration) {}

// observe は手順の終了時に結果と所要時間を記録する
func (e *Engine) observe(procedure string, start time.Time, outcome *string) {
	e.recorder.Procedure(procedure, *outcome)
	e.recorder.ObserveDuration(procedure, e.now().Sub(start))
}

// send はシグナリングSAPでメッセージを送信する
func (e *Engine) send(ch channel.LogicalChannel, msg l3.Message) error {
	if err := ch.Send(msg, channel.SAPSignaling); err != nil {
		return fmt.Errorf("send %s: %w", msg.String(), err)
	}
	return nil
}

// release は通常のチャネル解放を送信する
func (e *Engine) release(ch channel.LogicalChannel) error {
	return e.send(ch, &l3.ChannelRelease{Cause: l3.RRCauseNormal})
}

// hardRelease はチャネルを強制解放する
func (e *Engine) hardRelease(ch channel.LogicalChannel) error {
	if err := ch.SendPrimitive(l3.PrimitiveHardRelease, channel.SAPSignaling); err != nil {
		return fmt.Errorf("send HARDRELEASE: %w", err)
	}
	return nil
}

// recvMessage は端末からの次のメッセージを受信する。
// タイムアウトは channel.ErrTimeout、DATA以外は ErrUnexpectedPrimitive、
// 解析できないフレームは ErrUnexpectedMessage を含むエラーになる。
func (e *Engine) recvMessage(ctx context.Context, ch channel.LogicalChannel, timeout time.Duration, procedure, expected string) (l3.Message, error) {
	f, err := ch.Recv(ctx, timeout, channel.SAPSignaling)
	if err != nil {
		return nil, fmt.Errorf("%s: waiting for %s: %w", procedure, expected, err)
	}
	if f.Primitive() != l3.PrimitiveData {
		return nil, apperr.NewUnexpectedPrimitive(procedure, l3.PrimitiveData.String(), f.Primitive().String())
	}
	msg := l3.Parse(f)
	if msg == nil {
		return nil, apperr.NewUnexpectedMessage(procedure, expected, "unparsable frame")
	}
	return msg, nil
}

// expect は期待する型のメッセージを受信する。別の型を受信した場合は ErrUnexpectedMessage。
func expect[T l3.Message](ctx context.Context, e *Engine, ch channel.LogicalChannel, procedure, expected string) (T, error) {
	var zero T
	msg, err := e.recvMessage(ctx, ch, e.cfg.ChannelRecvTimeout, procedure, expected)
	if err != nil {
		return zero, err
	}
	resp, ok := msg.(T)
	if !ok {
		slog.Warn("想定外のメッセージ受信",
			"event_id", "MM_UNEXPECTED_MSG",
			"trace_id", registrar.TraceID(ctx),
			"channel", ch.ID(),
			"procedure", procedure,
			"message", msg.String(),
		)
		return zero, apperr.NewUnexpectedMessage(procedure, expected, msg.String())
	}
	return resp, nil
}

// isBackendUnavailable は登録バックエンドまたはValkeyへの到達不能を示すエラーかを判定する
func isBackendUnavailable(err error) bool {
	return errors.Is(err, registrar.ErrTimeout) || errors.Is(err, store.ErrValkeyUnavailable)
}

// hold は指定時間待機する。ctx がキャンセルされた場合は即座に戻る
func hold(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/channel"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/metrics"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/registrar"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/apperr"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/logging"
	"github.com/google/uuid"
)

// Handler は論理チャネルごとに最初のL3メッセージを受信し、対応する手順を起動する。
// channel.Handler インターフェースの実装。
type Handler struct {
	procs    Procedures
	observer ChannelObserver
	timeout  time.Duration
	newID    func() string
}

// NewHandler は新しいHandlerを生成する。observer は nil でもよい。
func NewHandler(procs Procedures, observer ChannelObserver, recvTimeout time.Duration) *Handler {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Handler{
		procs:    procs,
		observer: observer,
		timeout:  recvTimeout,
		newID:    uuid.NewString,
	}
}

type nopObserver struct{}

func (nopObserver) ChannelOpened() {}
func (nopObserver) ChannelClosed() {}
func (nopObserver) Fault(string)   {}

// ServeChannel は1本の論理チャネルを処理する
func (h *Handler) ServeChannel(ctx context.Context, ch channel.LogicalChannel) {
	traceID := h.newID()
	ctx = registrar.WithTraceID(ctx, traceID)

	h.observer.ChannelOpened()
	defer h.observer.ChannelClosed()

	msg, err := h.firstMessage(ctx, ch)
	if err != nil {
		h.fault(ctx, ch, err)
		return
	}
	if msg == nil {
		// 端末側から解放された
		return
	}

	slog.Info("L3メッセージ受信",
		"event_id", "CH_FIRST_MSG",
		"trace_id", traceID,
		logging.WithChannel(ch.ID()),
		"pd", msg.PD().String(),
		"mti", msg.MTI(),
	)

	if err := h.dispatch(ctx, msg, ch); err != nil {
		h.fault(ctx, ch, err)
	}
}

// firstMessage は最初のDATAフレームを待つ。ESTABLISHは読み飛ばす。
// 端末側からの解放を受けた場合は nil を返す。
func (h *Handler) firstMessage(ctx context.Context, ch channel.LogicalChannel) (l3.Message, error) {
	for {
		f, err := ch.Recv(ctx, h.timeout, channel.SAPSignaling)
		if err != nil {
			return nil, err
		}
		switch f.Primitive() {
		case l3.PrimitiveData:
			if msg := l3.Parse(f); msg != nil {
				return msg, nil
			}
			return nil, apperr.NewUnexpectedMessage("dispatch", "L3 message", "unparsable frame")
		case l3.PrimitiveEstablish:
			continue
		case l3.PrimitiveRelease, l3.PrimitiveHardRelease:
			slog.Info("端末側からチャネル解放",
				"event_id", "CH_PEER_RELEASE",
				"trace_id", registrar.TraceID(ctx),
				logging.WithChannel(ch.ID()),
				"primitive", f.Primitive().String(),
			)
			return nil, nil
		default:
			return nil, apperr.NewUnexpectedPrimitive("dispatch", l3.PrimitiveData.String(), f.Primitive().String())
		}
	}
}

// dispatch はメッセージ種別に応じて手順を起動する
func (h *Handler) dispatch(ctx context.Context, msg l3.Message, ch channel.LogicalChannel) error {
	switch m := msg.(type) {
	case *l3.LocationUpdatingRequest:
		return h.procs.LocationUpdatingController(ctx, m, ch)
	case *l3.IMSIDetachIndication:
		return h.procs.IMSIDetachController(ctx, m, ch)
	case *l3.CMServiceRequest:
		return h.procs.CMServiceResponder(ctx, m, ch)
	default:
		slog.Warn("未対応の初期メッセージ",
			"event_id", "CH_UNHANDLED_MSG",
			"trace_id", registrar.TraceID(ctx),
			logging.WithChannel(ch.ID()),
			"pd", msg.PD().String(),
			"mti", msg.MTI(),
		)
		if err := ch.Send(&l3.ChannelRelease{Cause: l3.RRCauseNormal}, channel.SAPSignaling); err != nil {
			slog.Error("チャネル解放送信失敗",
				"event_id", "CH_SEND_ERR",
				"trace_id", registrar.TraceID(ctx),
				"error", err,
			)
		}
		return nil
	}
}

// fault は手順の異常終了をチャネル解放に変換する。
// 受信タイムアウトは端末との通信が途絶えているためハードリリースのみ行う。
func (h *Handler) fault(ctx context.Context, ch channel.LogicalChannel, err error) {
	kind := metrics.FaultOther
	switch {
	case errors.Is(err, channel.ErrTimeout):
		kind = metrics.FaultTimeout
	case apperr.IsProtocolError(err):
		kind = metrics.FaultProtocol
	}
	h.observer.Fault(kind)

	slog.Warn("手順異常終了",
		"event_id", "CH_FAULT",
		"trace_id", registrar.TraceID(ctx),
		logging.WithChannel(ch.ID()),
		"kind", kind,
		"error", err,
	)

	if errors.Is(err, channel.ErrClosed) {
		return
	}
	if kind != metrics.FaultTimeout {
		if err := ch.Send(&l3.ChannelRelease{Cause: l3.RRCauseNormal}, channel.SAPSignaling); err != nil {
			slog.Warn("チャネル解放送信失敗",
				"event_id", "CH_SEND_ERR",
				"trace_id", registrar.TraceID(ctx),
				"error", err,
			)
		}
	}
	if err := ch.SendPrimitive(l3.PrimitiveHardRelease, channel.SAPSignaling); err != nil {
		slog.Warn("ハードリリース送信失敗",
			"event_id", "CH_SEND_ERR",
			"trace_id", registrar.TraceID(ctx),
			"error", err,
		)
	}
}

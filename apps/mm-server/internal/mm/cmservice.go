package mm

import (
	"context"
	"log/slog"

	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/channel"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/metrics"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/registrar"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/logging"
)

// CMServiceResponder はCMサービス要求をサービス種別ごとに振り分ける。
// 発信呼のみ呼制御へ引き渡し、それ以外は理由0x20で拒否してチャネルを解放する。
func (e *Engine) CMServiceResponder(ctx context.Context, req *l3.CMServiceRequest, ch channel.LogicalChannel) error {
	start := e.now()
	outcome := metrics.OutcomeFault
	defer e.observe(ProcedureCMService, start, &outcome)

	slog.Info("CMサービス要求受信",
		"event_id", "CM_SERVICE_REQUEST",
		"trace_id", registrar.TraceID(ctx),
		"channel", ch.ID(),
		"service", req.ServiceType.String(),
		e.fields.WithMobileID(&req.MobileID),
	)

	switch req.ServiceType {
	case l3.MobileOriginatedCall:
		outcome = metrics.OutcomeForwarded
		return e.cc.Start(ctx, req, ch)
	default:
		slog.Info("未対応のサービス種別",
			"event_id", "CM_SERVICE_REJECT",
			"trace_id", registrar.TraceID(ctx),
			"channel", ch.ID(),
			"service", req.ServiceType.String(),
		)
		if err := e.send(ch, &l3.CMServiceReject{Cause: l3.CauseServiceOptionNotSupported}); err != nil {
			return err
		}
		if err := e.release(ch); err != nil {
			return err
		}
		outcome = metrics.OutcomeReject
		return nil
	}
}

// IMSIDetachController はIMSIデタッチを処理する。
// 登録解除の成否にかかわらず、通常解放の直後に強制解放を送る。
func (e *Engine) IMSIDetachController(ctx context.Context, req *l3.IMSIDetachIndication, ch channel.LogicalChannel) error {
	start := e.now()
	outcome := metrics.OutcomeFault
	defer e.observe(ProcedureIMSIDetach, start, &outcome)

	traceID := registrar.TraceID(ctx)
	slog.Info("IMSIデタッチ受信",
		"event_id", "DETACH_RECEIVED",
		"trace_id", traceID,
		"channel", ch.ID(),
		e.fields.WithMobileID(&req.MobileID),
	)

	if imsi := e.detachIMSI(ctx, &req.MobileID); imsi != "" {
		if err := e.reg.Unregister(ctx, imsi); err != nil {
			slog.Error("登録解除失敗",
				"event_id", "DETACH_UNREGISTER_ERR",
				"trace_id", traceID,
				e.fields.WithIMSI(imsi),
				"error", err,
			)
		} else {
			slog.Info("登録解除完了",
				"event_id", "DETACH_UNREGISTERED",
				"trace_id", traceID,
				e.fields.WithIMSI(imsi),
			)
		}
	}

	// 端末の多くは解放を完了しないため強制解放する
	releaseErr := e.release(ch)
	if err := e.hardRelease(ch); err != nil {
		return err
	}
	if releaseErr != nil {
		return releaseErr
	}
	outcome = metrics.OutcomeReleased
	return nil
}

// detachIMSI はデタッチ対象のIMSIを返す。特定できない場合は空文字列。
// TMSIはTMSIテーブルに登録されている場合のみIMSIへ変換する。
func (e *Engine) detachIMSI(ctx context.Context, id *l3.MobileIdentity) string {
	switch id.Type {
	case l3.IMSIType:
		return id.Digits
	case l3.TMSIType:
		imsi, err := e.subs.IMSI(ctx, id.TMSI)
		if err != nil {
			slog.Warn("TMSIテーブル参照失敗",
				"event_id", "DETACH_TMSI_LOOKUP_ERR",
				"trace_id", registrar.TraceID(ctx),
				logging.WithTMSI(id.TMSI),
				"error", err,
			)
			return ""
		}
		return imsi
	default:
		return ""
	}
}

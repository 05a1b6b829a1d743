package mm

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/channel"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/metrics"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/registrar"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/apperr"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/logging"
)

// LocationUpdatingController は位置登録要求を処理する（GSM 04.08 4.4.4）。
// 位置登録はSIP登録に対応付けられ、どの経路で終了してもチャネルを解放する。
func (e *Engine) LocationUpdatingController(ctx context.Context, req *l3.LocationUpdatingRequest, ch channel.LogicalChannel) error {
	start := e.now()
	outcome := metrics.OutcomeFault
	defer e.observe(ProcedureLocationUpdating, start, &outcome)

	traceID := registrar.TraceID(ctx)
	cellLAI := e.cfg.LAI()
	slog.Info("位置登録要求受信",
		"event_id", "LUR_RECEIVED",
		"trace_id", traceID,
		"channel", ch.ID(),
		e.fields.WithMobileID(&req.MobileID),
		"lai", req.LAI.String(),
		"update_type", uint8(req.UpdateType),
	)

	// 1. 識別子をIMSIに解決
	mobileID := req.MobileID
	preexistingTMSI, err := e.resolveIMSI(ctx, req.LAI == cellLAI, &mobileID, ch)
	if err != nil {
		if isBackendUnavailable(err) {
			outcome = metrics.OutcomeNetworkFail
			return e.rejectNetworkFailure(ctx, ch, err, false)
		}
		return err
	}
	imsi := mobileID.Digits
	imsiAttach := preexistingTMSI == 0

	// 2. TMSI候補を採番（送信しない場合も採番する）
	newTMSI, err := e.subs.AssignTMSI(ctx, imsi, req)
	if err != nil {
		outcome = metrics.OutcomeNetworkFail
		return e.rejectNetworkFailure(ctx, ch, err, false)
	}

	// 3. SIP登録
	result, err := e.reg.Register(ctx, &registrar.RegisterRequest{IMSI: imsi})
	if err != nil {
		outcome = metrics.OutcomeNetworkFail
		return e.rejectNetworkFailure(ctx, ch, err, true)
	}
	success := result.Success

	// 4. チャレンジ要求があれば端末のSRESで再登録
	if result.Challenge != nil {
		rand := *result.Challenge
		slog.Info("登録バックエンドから認証要求",
			"event_id", "AUTH_CHALLENGE",
			"trace_id", traceID,
			e.fields.WithIMSI(imsi),
			"rand", rand.Hex(),
		)
		sres, err := e.challenge(ctx, ch, rand)
		if err != nil {
			return err
		}
		result, err = e.reg.Register(ctx, registrar.NewChallengeResponse(imsi, rand, sres))
		if err != nil {
			outcome = metrics.OutcomeNetworkFail
			return e.rejectNetworkFailure(ctx, ch, err, true)
		}
		success = result.Success
	}

	// 5. 認証ポリシー判定
	authOK, err := e.authenticate(ctx, imsi, ch)
	if err != nil {
		if isBackendUnavailable(err) {
			outcome = metrics.OutcomeNetworkFail
			return e.rejectNetworkFailure(ctx, ch, err, false)
		}
		return err
	}
	if !authOK {
		slog.Warn("認証失敗",
			"event_id", "AUTH_REJECT",
			"trace_id", traceID,
			e.fields.WithIMSI(imsi),
		)
		if err := e.send(ch, &l3.AuthenticationReject{}); err != nil {
			return err
		}
		if err := e.release(ch); err != nil {
			return err
		}
		outcome = metrics.OutcomeAuthReject
		return nil
	}

	// 6. 初回アタッチ時の端末情報照会
	if imsiAttach && e.cfg.QueryIMEI {
		if err := e.queryIMEI(ctx, imsi, ch); err != nil {
			return err
		}
	}
	if imsiAttach && e.cfg.QueryClassmark {
		if err := e.queryClassmark(ctx, imsi, ch); err != nil {
			return err
		}
	}

	// 7. 最終判定
	if !success && !e.cfg.OpenRegistration {
		cause := l3.RejectCause(e.cfg.UnprovisionedRejectCause)
		slog.Info("位置登録拒否",
			"event_id", "LUR_REJECT",
			"trace_id", traceID,
			e.fields.WithIMSI(imsi),
			logging.WithCause(uint8(cause)),
		)
		if err := e.send(ch, &l3.LocationUpdatingReject{Cause: cause}); err != nil {
			return err
		}
		if err := e.release(ch); err != nil {
			return err
		}
		outcome = metrics.OutcomeReject
		return nil
	}

	slog.Info("位置登録受付",
		"event_id", "LUR_ACCEPT",
		"trace_id", traceID,
		e.fields.WithIMSI(imsi),
		"registered", success,
		"imsi_attach", imsiAttach,
	)

	if imsiAttach && e.cfg.NetworkShortName != "" {
		if err := e.send(ch, l3.NewMMInformation(e.cfg.NetworkShortName)); err != nil {
			return err
		}
	}

	if !imsiAttach || !e.cfg.SendTMSIs {
		if err := e.send(ch, l3.NewLocationUpdatingAccept(cellLAI)); err != nil {
			return err
		}
	} else {
		if err := e.send(ch, l3.NewLocationUpdatingAcceptWithTMSI(cellLAI, newTMSI)); err != nil {
			return err
		}
		if err := e.awaitReallocation(ctx, ch, newTMSI); err != nil {
			return err
		}
	}

	if err := e.release(ch); err != nil {
		return err
	}
	outcome = metrics.OutcomeAccept
	return nil
}

// authenticate は設定に従って認証可否を判定する。
// オープン登録では端末とのやり取りなしに受け付ける。
func (e *Engine) authenticate(ctx context.Context, imsi string, ch channel.LogicalChannel) (bool, error) {
	switch {
	case e.cfg.OpenRegistration:
		return true, nil
	case e.cfg.CachedAuth:
		return e.authenticateViaCaching(ctx, imsi, ch)
	default:
		return e.cfg.DefaultAuthAccept, nil
	}
}

// rejectNetworkFailure は理由0x11で位置登録を拒否してチャネルを解放する。
// holdOpen の場合は解放前に設定時間だけ待機し、遅延した応答を受け流す。
func (e *Engine) rejectNetworkFailure(ctx context.Context, ch channel.LogicalChannel, cause error, holdOpen bool) error {
	slog.Error("登録バックエンド到達不能",
		"event_id", "REG_TIMEOUT",
		"trace_id", registrar.TraceID(ctx),
		"channel", ch.ID(),
		"error", cause,
	)
	if err := e.send(ch, &l3.LocationUpdatingReject{Cause: l3.CauseNetworkFailure}); err != nil {
		return err
	}
	if holdOpen {
		hold(ctx, e.cfg.TimeoutHold)
	}
	return e.release(ch)
}

// queryIMEI は端末にIMEIを要求して記録する。記録の失敗は無視する
func (e *Engine) queryIMEI(ctx context.Context, imsi string, ch channel.LogicalChannel) error {
	if err := e.send(ch, &l3.IdentityRequest{Type: l3.IMEIType}); err != nil {
		return err
	}
	resp, err := expect[*l3.IdentityResponse](ctx, e, ch, ProcedureLocationUpdating, "IdentityResponse")
	if err != nil {
		return err
	}
	imei := resp.MobileID.Digits
	if err := e.subs.SetIMEI(ctx, imsi, imei); err != nil {
		slog.Warn("IMEI記録失敗",
			"event_id", "IMEI_STORE_ERR",
			"trace_id", registrar.TraceID(ctx),
			e.fields.WithIMSI(imsi),
			e.fields.WithIMEI(imei),
			"error", err,
		)
	}
	return nil
}

// queryClassmark は端末にクラスマークを照会して記録する。記録の失敗は無視する
func (e *Engine) queryClassmark(ctx context.Context, imsi string, ch channel.LogicalChannel) error {
	if err := e.send(ch, &l3.ClassmarkEnquiry{}); err != nil {
		return err
	}
	resp, err := expect[*l3.ClassmarkChange](ctx, e, ch, ProcedureLocationUpdating, "ClassmarkChange")
	if err != nil {
		return err
	}
	if err := e.subs.SetClassmark(ctx, imsi, resp.Classmark); err != nil {
		slog.Warn("クラスマーク記録失敗",
			"event_id", "CLASSMARK_STORE_ERR",
			"trace_id", registrar.TraceID(ctx),
			e.fields.WithIMSI(imsi),
			"classmark", resp.Classmark.Hex(),
			"error", err,
		)
	}
	return nil
}

// awaitReallocation はTMSI再割当完了を設定時間だけ待つ。
// 応答が無い場合も再送せず、ログに記録して続行する。
func (e *Engine) awaitReallocation(ctx context.Context, ch channel.LogicalChannel, tmsi uint32) error {
	traceID := registrar.TraceID(ctx)
	msg, err := e.recvMessage(ctx, ch, e.cfg.TMSIReallocTimeout, ProcedureLocationUpdating, "TMSIReallocationComplete")
	switch {
	case errors.Is(err, channel.ErrTimeout):
		slog.Warn("TMSI再割当完了なし",
			"event_id", "TMSI_REALLOC_TIMEOUT",
			"trace_id", traceID,
			logging.WithTMSI(tmsi),
		)
		return nil
	case apperr.IsProtocolError(err):
		slog.Warn("TMSI再割当完了を解釈できない",
			"event_id", "TMSI_REALLOC_UNEXPECTED",
			"trace_id", traceID,
			"error", err,
		)
		return nil
	case err != nil:
		return err
	}
	if _, ok := msg.(*l3.TMSIReallocationComplete); !ok {
		slog.Warn("TMSI再割当完了以外の応答",
			"event_id", "TMSI_REALLOC_UNEXPECTED",
			"trace_id", traceID,
			"message", msg.String(),
		)
		return nil
	}
	slog.Info("TMSI再割当完了",
		"event_id", "TMSI_REALLOC_COMPLETE",
		"trace_id", traceID,
		logging.WithTMSI(tmsi),
	)
	return nil
}

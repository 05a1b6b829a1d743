// Package callcontrol は受け付けた発信要求の呼制御を提供する。
// CC手順は扱わないため、Setupを受け取った時点で呼を終了させる。
package callcontrol

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/channel"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/config"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/registrar"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/store"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/apperr"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/logging"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/model"
	"github.com/google/uuid"
)

const procedure = "mo_call"

// causeLocationPublicLocal は「ローカルユーザーを収容する公衆網」を示すCause位置
const causeLocationPublicLocal uint8 = 1

// Starter は発信呼のトランザクションを開始する。mm.CallStarter を実装する。
type Starter struct {
	cfg    *config.Config
	subs   store.SubscriberTable
	trans  store.TransactionStore
	fields *logging.CommonFields
	newID  func() string
	now    func() time.Time
}

// NewStarter は新しいStarterを生成する
func NewStarter(cfg *config.Config, subs store.SubscriberTable, trans store.TransactionStore) *Starter {
	return &Starter{
		cfg:    cfg,
		subs:   subs,
		trans:  trans,
		fields: logging.NewCommonFields(logging.NewMasker(cfg.LogMaskIMSI)),
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// Start はCMサービスを受け付け、端末のSetupを待って呼を終了させる。
// どの経路で終了してもチャネル解放は呼び出し側ではなく Start が行う。
func (s *Starter) Start(ctx context.Context, req *l3.CMServiceRequest, ch channel.LogicalChannel) error {
	traceID := registrar.TraceID(ctx)

	tx := model.NewTransaction(s.newID(), s.subscriberIMSI(ctx, &req.MobileID), uint8(req.ServiceType), s.now().Unix())
	if err := s.trans.Save(ctx, tx); err != nil {
		slog.Error("トランザクション保存失敗",
			"event_id", "CC_TRAN_SAVE_ERR",
			"trace_id", traceID,
			"transaction_id", tx.ID,
			"error", err,
		)
		if err := ch.Send(&l3.CMServiceReject{Cause: l3.CauseNetworkFailure}, channel.SAPSignaling); err != nil {
			return fmt.Errorf("send CMServiceReject: %w", err)
		}
		return s.release(ch)
	}

	slog.Info("発信トランザクション開始",
		"event_id", "CC_TRAN_START",
		"trace_id", traceID,
		"transaction_id", tx.ID,
		s.fields.WithIMSI(tx.IMSI),
	)
	if err := ch.Send(&l3.CMServiceAccept{}, channel.SAPSignaling); err != nil {
		return fmt.Errorf("send CMServiceAccept: %w", err)
	}

	setup, err := s.awaitSetup(ctx, ch)
	if err != nil {
		return err
	}
	tx.TI = uint8(setup.TI)
	tx.State = model.TransactionSetupReceived
	if setup.CalledParty != nil {
		tx.CalledNumber = setup.CalledParty.Digits
	}
	s.save(ctx, tx)

	slog.Info("発信呼は未対応のため終了",
		"event_id", "CC_SETUP_REFUSED",
		"trace_id", traceID,
		"transaction_id", tx.ID,
		"called", tx.CalledNumber,
	)
	rc := &l3.ReleaseComplete{
		Cause: &l3.Cause{Location: causeLocationPublicLocal, Value: l3.CCCauseServiceNotAvailable},
	}
	rc.TI = setup.TI.Reply()
	if err := ch.Send(rc, channel.SAPSignaling); err != nil {
		return fmt.Errorf("send ReleaseComplete: %w", err)
	}

	tx.State = model.TransactionReleased
	tx.Cause = l3.CCCauseServiceNotAvailable
	s.save(ctx, tx)

	return s.release(ch)
}

// awaitSetup はCC Setupを受信する。別のメッセージはプロトコル違反とする
func (s *Starter) awaitSetup(ctx context.Context, ch channel.LogicalChannel) (*l3.Setup, error) {
	f, err := ch.Recv(ctx, s.cfg.ChannelRecvTimeout, channel.SAPSignaling)
	if err != nil {
		return nil, fmt.Errorf("%s: waiting for Setup: %w", procedure, err)
	}
	if f.Primitive() != l3.PrimitiveData {
		return nil, apperr.NewUnexpectedPrimitive(procedure, l3.PrimitiveData.String(), f.Primitive().String())
	}
	msg := l3.Parse(f)
	if msg == nil {
		return nil, apperr.NewUnexpectedMessage(procedure, "Setup", "unparsable frame")
	}
	setup, ok := msg.(*l3.Setup)
	if !ok {
		return nil, apperr.NewUnexpectedMessage(procedure, "Setup", msg.String())
	}
	return setup, nil
}

// subscriberIMSI はトランザクションに記録するIMSIを返す。不明な場合は空文字列
func (s *Starter) subscriberIMSI(ctx context.Context, id *l3.MobileIdentity) string {
	switch id.Type {
	case l3.IMSIType:
		return id.Digits
	case l3.TMSIType:
		imsi, err := s.subs.IMSI(ctx, id.TMSI)
		if err != nil {
			slog.Warn("TMSIテーブル参照失敗",
				"event_id", "CC_TMSI_LOOKUP_ERR",
				"trace_id", registrar.TraceID(ctx),
				logging.WithTMSI(id.TMSI),
				"error", err,
			)
		}
		return imsi
	default:
		return ""
	}
}

// save はトランザクションの状態を保存する。失敗はログのみ
func (s *Starter) save(ctx context.Context, tx *model.Transaction) {
	if err := s.trans.Save(ctx, tx); err != nil {
		slog.Warn("トランザクション更新失敗",
			"event_id", "CC_TRAN_UPDATE_ERR",
			"trace_id", registrar.TraceID(ctx),
			"transaction_id", tx.ID,
			"state", string(tx.State),
			"error", err,
		)
	}
}

func (s *Starter) release(ch channel.LogicalChannel) error {
	if err := ch.Send(&l3.ChannelRelease{Cause: l3.RRCauseNormal}, channel.SAPSignaling); err != nil {
		return fmt.Errorf("send ChannelRelease: %w", err)
	}
	return nil
}

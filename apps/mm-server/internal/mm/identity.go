package mm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/channel"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/registrar"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/apperr"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
)

// resolveIMSI は移動機識別子をIMSIに解決し、id をIMSI識別子に書き換える。
// 戻り値は加入者に割当済みのTMSI（未割当の場合は0）。
//
//   - IMSI: TMSIテーブルから割当済みTMSIを引く
//   - IMEI: 位置登録には使えないためプロトコル違反とする
//   - TMSI: 同一LAIかつテーブルに登録がある場合はそのIMSIを使う
//   - それ以外: 端末にIMSIを要求する
func (e *Engine) resolveIMSI(ctx context.Context, sameLAI bool, id *l3.MobileIdentity, ch channel.LogicalChannel) (uint32, error) {
	switch id.Type {
	case l3.IMSIType:
		return e.assignedTMSI(ctx, id.Digits)
	case l3.IMEIType, l3.IMEISVType:
		return 0, apperr.NewUnexpectedIdentity(ProcedureLocationUpdating, "IMSI or TMSI", id.Type.String())
	case l3.TMSIType:
		if sameLAI {
			imsi, err := e.subs.IMSI(ctx, id.TMSI)
			if err != nil {
				return 0, fmt.Errorf("resolve TMSI: %w", err)
			}
			if imsi != "" {
				tmsi := id.TMSI
				*id = l3.NewIMSIIdentity(imsi)
				return tmsi, nil
			}
		}
	}

	slog.Info("端末にIMSIを要求",
		"event_id", "IDENTITY_REQUEST",
		"trace_id", registrar.TraceID(ctx),
		"channel", ch.ID(),
		e.fields.WithMobileID(id),
		"same_lai", sameLAI,
	)
	if err := e.send(ch, &l3.IdentityRequest{Type: l3.IMSIType}); err != nil {
		return 0, err
	}
	resp, err := expect[*l3.IdentityResponse](ctx, e, ch, ProcedureLocationUpdating, "IdentityResponse")
	if err != nil {
		return 0, err
	}
	if resp.MobileID.Type != l3.IMSIType {
		return 0, apperr.NewUnexpectedIdentity(ProcedureLocationUpdating, l3.IMSIType.String(), resp.MobileID.Type.String())
	}
	*id = resp.MobileID
	return e.assignedTMSI(ctx, id.Digits)
}

// assignedTMSI は加入者に割当済みのTMSIを返す。未割当の場合は0
func (e *Engine) assignedTMSI(ctx context.Context, imsi string) (uint32, error) {
	tmsi, ok, err := e.subs.TMSI(ctx, imsi)
	if err != nil {
		return 0, fmt.Errorf("lookup TMSI: %w", err)
	}
	if !ok {
		return 0, nil
	}
	return tmsi, nil
}

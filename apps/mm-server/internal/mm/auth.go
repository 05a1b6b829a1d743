package mm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/channel"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/registrar"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/model"
)

// challenge は認証要求を送り、端末の署名応答を受け取る
func (e *Engine) challenge(ctx context.Context, ch channel.LogicalChannel, rand l3.RAND) (l3.SRES, error) {
	if err := e.send(ch, &l3.AuthenticationRequest{CKSN: 0, RAND: rand}); err != nil {
		return 0, err
	}
	resp, err := expect[*l3.AuthenticationResponse](ctx, e, ch, ProcedureLocationUpdating, "AuthenticationResponse")
	if err != nil {
		return 0, err
	}
	slog.Debug("認証応答受信",
		"event_id", "AUTH_RESPONSE",
		"trace_id", registrar.TraceID(ctx),
		"sres", resp.SRES.Hex(),
	)
	return resp.SRES, nil
}

// authenticateViaCaching は記憶済みのRAND/SRESで端末を認証する。
// 初回は新しいRANDで認証要求を行い、応答を記憶して成功とする。
// 2回目以降は記憶済みのRANDを再送し、応答が記憶済みSRESと一致した場合のみ成功とする。
func (e *Engine) authenticateViaCaching(ctx context.Context, imsi string, ch channel.LogicalChannel) (bool, error) {
	traceID := registrar.TraceID(ctx)

	tokens, err := e.cache.Tokens(ctx, imsi)
	if err != nil {
		return false, fmt.Errorf("load auth tokens: %w", err)
	}

	var cached l3.RAND
	if tokens != nil {
		cached, err = l3.ParseRANDHex(tokens.RAND())
		if err != nil {
			slog.Warn("記憶済みRANDが不正",
				"event_id", "AUTH_CACHE_CORRUPT",
				"trace_id", traceID,
				e.fields.WithIMSI(imsi),
				"error", err,
			)
			tokens = nil
		}
	}

	if tokens == nil {
		slog.Info("初回キャッシュ認証",
			"event_id", "AUTH_CACHE_FIRST",
			"trace_id", traceID,
			e.fields.WithIMSI(imsi),
		)
		rand := l3.RAND{Upper: e.random(), Lower: e.random()}
		sres, err := e.challenge(ctx, ch, rand)
		if err != nil {
			return false, err
		}
		saved := &model.AuthTokens{
			RANDUpper: fmt.Sprintf("%016x", rand.Upper),
			RANDLower: fmt.Sprintf("%016x", rand.Lower),
			SRES:      sres.Hex(),
		}
		if err := e.cache.SaveTokens(ctx, imsi, saved); err != nil {
			return false, fmt.Errorf("save auth tokens: %w", err)
		}
		return true, nil
	}

	sres, err := e.challenge(ctx, ch, cached)
	if err != nil {
		return false, err
	}
	ok := sres.Hex() == tokens.SRES
	slog.Info("キャッシュ認証結果",
		"event_id", "AUTH_CACHE_RESULT",
		"trace_id", traceID,
		e.fields.WithIMSI(imsi),
		"result", ok,
	)
	return ok, nil
}

// Package mm はMobility Management手順（位置登録、IMSIデタッチ、CMサービス）を提供する。
package mm

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_mm.go -package=mocks

import (
	"context"
	"time"

	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/channel"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
)

// CallStarter は受け付けた発信要求を呼制御へ引き渡す。
// 呼び出し後のチャネル解放は CallStarter の責務となる。
type CallStarter interface {
	Start(ctx context.Context, req *l3.CMServiceRequest, ch channel.LogicalChannel) error
}

// Recorder は手順結果の記録先。metrics.Metrics が実装する。
type Recorder interface {
	Procedure(procedure, outcome string)
	ObserveDuration(procedure string, d time.Duration)
}

// Package server は論理チャネルの最初のメッセージをMM手順へ振り分ける。
package server

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_server.go -package=mocks

import (
	"context"

	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/channel"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
)

// Procedures は振り分け先のMM手順。mm.Engine が実装する。
type Procedures interface {
	LocationUpdatingController(ctx context.Context, req *l3.LocationUpdatingRequest, ch channel.LogicalChannel) error
	IMSIDetachController(ctx context.Context, req *l3.IMSIDetachIndication, ch channel.LogicalChannel) error
	CMServiceResponder(ctx context.Context, req *l3.CMServiceRequest, ch channel.LogicalChannel) error
}

// ChannelObserver はチャネル数とフォールトの記録先。metrics.Metrics が実装する。
type ChannelObserver interface {
	ChannelOpened()
	ChannelClosed()
	Fault(kind string)
}

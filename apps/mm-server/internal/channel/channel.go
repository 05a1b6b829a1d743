// Package channel はL3シグナリング用の論理チャネルと、そのUDP上の実装を提供する。
package channel

import (
	"context"
	"time"

	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
)

// SAP はデータリンク層のサービスアクセスポイント識別子。
type SAP uint8

// SAP定数
const (
	// SAPSignaling はRR/MM/CCシグナリング用
	SAPSignaling SAP = 0
	// SAPShortMessage はSMS用
	SAPShortMessage SAP = 3
)

// LogicalChannel は1台の端末との専用シグナリングチャネル。
// 同一チャネルを複数の手順から同時に使用してはならない。
type LogicalChannel interface {
	// ID はログ用のチャネル識別子を返す
	ID() string
	// Send はメッセージをDATAフレームとして送信する
	Send(msg l3.Message, sap SAP) error
	// SendPrimitive は本体を持たないプリミティブ（RELEASE, HARDRELEASE等）を送信する
	SendPrimitive(prim l3.Primitive, sap SAP) error
	// Recv は次の受信フレームを待つ。timeout 経過時は ErrTimeout を返す
	Recv(ctx context.Context, timeout time.Duration, sap SAP) (*l3.Frame, error)
}

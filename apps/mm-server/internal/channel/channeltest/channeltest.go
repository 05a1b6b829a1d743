// Package channeltest はテスト用にスクリプト化した論理チャネルを提供する。
package channeltest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/channel"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
)

// Sent はチャネルから送信された1件の記録。
// プリミティブのみの送信では Message は nil。
type Sent struct {
	Message   l3.Message
	Primitive l3.Primitive
	SAP       channel.SAP
}

// Channel は事前に積んだ応答を順に返す channel.LogicalChannel の実装。
// 応答が尽きた後の Recv は channel.ErrTimeout を返す。
type Channel struct {
	mu       sync.Mutex
	id       string
	inbound  []*l3.Frame
	sent     []Sent
	timeouts []time.Duration
	closed   bool
	// SendErr が設定されている場合、Sendは常にこのエラーを返す
	SendErr error
}

// New は新しいChannelを生成する
func New(id string) *Channel {
	return &Channel{id: id}
}

// Push はメッセージを端末からの応答として積む
func (c *Channel) Push(msg l3.Message) {
	f, err := l3.Write(msg)
	if err != nil {
		panic(fmt.Sprintf("channeltest: encode %s: %v", msg.String(), err))
	}
	c.PushFrame(f)
}

// PushFrame はフレームをそのまま積む
func (c *Channel) PushFrame(f *l3.Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inbound = append(c.inbound, f)
}

// PushTimeout は次の Recv をタイムアウトさせる
func (c *Channel) PushTimeout() {
	c.PushFrame(nil)
}

func (c *Channel) ID() string { return c.id }

func (c *Channel) Send(msg l3.Message, sap channel.SAP) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.SendErr != nil {
		return c.SendErr
	}
	if c.closed {
		return channel.ErrClosed
	}
	// 実チャネルと同じく符号化できないメッセージはエラーにする
	if _, err := l3.Write(msg); err != nil {
		return err
	}
	c.sent = append(c.sent, Sent{Message: msg, Primitive: l3.PrimitiveData, SAP: sap})
	return nil
}

func (c *Channel) SendPrimitive(prim l3.Primitive, sap channel.SAP) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return channel.ErrClosed
	}
	c.sent = append(c.sent, Sent{Primitive: prim, SAP: sap})
	if prim == l3.PrimitiveHardRelease {
		c.closed = true
	}
	return nil
}

func (c *Channel) Recv(ctx context.Context, timeout time.Duration, _ channel.SAP) (*l3.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeouts = append(c.timeouts, timeout)
	if c.closed {
		return nil, channel.ErrClosed
	}
	if len(c.inbound) == 0 {
		return nil, channel.ErrTimeout
	}
	f := c.inbound[0]
	c.inbound = c.inbound[1:]
	if f == nil {
		return nil, channel.ErrTimeout
	}
	return f, nil
}

// Sent は送信記録を送信順に返す
func (c *Channel) Sent() []Sent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Sent, len(c.sent))
	copy(out, c.sent)
	return out
}

// Messages は送信されたメッセージのみを送信順に返す
func (c *Channel) Messages() []l3.Message {
	var out []l3.Message
	for _, s := range c.Sent() {
		if s.Message != nil {
			out = append(out, s.Message)
		}
	}
	return out
}

// Last は最後に送信された記録を返す。送信がない場合は ok=false。
func (c *Channel) Last() (Sent, bool) {
	sent := c.Sent()
	if len(sent) == 0 {
		return Sent{}, false
	}
	return sent[len(sent)-1], true
}

// RecvTimeouts は Recv に渡されたタイムアウト値を呼び出し順に返す
func (c *Channel) RecvTimeouts() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.timeouts))
	copy(out, c.timeouts)
	return out
}

// Pending は未消費の応答数を返す
func (c *Channel) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.inbound)
}

// Closed はハードリリース済みかを返す
func (c *Channel) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// CountPrimitive は指定プリミティブのみの送信回数を返す
func (c *Channel) CountPrimitive(prim l3.Primitive) int {
	n := 0
	for _, s := range c.Sent() {
		if s.Message == nil && s.Primitive == prim {
			n++
		}
	}
	return n
}

// CountMTI は指定PD/MTIのメッセージ送信回数を返す
func (c *Channel) CountMTI(pd l3.ProtocolDiscriminator, mti uint8) int {
	n := 0
	for _, m := range c.Messages() {
		if m.PD() == pd && m.MTI() == mti {
			n++
		}
	}
	return n
}

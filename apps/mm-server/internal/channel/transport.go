package channel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
)

// defaultQueueLen はSAPごとの受信キュー長
const defaultQueueLen = 16

// Handler は新しく確立した論理チャネルを処理する。
// ServeChannel が戻った時点でチャネルは解放される。
type Handler interface {
	ServeChannel(ctx context.Context, ch LogicalChannel)
}

// HandlerFunc は関数をHandlerとして扱うアダプタ
type HandlerFunc func(ctx context.Context, ch LogicalChannel)

// ServeChannel はf(ctx, ch)を呼び出す
func (f HandlerFunc) ServeChannel(ctx context.Context, ch LogicalChannel) {
	f(ctx, ch)
}

// Transport はUDPデータグラム上で端末ごとの論理チャネルを多重化する。
// 送信元アドレスが1つの論理チャネルに対応する。
type Transport struct {
	addr    string
	handler Handler

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	conn     net.PacketConn
	peers    map[string]*udpChannel
	shutdown bool
	wg       sync.WaitGroup
}

// NewTransport は新しいTransportを生成する
func NewTransport(addr string, handler Handler) *Transport {
	ctx, cancel := context.WithCancel(context.Background())
	return &Transport{
		addr:    addr,
		handler: handler,
		ctx:     ctx,
		cancel:  cancel,
		peers:   make(map[string]*udpChannel),
	}
}

// ListenAndServe はUDPソケットを開いて受信を開始する
func (t *Transport) ListenAndServe() error {
	conn, err := net.ListenPacket("udp", t.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", t.addr, err)
	}
	return t.Serve(conn)
}

// Serve は指定ソケットで受信ループを実行する。Shutdown後は ErrServerClosed を返す。
func (t *Transport) Serve(conn net.PacketConn) error {
	t.mu.Lock()
	if t.shutdown {
		t.mu.Unlock()
		conn.Close()
		return ErrServerClosed
	}
	t.conn = conn
	t.mu.Unlock()

	buf := make([]byte, maxDatagramLen)
	for {
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			if t.isShutdown() {
				return ErrServerClosed
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			return err
		}
		datagram := make([]byte, n)
		copy(datagram, buf[:n])
		t.dispatch(conn, addr, datagram)
	}
}

// Addr は待ち受け中のローカルアドレスを返す。Serve前は nil。
func (t *Transport) Addr() net.Addr {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return nil
	}
	return t.conn.LocalAddr()
}

// Shutdown は受信を停止し、全チャネルを閉じてハンドラの終了を待つ
func (t *Transport) Shutdown(ctx context.Context) error {
	t.mu.Lock()
	t.shutdown = true
	if t.conn != nil {
		t.conn.Close()
	}
	for _, ch := range t.peers {
		ch.close()
	}
	t.mu.Unlock()
	t.cancel()

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Transport) isShutdown() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.shutdown
}

// dispatch は受信データグラムを送信元の論理チャネルへ振り分ける
func (t *Transport) dispatch(conn net.PacketConn, addr net.Addr, datagram []byte) {
	f, sap, err := decodeDatagram(datagram)
	if err != nil {
		slog.Warn("不正なデータグラム",
			"event_id", "CH_DATAGRAM_ERR",
			"remote_addr", addr.String(),
			"error", err,
		)
		return
	}

	key := addr.String()
	t.mu.Lock()
	if t.shutdown {
		t.mu.Unlock()
		return
	}
	ch, ok := t.peers[key]
	if !ok {
		switch f.Primitive() {
		case l3.PrimitiveEstablish, l3.PrimitiveData:
		default:
			t.mu.Unlock()
			slog.Debug("未確立チャネルへのプリミティブを破棄",
				"event_id", "CH_DROP",
				"remote_addr", key,
				"primitive", f.Primitive().String(),
			)
			return
		}
		ch = newUDPChannel(key, addr, conn, defaultQueueLen)
		t.peers[key] = ch
		t.wg.Add(1)
		go t.serveChannel(ch)
	}
	t.mu.Unlock()

	switch f.Primitive() {
	case l3.PrimitiveEstablish:
		return
	case l3.PrimitiveHardRelease:
		ch.close()
		return
	}
	if !ch.deliver(f, sap) {
		slog.Warn("受信キュー溢れによりフレームを破棄",
			"event_id", "CH_QUEUE_FULL",
			"channel", ch.id,
			"sap", int(sap),
		)
	}
}

// serveChannel はハンドラを実行し、終了後にチャネルを解放する
func (t *Transport) serveChannel(ch *udpChannel) {
	defer t.wg.Done()
	defer func() {
		ch.close()
		t.mu.Lock()
		if t.peers[ch.id] == ch {
			delete(t.peers, ch.id)
		}
		t.mu.Unlock()
		slog.Debug("論理チャネル解放",
			"event_id", "CH_CLOSE",
			"channel", ch.id,
		)
	}()

	slog.Debug("論理チャネル確立",
		"event_id", "CH_OPEN",
		"channel", ch.id,
	)
	t.handler.ServeChannel(t.ctx, ch)
}

// udpChannel はUDPの送信元アドレス1つに対応する論理チャネル
type udpChannel struct {
	id     string
	addr   net.Addr
	conn   net.PacketConn
	queues map[SAP]chan *l3.Frame

	done      chan struct{}
	closeOnce sync.Once
}

func newUDPChannel(id string, addr net.Addr, conn net.PacketConn, queueLen int) *udpChannel {
	return &udpChannel{
		id:   id,
		addr: addr,
		conn: conn,
		queues: map[SAP]chan *l3.Frame{
			SAPSignaling:    make(chan *l3.Frame, queueLen),
			SAPShortMessage: make(chan *l3.Frame, queueLen),
		},
		done: make(chan struct{}),
	}
}

func (c *udpChannel) ID() string { return c.id }

func (c *udpChannel) Send(msg l3.Message, sap SAP) error {
	f, err := l3.Write(msg)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", msg.String(), err)
	}
	return c.write(encodeDatagram(f, sap))
}

func (c *udpChannel) SendPrimitive(prim l3.Primitive, sap SAP) error {
	if err := c.write(encodePrimitive(prim, sap)); err != nil {
		return err
	}
	if prim == l3.PrimitiveHardRelease {
		c.close()
	}
	return nil
}

func (c *udpChannel) Recv(ctx context.Context, timeout time.Duration, sap SAP) (*l3.Frame, error) {
	q, ok := c.queues[sap]
	if !ok {
		return nil, fmt.Errorf("unsupported SAP %d", sap)
	}
	// キュー済みのフレームを優先する
	select {
	case f := <-q:
		return f, nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case f := <-q:
		return f, nil
	case <-c.done:
		return nil, ErrClosed
	case <-timer.C:
		return nil, ErrTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *udpChannel) write(b []byte) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	if _, err := c.conn.WriteTo(b, c.addr); err != nil {
		return fmt.Errorf("failed to send to %s: %w", c.id, err)
	}
	return nil
}

// deliver は受信フレームをキューに積む。キューが満杯の場合は false を返す。
func (c *udpChannel) deliver(f *l3.Frame, sap SAP) bool {
	q, ok := c.queues[sap]
	if !ok {
		return false
	}
	select {
	case q <- f:
		return true
	default:
		return false
	}
}

func (c *udpChannel) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Package l3 はGSM 04.08 Layer 3 のビットフレーム、情報要素、メッセージのコーデックを提供する。
package l3

import (
	"encoding/hex"
	"fmt"
)

// Primitive はフレームに付随する信号種別を表す。
type Primitive uint8

// Primitive定数
const (
	PrimitiveData Primitive = iota
	PrimitiveEstablish
	PrimitiveRelease
	PrimitiveHardRelease
	PrimitiveError
)

func (p Primitive) String() string {
	switch p {
	case PrimitiveData:
		return "DATA"
	case PrimitiveEstablish:
		return "ESTABLISH"
	case PrimitiveRelease:
		return "RELEASE"
	case PrimitiveHardRelease:
		return "HARDRELEASE"
	case PrimitiveError:
		return "ERROR"
	default:
		return fmt.Sprintf("PRIMITIVE(%d)", uint8(p))
	}
}

// maxFieldWidth は1回で読み書きできる最大ビット幅
const maxFieldWidth = 64

// Frame はビット長が明示されたL3フレーム。
// ビット0はオクテット0のMSBを指す。
type Frame struct {
	prim     Primitive
	data     []byte
	size     int
	l2Length int
}

// NewFrame は指定ビット長のゼロ埋めフレームを生成する。
func NewFrame(prim Primitive, bitLen int) *Frame {
	if bitLen < 0 {
		bitLen = 0
	}
	return &Frame{
		prim: prim,
		data: make([]byte, (bitLen+7)/8),
		size: bitLen,
	}
}

// NewFrameFromBytes はオクテット列からフレームを生成する。
func NewFrameFromBytes(prim Primitive, b []byte) *Frame {
	data := make([]byte, len(b))
	copy(data, b)
	return &Frame{
		prim:     prim,
		data:     data,
		size:     len(b) * 8,
		l2Length: len(b),
	}
}

// Primitive はフレームの信号種別を返す。
func (f *Frame) Primitive() Primitive {
	return f.prim
}

// Size はビット長を返す。
func (f *Frame) Size() int {
	return f.size
}

// ByteLength はビット長をオクテット単位に切り上げた長さを返す。
func (f *Frame) ByteLength() int {
	return (f.size + 7) / 8
}

// L2Length は書き込み時に設定されたL2長を返す。
func (f *Frame) L2Length() int {
	return f.l2Length
}

// SetL2Length はL2長を設定する。
func (f *Frame) SetL2Length(n int) {
	f.l2Length = n
}

// Bytes はフレーム内容のコピーを返す。
func (f *Frame) Bytes() []byte {
	out := make([]byte, len(f.data))
	copy(out, f.data)
	return out
}

// Resize はビット長を変更する。変更前後の短い方までの内容は保持される。
func (f *Frame) Resize(bitLen int) {
	if bitLen < 0 {
		bitLen = 0
	}
	data := make([]byte, (bitLen+7)/8)
	copy(data, f.data)
	if bitLen < f.size && bitLen%8 != 0 {
		// 切り詰めた末尾オクテットの残りビットをクリア
		data[len(data)-1] &= byte(0xff) << (8 - uint(bitLen%8))
	}
	f.data = data
	f.size = bitLen
}

// checkRange は読み書き範囲を検証する。
func (f *Frame) checkRange(pos, width int) error {
	if width < 1 || width > maxFieldWidth {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	if pos < 0 || pos+width > f.size {
		return fmt.Errorf("%w: pos=%d width=%d size=%d", ErrOutOfRange, pos, width, f.size)
	}
	return nil
}

// PeekField はカーソルを進めずにフィールドを読み取る。
func (f *Frame) PeekField(pos, width int) (uint64, error) {
	if err := f.checkRange(pos, width); err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < width; i++ {
		bit := pos + i
		v = v<<1 | uint64(f.data[bit>>3]>>(7-uint(bit&7))&1)
	}
	return v, nil
}

// ReadField はフィールドを読み取り、カーソルを進める。
func (f *Frame) ReadField(rp *int, width int) (uint64, error) {
	v, err := f.PeekField(*rp, width)
	if err != nil {
		return 0, err
	}
	*rp += width
	return v, nil
}

// WriteField は値の下位widthビットを書き込み、カーソルを進める。
func (f *Frame) WriteField(wp *int, value uint64, width int) error {
	if err := f.checkRange(*wp, width); err != nil {
		return err
	}
	for i := 0; i < width; i++ {
		bit := *wp + i
		mask := byte(1) << (7 - uint(bit&7))
		if value>>uint(width-1-i)&1 == 1 {
			f.data[bit>>3] |= mask
		} else {
			f.data[bit>>3] &^= mask
		}
	}
	*wp += width
	return nil
}

// advance はカーソルをnビット進める。フレーム末尾を超える場合はエラー。
func (f *Frame) advance(rp *int, n int) error {
	if n < 0 || *rp+n > f.size {
		return fmt.Errorf("%w: pos=%d skip=%d size=%d", ErrOutOfRange, *rp, n, f.size)
	}
	*rp += n
	return nil
}

// remaining はカーソル位置以降の残りビット数を返す。
func (f *Frame) remaining(pos int) int {
	return f.size - pos
}

// Skip はヘッダ先頭4ビット（スキップ指示子またはトランザクション識別子）を返す。
func (f *Frame) Skip() uint8 {
	v, _ := f.PeekField(0, 4)
	return uint8(v)
}

// PD はヘッダのプロトコル識別子を返す。
func (f *Frame) PD() ProtocolDiscriminator {
	v, _ := f.PeekField(4, 4)
	return ProtocolDiscriminator(v)
}

// MTI はヘッダのメッセージ種別を返す。
func (f *Frame) MTI() uint8 {
	v, _ := f.PeekField(8, 8)
	return uint8(v)
}

func (f *Frame) String() string {
	return fmt.Sprintf("primitive=%s size=%d data=%s", f.prim, f.size, hex.EncodeToString(f.data))
}

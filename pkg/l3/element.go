package l3

import "fmt"

// Element はメッセージ本体に含まれる情報要素（IE）を表す。
type Element interface {
	// BitsV は値部のビット長を返す。
	BitsV() int
	// ParseV は値部を読み取る。n はLV形式で宣言されたオクテット長（固定長要素では0）。
	ParseV(f *Frame, rp *int, n int) error
	// WriteV は値部を書き込む。
	WriteV(f *Frame, wp *int) error
}

// MaxLVLength はLV形式の長さオクテットで表せる値部の最大オクテット数。
const MaxLVLength = 255

// lengthVOctets はLV形式の長さオクテットに書く値を返す。
func lengthVOctets(e Element) int {
	return (e.BitsV() + 7) / 8
}

// tagBitsTV はTV形式のタグ幅を返す。値部が4ビット以下なら4ビット、それ以外は8ビット。
func tagBitsTV(valueBits int) int {
	if valueBits <= 4 {
		return 4
	}
	return 8
}

// LengthLV はLV形式でのビット長を返す。
func LengthLV(e Element) int {
	return 8 + 8*lengthVOctets(e)
}

// LengthTLV はTLV形式でのビット長を返す。
func LengthTLV(e Element) int {
	return 8 + LengthLV(e)
}

// LengthTV はTV形式でのビット長を返す。
func LengthTV(e Element) int {
	return tagBitsTV(e.BitsV()) + e.BitsV()
}

// SkipLV はLV形式の要素を読み飛ばし、消費ビット数を返す。フレーム末尾では0を返す。
func SkipLV(f *Frame, rp *int) (int, error) {
	if *rp == f.Size() {
		return 0, nil
	}
	base := *rp
	n, err := f.ReadField(rp, 8)
	if err != nil {
		return 0, err
	}
	if err := f.advance(rp, int(n)*8); err != nil {
		*rp = base
		return 0, err
	}
	return *rp - base, nil
}

// SkipTLV はタグが一致する場合のみTLV形式の要素を読み飛ばす。
// 不一致の場合は何も消費せず0を返す。
func SkipTLV(iei uint8, f *Frame, rp *int) (int, error) {
	if f.remaining(*rp) < 8 {
		return 0, nil
	}
	tag, err := f.PeekField(*rp, 8)
	if err != nil || uint8(tag) != iei {
		return 0, err
	}
	base := *rp
	*rp += 8
	n, err := f.ReadField(rp, 8)
	if err != nil {
		*rp = base
		return 0, err
	}
	if err := f.advance(rp, int(n)*8); err != nil {
		*rp = base
		return 0, err
	}
	return *rp - base, nil
}

// SkipTV はタグが一致する場合のみTV形式の要素を読み飛ばす。
// タグ幅は width が4以下なら4ビット、それ以外は8ビット。
func SkipTV(iei uint8, width int, f *Frame, rp *int) (int, error) {
	tagBits := tagBitsTV(width)
	if f.remaining(*rp) < tagBits {
		return 0, nil
	}
	tag, err := f.PeekField(*rp, tagBits)
	if err != nil || uint8(tag) != iei {
		return 0, err
	}
	base := *rp
	if err := f.advance(rp, tagBits+width); err != nil {
		*rp = base
		return 0, err
	}
	return *rp - base, nil
}

// ParseLV はLV形式の要素を読み取る。
// 値部の消費長が宣言長と一致しない場合は ErrMalformedElement を返す。
func ParseLV(e Element, f *Frame, rp *int) error {
	base := *rp
	n, err := f.ReadField(rp, 8)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	end := *rp + int(n)*8
	if end > f.Size() {
		*rp = base
		return fmt.Errorf("%w: declared %d octets, %d bits left", ErrOutOfRange, n, f.remaining(base+8))
	}
	if err := e.ParseV(f, rp, int(n)); err != nil {
		return err
	}
	if *rp != end {
		return fmt.Errorf("%w: declared %d octets, consumed %d bits", ErrMalformedElement, n, *rp-base-8)
	}
	return nil
}

// ParseTLV はタグが一致する場合のみTLV形式の要素を読み取り、存在有無を返す。
func ParseTLV(iei uint8, e Element, f *Frame, rp *int) (bool, error) {
	if f.remaining(*rp) < 8 {
		return false, nil
	}
	tag, err := f.PeekField(*rp, 8)
	if err != nil || uint8(tag) != iei {
		return false, err
	}
	*rp += 8
	if err := ParseLV(e, f, rp); err != nil {
		return true, err
	}
	return true, nil
}

// ParseTV はタグが一致する場合のみTV形式の要素を読み取り、存在有無を返す。
func ParseTV(iei uint8, e Element, f *Frame, rp *int) (bool, error) {
	tagBits := tagBitsTV(e.BitsV())
	if f.remaining(*rp) < tagBits {
		return false, nil
	}
	tag, err := f.PeekField(*rp, tagBits)
	if err != nil || uint8(tag) != iei {
		return false, err
	}
	*rp += tagBits
	if err := e.ParseV(f, rp, 0); err != nil {
		return true, err
	}
	return true, nil
}

// ParseT は値部を持たない8ビットタグのみの要素の存在を判定し、一致すれば消費する。
func ParseT(iei uint8, f *Frame, rp *int) (bool, error) {
	if f.remaining(*rp) < 8 {
		return false, nil
	}
	tag, err := f.PeekField(*rp, 8)
	if err != nil || uint8(tag) != iei {
		return false, err
	}
	*rp += 8
	return true, nil
}

// WriteLV はLV形式で要素を書き込む。
func WriteLV(e Element, f *Frame, wp *int) error {
	n := lengthVOctets(e)
	if n > MaxLVLength {
		return fmt.Errorf("%w: value length %d exceeds %d octets", ErrInvalidValue, n, MaxLVLength)
	}
	if err := f.WriteField(wp, uint64(n), 8); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	return e.WriteV(f, wp)
}

// WriteTLV はTLV形式で要素を書き込む。
func WriteTLV(iei uint8, e Element, f *Frame, wp *int) error {
	if err := f.WriteField(wp, uint64(iei), 8); err != nil {
		return err
	}
	return WriteLV(e, f, wp)
}

// WriteTV はTV形式で要素を書き込む。値部が4ビット以下の場合のみ4ビットタグを使う。
func WriteTV(iei uint8, e Element, f *Frame, wp *int) error {
	if err := f.WriteField(wp, uint64(iei), tagBitsTV(e.BitsV())); err != nil {
		return err
	}
	return e.WriteV(f, wp)
}

// WriteT は8ビットタグのみの要素を書き込む。
func WriteT(iei uint8, f *Frame, wp *int) error {
	return f.WriteField(wp, uint64(iei), 8)
}

// SkipExtendedOctets は拡張ビット付きオクテット列を読み飛ばす。
// 各オクテットは先頭1ビットの拡張フラグと7ビットのペイロードからなり、フラグ0で終端する。
func SkipExtendedOctets(f *Frame, rp *int) error {
	if *rp == f.Size() {
		return nil
	}
	base := *rp
	for {
		flag, err := f.ReadField(rp, 1)
		if err != nil {
			*rp = base
			return err
		}
		if err := f.advance(rp, 7); err != nil {
			*rp = base
			return err
		}
		if flag == 0 {
			return nil
		}
	}
}

// readOctets はnオクテットを読み取る。
func readOctets(f *Frame, rp *int, n int) ([]byte, error) {
	out := make([]byte, n)
	for i := range out {
		v, err := f.ReadField(rp, 8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(v)
	}
	return out, nil
}

// writeOctets はオクテット列を書き込む。
func writeOctets(f *Frame, wp *int, b []byte) error {
	for _, v := range b {
		if err := f.WriteField(wp, uint64(v), 8); err != nil {
			return err
		}
	}
	return nil
}

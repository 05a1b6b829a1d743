package channel

import (
	"fmt"

	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
)

// datagramHeaderLen はデータグラムヘッダ長（プリミティブ1オクテット + SAP1オクテット）
const datagramHeaderLen = 2

// maxDatagramLen は受信バッファ長
const maxDatagramLen = 512

// encodeDatagram はフレームをデータグラムに変換する。
func encodeDatagram(f *l3.Frame, sap SAP) []byte {
	body := f.Bytes()
	b := make([]byte, datagramHeaderLen+len(body))
	b[0] = byte(f.Primitive())
	b[1] = byte(sap)
	copy(b[datagramHeaderLen:], body)
	return b
}

// encodePrimitive は本体を持たないプリミティブのデータグラムを返す。
func encodePrimitive(prim l3.Primitive, sap SAP) []byte {
	return []byte{byte(prim), byte(sap)}
}

// decodeDatagram はデータグラムをフレームとSAPに変換する。
func decodeDatagram(b []byte) (*l3.Frame, SAP, error) {
	if len(b) < datagramHeaderLen {
		return nil, 0, fmt.Errorf("%w: %d octets", ErrInvalidDatagram, len(b))
	}
	prim := l3.Primitive(b[0])
	if prim > l3.PrimitiveError {
		return nil, 0, fmt.Errorf("%w: primitive %d", ErrInvalidDatagram, b[0])
	}
	return l3.NewFrameFromBytes(prim, b[datagramHeaderLen:]), SAP(b[1]), nil
}

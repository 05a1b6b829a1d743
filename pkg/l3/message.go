package l3

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ProtocolDiscriminator はL3ヘッダのプロトコル識別子。
type ProtocolDiscriminator uint8

// プロトコル識別子（GSM 04.07 11.2.3.1.1）
const (
	PDCallControl        ProtocolDiscriminator = 0x03
	PDMobilityManagement ProtocolDiscriminator = 0x05
	PDRadioResource      ProtocolDiscriminator = 0x06
	PDSMS                ProtocolDiscriminator = 0x09
)

func (p ProtocolDiscriminator) String() string {
	switch p {
	case PDCallControl:
		return "CC"
	case PDMobilityManagement:
		return "MM"
	case PDRadioResource:
		return "RR"
	case PDSMS:
		return "SMS"
	default:
		return fmt.Sprintf("PD(%d)", uint8(p))
	}
}

// headerBits はL3ヘッダのビット長（スキップ4 + PD4 + MTI8）
const headerBits = 16

// Message はL3メッセージ。具象型はこのパッケージで定義されたものに限られる。
type Message interface {
	PD() ProtocolDiscriminator
	MTI() uint8
	String() string

	bodyBits() int
	parseBody(f *Frame, rp *int) error
	writeBody(f *Frame, wp *int) error
}

// transactional はヘッダ先頭4ビットにトランザクション識別子を持つメッセージ。
type transactional interface {
	skipNibble() uint8
	setSkipNibble(v uint8)
}

type messageKey struct {
	pd  ProtocolDiscriminator
	mti uint8
}

// decoders は (PD, MTI) から空のメッセージを生成するデコードテーブル。
var decoders = map[messageKey]func() Message{
	// MM
	{PDMobilityManagement, MTIIMSIDetachIndication}:     func() Message { return &IMSIDetachIndication{} },
	{PDMobilityManagement, MTILocationUpdatingAccept}:   func() Message { return &LocationUpdatingAccept{} },
	{PDMobilityManagement, MTILocationUpdatingReject}:   func() Message { return &LocationUpdatingReject{} },
	{PDMobilityManagement, MTILocationUpdatingRequest}:  func() Message { return &LocationUpdatingRequest{} },
	{PDMobilityManagement, MTIAuthenticationReject}:     func() Message { return &AuthenticationReject{} },
	{PDMobilityManagement, MTIAuthenticationRequest}:    func() Message { return &AuthenticationRequest{} },
	{PDMobilityManagement, MTIAuthenticationResponse}:   func() Message { return &AuthenticationResponse{} },
	{PDMobilityManagement, MTIIdentityRequest}:          func() Message { return &IdentityRequest{} },
	{PDMobilityManagement, MTIIdentityResponse}:         func() Message { return &IdentityResponse{} },
	{PDMobilityManagement, MTITMSIReallocationCommand}:  func() Message { return &TMSIReallocationCommand{} },
	{PDMobilityManagement, MTITMSIReallocationComplete}: func() Message { return &TMSIReallocationComplete{} },
	{PDMobilityManagement, MTICMServiceAccept}:          func() Message { return &CMServiceAccept{} },
	{PDMobilityManagement, MTICMServiceReject}:          func() Message { return &CMServiceReject{} },
	{PDMobilityManagement, MTICMServiceAbort}:           func() Message { return &CMServiceAbort{} },
	{PDMobilityManagement, MTICMServiceRequest}:         func() Message { return &CMServiceRequest{} },
	{PDMobilityManagement, MTIMMStatus}:                 func() Message { return &MMStatus{} },
	{PDMobilityManagement, MTIMMInformation}:            func() Message { return &MMInformation{} },

	// CC
	{PDCallControl, MTIAlerting}:           func() Message { return &Alerting{} },
	{PDCallControl, MTICallProceeding}:     func() Message { return &CallProceeding{} },
	{PDCallControl, MTISetup}:              func() Message { return &Setup{} },
	{PDCallControl, MTIConnect}:            func() Message { return &Connect{} },
	{PDCallControl, MTIEmergencySetup}:     func() Message { return &EmergencySetup{} },
	{PDCallControl, MTIConnectAcknowledge}: func() Message { return &ConnectAcknowledge{} },
	{PDCallControl, MTIDisconnect}:         func() Message { return &Disconnect{} },
	{PDCallControl, MTIRelease}:            func() Message { return &Release{} },
	{PDCallControl, MTIReleaseComplete}:    func() Message { return &ReleaseComplete{} },

	// RR: MMが受信するのはClassmark Changeのみ
	{PDRadioResource, MTIClassmarkChange}: func() Message { return &ClassmarkChange{} },
}

// lookupMTI はデコードテーブル検索用のMTIを返す。
// MMとCCではMTI上位2ビット（送信シーケンス番号）を無視する。
func lookupMTI(pd ProtocolDiscriminator, mti uint8) uint8 {
	switch pd {
	case PDMobilityManagement, PDCallControl:
		return mti & 0x3f
	default:
		return mti
	}
}

// supported は解析対象のプロトコル識別子かを判定する。
func supported(pd ProtocolDiscriminator) bool {
	switch pd {
	case PDMobilityManagement, PDCallControl, PDRadioResource:
		return true
	default:
		return false
	}
}

// Decode はフレームをメッセージに変換する。失敗時は理由を示すエラーを返す。
func Decode(f *Frame) (Message, error) {
	if f == nil || f.Size() == 0 {
		return nil, ErrEmptyFrame
	}
	rp := 0
	skip, err := f.ReadField(&rp, 4)
	if err != nil {
		return nil, err
	}
	pdv, err := f.ReadField(&rp, 4)
	if err != nil {
		return nil, err
	}
	mti, err := f.ReadField(&rp, 8)
	if err != nil {
		return nil, err
	}
	pd := ProtocolDiscriminator(pdv)
	if !supported(pd) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProtocol, pd)
	}
	newMessage, ok := decoders[messageKey{pd: pd, mti: lookupMTI(pd, uint8(mti))}]
	if !ok {
		return nil, fmt.Errorf("%w: %s MTI=0x%02x", ErrUnknownMessageType, pd, mti)
	}
	msg := newMessage()
	if t, ok := msg.(transactional); ok {
		t.setSkipNibble(uint8(skip))
	}
	if err := msg.parseBody(f, &rp); err != nil {
		return nil, fmt.Errorf("%s: %w", messageName(msg), err)
	}
	return msg, nil
}

// Parse はフレームをメッセージに変換する。
// 解析できないフレームはログに記録し、nil を返す。
func Parse(f *Frame) Message {
	msg, err := Decode(f)
	if err != nil {
		frame := ""
		if f != nil {
			frame = f.String()
		}
		eventID := "L3_PARSE_ERR"
		if errors.Is(err, ErrUnsupportedProtocol) {
			eventID = "L3_UNSUPPORTED_PD"
		}
		slog.Warn("L3メッセージ解析失敗",
			"event_id", eventID,
			"error", err,
			"frame", frame,
		)
		return nil
	}
	slog.Debug("L3メッセージ受信", "message", msg.String())
	return msg
}

// BitsNeeded はメッセージの符号化に必要なビット長を返す。
func BitsNeeded(m Message) int {
	return headerBits + m.bodyBits()
}

// Write はメッセージをDATAフレームに変換する。
func Write(m Message) (*Frame, error) {
	return NewFrameFor(m, PrimitiveData)
}

// NewFrameFor はメッセージを指定Primitiveのフレームに変換する。
// L2長は符号化後のオクテット長で設定される。
func NewFrameFor(m Message, prim Primitive) (*Frame, error) {
	f := NewFrame(prim, BitsNeeded(m))
	wp := 0
	var skip uint8
	if t, ok := m.(transactional); ok {
		skip = t.skipNibble()
	}
	if err := f.WriteField(&wp, uint64(skip), 4); err != nil {
		return nil, err
	}
	if err := f.WriteField(&wp, uint64(m.PD()), 4); err != nil {
		return nil, err
	}
	if err := f.WriteField(&wp, uint64(m.MTI()), 8); err != nil {
		return nil, err
	}
	if err := m.writeBody(f, &wp); err != nil {
		return nil, fmt.Errorf("%s: %w", messageName(m), err)
	}
	if wp != f.Size() {
		return nil, fmt.Errorf("%w: %s wrote %d of %d bits", ErrLengthMismatch, messageName(m), wp, f.Size())
	}
	f.SetL2Length(f.ByteLength())
	return f, nil
}

// messageName はログ用のメッセージ型名を返す。
func messageName(m Message) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", m), "*l3.")
}

// describe はメッセージの共通表記に追加フィールドを並べた文字列を返す。
func describe(m Message, fields ...any) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s PD=%s MTI=0x%02x", messageName(m), m.PD(), m.MTI())
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", fields[i], fields[i+1])
	}
	return sb.String()
}

// parseOptionalTLV はタグが一致した場合のみ要素を生成して返す。
func parseOptionalTLV[T any, P interface {
	*T
	Element
}](iei uint8, f *Frame, rp *int) (*T, error) {
	var v T
	ok, err := ParseTLV(iei, P(&v), f, rp)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

package l3

// RRメッセージ種別（GSM 04.08 10.4）
const (
	MTIChannelRelease   uint8 = 0x0d
	MTIClassmarkEnquiry uint8 = 0x13
	MTIClassmarkChange  uint8 = 0x16
)

const ieiClassmark3 uint8 = 0x20

type rrMessage struct{}

func (rrMessage) PD() ProtocolDiscriminator { return PDRadioResource }

// ChannelRelease はチャネル解放。
type ChannelRelease struct {
	rrMessage
	Cause RRCause
}

func (m *ChannelRelease) MTI() uint8 { return MTIChannelRelease }

func (m *ChannelRelease) bodyBits() int { return 8 }

func (m *ChannelRelease) parseBody(f *Frame, rp *int) error {
	v, err := f.ReadField(rp, 8)
	m.Cause = RRCause(v)
	return err
}

func (m *ChannelRelease) writeBody(f *Frame, wp *int) error {
	return f.WriteField(wp, uint64(m.Cause), 8)
}

func (m *ChannelRelease) String() string {
	return describe(m, "cause", uint8(m.Cause))
}

// ClassmarkEnquiry はクラスマーク照会。
type ClassmarkEnquiry struct {
	rrMessage
	emptyBody
}

func (m *ClassmarkEnquiry) MTI() uint8 { return MTIClassmarkEnquiry }

func (m *ClassmarkEnquiry) String() string { return describe(m) }

// ClassmarkChange はクラスマーク変更通知。
type ClassmarkChange struct {
	rrMessage
	Classmark  MobileStationClassmark2
	Classmark3 MobileStationClassmark3
}

func (m *ClassmarkChange) MTI() uint8 { return MTIClassmarkChange }

func (m *ClassmarkChange) bodyBits() int {
	n := LengthLV(&m.Classmark)
	if len(m.Classmark3) > 0 {
		n += LengthTLV(&m.Classmark3)
	}
	return n
}

func (m *ClassmarkChange) parseBody(f *Frame, rp *int) error {
	if err := ParseLV(&m.Classmark, f, rp); err != nil {
		return err
	}
	_, err := ParseTLV(ieiClassmark3, &m.Classmark3, f, rp)
	return err
}

func (m *ClassmarkChange) writeBody(f *Frame, wp *int) error {
	if err := WriteLV(&m.Classmark, f, wp); err != nil {
		return err
	}
	if len(m.Classmark3) > 0 {
		return WriteTLV(ieiClassmark3, &m.Classmark3, f, wp)
	}
	return nil
}

func (m *ClassmarkChange) String() string {
	return describe(m, "classmark", m.Classmark.Hex())
}

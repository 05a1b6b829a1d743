package l3

// CCメッセージ種別（GSM 04.08 10.4）
const (
	MTIAlerting           uint8 = 0x01
	MTICallProceeding     uint8 = 0x02
	MTISetup              uint8 = 0x05
	MTIConnect            uint8 = 0x07
	MTIEmergencySetup     uint8 = 0x0e
	MTIConnectAcknowledge uint8 = 0x0f
	MTIDisconnect         uint8 = 0x25
	MTIReleaseComplete    uint8 = 0x2a
	MTIRelease            uint8 = 0x2d
)

// CC情報要素識別子
const (
	ieiRepeatIndicator      uint8 = 0x0d
	ieiBearerCapability     uint8 = 0x04
	ieiCause                uint8 = 0x08
	ieiFacility             uint8 = 0x1c
	ieiProgressIndicator    uint8 = 0x1e
	ieiCallingSubaddress    uint8 = 0x5d
	ieiCalledPartyBCDNumber uint8 = 0x5e
	ieiCalledSubaddress     uint8 = 0x6d
	ieiUserUser             uint8 = 0x7e
)

// ccMessage はCCメッセージ共通のプロトコル識別子とトランザクション識別子を提供する。
type ccMessage struct {
	TI TransactionIdentifier
}

func (*ccMessage) PD() ProtocolDiscriminator { return PDCallControl }

func (c *ccMessage) skipNibble() uint8 { return uint8(c.TI) & 0x0f }

func (c *ccMessage) setSkipNibble(v uint8) { c.TI = TransactionIdentifier(v & 0x0f) }

// ccOptional はCCメッセージ末尾の任意要素（ファシリティ、経過表示）。
type ccOptional struct {
	Facility Facility
	Progress *ProgressIndicator
}

func (o *ccOptional) bits() int {
	n := 0
	if len(o.Facility) > 0 {
		n += LengthTLV(&o.Facility)
	}
	if o.Progress != nil {
		n += LengthTLV(o.Progress)
	}
	return n
}

func (o *ccOptional) parse(f *Frame, rp *int) error {
	if _, err := ParseTLV(ieiFacility, &o.Facility, f, rp); err != nil {
		return err
	}
	var err error
	o.Progress, err = parseOptionalTLV[ProgressIndicator](ieiProgressIndicator, f, rp)
	return err
}

func (o *ccOptional) write(f *Frame, wp *int) error {
	if len(o.Facility) > 0 {
		if err := WriteTLV(ieiFacility, &o.Facility, f, wp); err != nil {
			return err
		}
	}
	if o.Progress != nil {
		return WriteTLV(ieiProgressIndicator, o.Progress, f, wp)
	}
	return nil
}

// Setup は発信呼設定。
type Setup struct {
	ccMessage
	BearerCapability BearerCapability
	Facility         Facility
	CalledParty      *CalledPartyBCDNumber
}

func (m *Setup) MTI() uint8 { return MTISetup }

func (m *Setup) bodyBits() int {
	n := 0
	if len(m.BearerCapability) > 0 {
		n += LengthTLV(&m.BearerCapability)
	}
	if len(m.Facility) > 0 {
		n += LengthTLV(&m.Facility)
	}
	if m.CalledParty != nil {
		n += LengthTLV(m.CalledParty)
	}
	return n
}

func (m *Setup) parseBody(f *Frame, rp *int) error {
	if _, err := SkipTV(ieiRepeatIndicator, 4, f, rp); err != nil {
		return err
	}
	if _, err := ParseTLV(ieiBearerCapability, &m.BearerCapability, f, rp); err != nil {
		return err
	}
	// 2つ目のベアラ能力は保持しない
	if _, err := SkipTLV(ieiBearerCapability, f, rp); err != nil {
		return err
	}
	if _, err := ParseTLV(ieiFacility, &m.Facility, f, rp); err != nil {
		return err
	}
	if _, err := SkipTLV(ieiCallingSubaddress, f, rp); err != nil {
		return err
	}
	var err error
	if m.CalledParty, err = parseOptionalTLV[CalledPartyBCDNumber](ieiCalledPartyBCDNumber, f, rp); err != nil {
		return err
	}
	_, err = SkipTLV(ieiCalledSubaddress, f, rp)
	return err
}

func (m *Setup) writeBody(f *Frame, wp *int) error {
	if len(m.BearerCapability) > 0 {
		if err := WriteTLV(ieiBearerCapability, &m.BearerCapability, f, wp); err != nil {
			return err
		}
	}
	if len(m.Facility) > 0 {
		if err := WriteTLV(ieiFacility, &m.Facility, f, wp); err != nil {
			return err
		}
	}
	if m.CalledParty != nil {
		return WriteTLV(ieiCalledPartyBCDNumber, m.CalledParty, f, wp)
	}
	return nil
}

func (m *Setup) String() string {
	called := ""
	if m.CalledParty != nil {
		called = m.CalledParty.Digits
	}
	return describe(m, "ti", uint8(m.TI), "called", called)
}

// EmergencySetup は緊急呼設定。
type EmergencySetup struct {
	ccMessage
	BearerCapability BearerCapability
}

func (m *EmergencySetup) MTI() uint8 { return MTIEmergencySetup }

func (m *EmergencySetup) bodyBits() int {
	if len(m.BearerCapability) > 0 {
		return LengthTLV(&m.BearerCapability)
	}
	return 0
}

func (m *EmergencySetup) parseBody(f *Frame, rp *int) error {
	_, err := ParseTLV(ieiBearerCapability, &m.BearerCapability, f, rp)
	return err
}

func (m *EmergencySetup) writeBody(f *Frame, wp *int) error {
	if len(m.BearerCapability) > 0 {
		return WriteTLV(ieiBearerCapability, &m.BearerCapability, f, wp)
	}
	return nil
}

func (m *EmergencySetup) String() string {
	return describe(m, "ti", uint8(m.TI))
}

// CallProceeding は呼処理中。
type CallProceeding struct {
	ccMessage
	ccOptional
}

func (m *CallProceeding) MTI() uint8 { return MTICallProceeding }

func (m *CallProceeding) bodyBits() int { return m.bits() }

func (m *CallProceeding) parseBody(f *Frame, rp *int) error {
	if _, err := SkipTV(ieiRepeatIndicator, 4, f, rp); err != nil {
		return err
	}
	for i := 0; i < 2; i++ {
		if _, err := SkipTLV(ieiBearerCapability, f, rp); err != nil {
			return err
		}
	}
	return m.parse(f, rp)
}

func (m *CallProceeding) writeBody(f *Frame, wp *int) error { return m.write(f, wp) }

func (m *CallProceeding) String() string { return describe(m, "ti", uint8(m.TI)) }

// Alerting は呼出中。
type Alerting struct {
	ccMessage
	ccOptional
}

func (m *Alerting) MTI() uint8 { return MTIAlerting }

func (m *Alerting) bodyBits() int { return m.bits() }

func (m *Alerting) parseBody(f *Frame, rp *int) error {
	if err := m.parse(f, rp); err != nil {
		return err
	}
	_, err := SkipTLV(ieiUserUser, f, rp)
	return err
}

func (m *Alerting) writeBody(f *Frame, wp *int) error { return m.write(f, wp) }

func (m *Alerting) String() string { return describe(m, "ti", uint8(m.TI)) }

// Connect は応答。
type Connect struct {
	ccMessage
	ccOptional
}

func (m *Connect) MTI() uint8 { return MTIConnect }

func (m *Connect) bodyBits() int { return m.bits() }

func (m *Connect) parseBody(f *Frame, rp *int) error { return m.parse(f, rp) }

func (m *Connect) writeBody(f *Frame, wp *int) error { return m.write(f, wp) }

func (m *Connect) String() string { return describe(m, "ti", uint8(m.TI)) }

// ConnectAcknowledge は応答確認。
type ConnectAcknowledge struct {
	ccMessage
	emptyBody
}

func (m *ConnectAcknowledge) MTI() uint8 { return MTIConnectAcknowledge }

func (m *ConnectAcknowledge) String() string { return describe(m, "ti", uint8(m.TI)) }

// Disconnect は切断。理由は必須。
type Disconnect struct {
	ccMessage
	Cause Cause
	ccOptional
}

func (m *Disconnect) MTI() uint8 { return MTIDisconnect }

func (m *Disconnect) bodyBits() int { return LengthLV(&m.Cause) + m.bits() }

func (m *Disconnect) parseBody(f *Frame, rp *int) error {
	if err := ParseLV(&m.Cause, f, rp); err != nil {
		return err
	}
	return m.parse(f, rp)
}

func (m *Disconnect) writeBody(f *Frame, wp *int) error {
	if err := WriteLV(&m.Cause, f, wp); err != nil {
		return err
	}
	return m.write(f, wp)
}

func (m *Disconnect) String() string {
	return describe(m, "ti", uint8(m.TI), "cause", m.Cause.String())
}

// Release は解放。理由は省略時 nil。
type Release struct {
	ccMessage
	Cause    *Cause
	Facility Facility
}

func (m *Release) MTI() uint8 { return MTIRelease }

func (m *Release) bodyBits() int { return releaseBits(m.Cause, &m.Facility) }

func (m *Release) parseBody(f *Frame, rp *int) error {
	var err error
	if m.Cause, err = parseOptionalTLV[Cause](ieiCause, f, rp); err != nil {
		return err
	}
	// 2つ目の理由は保持しない
	if _, err := SkipTLV(ieiCause, f, rp); err != nil {
		return err
	}
	_, err = ParseTLV(ieiFacility, &m.Facility, f, rp)
	return err
}

func (m *Release) writeBody(f *Frame, wp *int) error {
	return writeRelease(m.Cause, &m.Facility, f, wp)
}

func (m *Release) String() string { return describe(m, "ti", uint8(m.TI)) }

// ReleaseComplete は解放完了。理由は省略時 nil。
type ReleaseComplete struct {
	ccMessage
	Cause    *Cause
	Facility Facility
}

func (m *ReleaseComplete) MTI() uint8 { return MTIReleaseComplete }

func (m *ReleaseComplete) bodyBits() int { return releaseBits(m.Cause, &m.Facility) }

func (m *ReleaseComplete) parseBody(f *Frame, rp *int) error {
	var err error
	if m.Cause, err = parseOptionalTLV[Cause](ieiCause, f, rp); err != nil {
		return err
	}
	_, err = ParseTLV(ieiFacility, &m.Facility, f, rp)
	return err
}

func (m *ReleaseComplete) writeBody(f *Frame, wp *int) error {
	return writeRelease(m.Cause, &m.Facility, f, wp)
}

func (m *ReleaseComplete) String() string {
	if m.Cause != nil {
		return describe(m, "ti", uint8(m.TI), "cause", m.Cause.String())
	}
	return describe(m, "ti", uint8(m.TI))
}

func releaseBits(cause *Cause, fa *Facility) int {
	n := 0
	if cause != nil {
		n += LengthTLV(cause)
	}
	if len(*fa) > 0 {
		n += LengthTLV(fa)
	}
	return n
}

func writeRelease(cause *Cause, fa *Facility, f *Frame, wp *int) error {
	if cause != nil {
		if err := WriteTLV(ieiCause, cause, f, wp); err != nil {
			return err
		}
	}
	if len(*fa) > 0 {
		return WriteTLV(ieiFacility, fa, f, wp)
	}
	return nil
}

package l3

// MMメッセージ種別（GSM 04.08 10.4）
const (
	MTIIMSIDetachIndication     uint8 = 0x01
	MTILocationUpdatingAccept   uint8 = 0x02
	MTILocationUpdatingReject   uint8 = 0x04
	MTILocationUpdatingRequest  uint8 = 0x08
	MTIAuthenticationReject     uint8 = 0x11
	MTIAuthenticationRequest    uint8 = 0x12
	MTIAuthenticationResponse   uint8 = 0x14
	MTIIdentityRequest          uint8 = 0x18
	MTIIdentityResponse         uint8 = 0x19
	MTITMSIReallocationCommand  uint8 = 0x1a
	MTITMSIReallocationComplete uint8 = 0x1b
	MTICMServiceAccept          uint8 = 0x21
	MTICMServiceReject          uint8 = 0x22
	MTICMServiceAbort           uint8 = 0x23
	MTICMServiceRequest         uint8 = 0x24
	MTIMMStatus                 uint8 = 0x31
	MTIMMInformation            uint8 = 0x32
)

// MM情報要素識別子
const (
	ieiMobileIdentity    uint8 = 0x17
	ieiFollowOnProceed   uint8 = 0xa1
	ieiPriorityLevel     uint8 = 0x08
	ieiFullNetworkName   uint8 = 0x43
	ieiShortNetworkName  uint8 = 0x45
	ieiLocalTimeZone     uint8 = 0x46
	ieiUniversalTimeZone uint8 = 0x47
)

// mmMessage はMMメッセージ共通のプロトコル識別子を提供する。
type mmMessage struct{}

func (mmMessage) PD() ProtocolDiscriminator { return PDMobilityManagement }

// emptyBody は本体を持たないメッセージの共通実装。
type emptyBody struct{}

func (emptyBody) bodyBits() int                    { return 0 }
func (emptyBody) parseBody(_ *Frame, _ *int) error { return nil }
func (emptyBody) writeBody(_ *Frame, _ *int) error { return nil }

// IMSIDetachIndication はIMSIデタッチ通知。
type IMSIDetachIndication struct {
	mmMessage
	Classmark MobileStationClassmark1
	MobileID  MobileIdentity
}

func (m *IMSIDetachIndication) MTI() uint8 { return MTIIMSIDetachIndication }

func (m *IMSIDetachIndication) bodyBits() int {
	return 8 + LengthLV(&m.MobileID)
}

func (m *IMSIDetachIndication) parseBody(f *Frame, rp *int) error {
	cm, err := f.ReadField(rp, 8)
	if err != nil {
		return err
	}
	m.Classmark = MobileStationClassmark1(cm)
	return ParseLV(&m.MobileID, f, rp)
}

func (m *IMSIDetachIndication) writeBody(f *Frame, wp *int) error {
	if err := f.WriteField(wp, uint64(m.Classmark), 8); err != nil {
		return err
	}
	return WriteLV(&m.MobileID, f, wp)
}

func (m *IMSIDetachIndication) String() string {
	return describe(m, "mobileID", m.MobileID.String())
}

// LocationUpdatingRequest は位置登録要求。
type LocationUpdatingRequest struct {
	mmMessage
	CKSN       CipheringKeySequenceNumber
	UpdateType LocationUpdatingType
	LAI        LocationAreaIdentity
	Classmark  MobileStationClassmark1
	MobileID   MobileIdentity
}

func (m *LocationUpdatingRequest) MTI() uint8 { return MTILocationUpdatingRequest }

func (m *LocationUpdatingRequest) bodyBits() int {
	return 4 + 4 + m.LAI.BitsV() + 8 + LengthLV(&m.MobileID)
}

func (m *LocationUpdatingRequest) parseBody(f *Frame, rp *int) error {
	cksn, err := f.ReadField(rp, 4)
	if err != nil {
		return err
	}
	typ, err := f.ReadField(rp, 4)
	if err != nil {
		return err
	}
	m.CKSN = CipheringKeySequenceNumber(cksn)
	m.UpdateType = LocationUpdatingType(typ)
	if err := m.LAI.ParseV(f, rp, 0); err != nil {
		return err
	}
	cm, err := f.ReadField(rp, 8)
	if err != nil {
		return err
	}
	m.Classmark = MobileStationClassmark1(cm)
	return ParseLV(&m.MobileID, f, rp)
}

func (m *LocationUpdatingRequest) writeBody(f *Frame, wp *int) error {
	if err := f.WriteField(wp, uint64(m.CKSN), 4); err != nil {
		return err
	}
	if err := f.WriteField(wp, uint64(m.UpdateType), 4); err != nil {
		return err
	}
	if err := m.LAI.WriteV(f, wp); err != nil {
		return err
	}
	if err := f.WriteField(wp, uint64(m.Classmark), 8); err != nil {
		return err
	}
	return WriteLV(&m.MobileID, f, wp)
}

func (m *LocationUpdatingRequest) String() string {
	return describe(m,
		"type", uint8(m.UpdateType),
		"lai", m.LAI,
		"mobileID", m.MobileID.String(),
	)
}

// LocationUpdatingAccept は位置登録受付。MobileID が nil の場合はTMSIを割り当てない。
type LocationUpdatingAccept struct {
	mmMessage
	LAI             LocationAreaIdentity
	MobileID        *MobileIdentity
	FollowOnProceed bool
}

// NewLocationUpdatingAccept はTMSI割当なしの位置登録受付を生成する。
func NewLocationUpdatingAccept(lai LocationAreaIdentity) *LocationUpdatingAccept {
	return &LocationUpdatingAccept{LAI: lai}
}

// NewLocationUpdatingAcceptWithTMSI は新しいTMSIを割り当てる位置登録受付を生成する。
func NewLocationUpdatingAcceptWithTMSI(lai LocationAreaIdentity, tmsi uint32) *LocationUpdatingAccept {
	id := NewTMSIIdentity(tmsi)
	return &LocationUpdatingAccept{LAI: lai, MobileID: &id}
}

func (m *LocationUpdatingAccept) MTI() uint8 { return MTILocationUpdatingAccept }

func (m *LocationUpdatingAccept) bodyBits() int {
	n := m.LAI.BitsV()
	if m.MobileID != nil {
		n += LengthTLV(m.MobileID)
	}
	if m.FollowOnProceed {
		n += 8
	}
	return n
}

func (m *LocationUpdatingAccept) parseBody(f *Frame, rp *int) error {
	if err := m.LAI.ParseV(f, rp, 0); err != nil {
		return err
	}
	id, err := parseOptionalTLV[MobileIdentity](ieiMobileIdentity, f, rp)
	if err != nil {
		return err
	}
	m.MobileID = id
	m.FollowOnProceed, err = ParseT(ieiFollowOnProceed, f, rp)
	return err
}

func (m *LocationUpdatingAccept) writeBody(f *Frame, wp *int) error {
	if err := m.LAI.WriteV(f, wp); err != nil {
		return err
	}
	if m.MobileID != nil {
		if err := WriteTLV(ieiMobileIdentity, m.MobileID, f, wp); err != nil {
			return err
		}
	}
	if m.FollowOnProceed {
		return WriteT(ieiFollowOnProceed, f, wp)
	}
	return nil
}

func (m *LocationUpdatingAccept) String() string {
	if m.MobileID != nil {
		return describe(m, "lai", m.LAI, "mobileID", m.MobileID.String())
	}
	return describe(m, "lai", m.LAI)
}

// LocationUpdatingReject は位置登録拒否。
type LocationUpdatingReject struct {
	mmMessage
	Cause RejectCause
}

func (m *LocationUpdatingReject) MTI() uint8 { return MTILocationUpdatingReject }

func (m *LocationUpdatingReject) bodyBits() int { return 8 }

func (m *LocationUpdatingReject) parseBody(f *Frame, rp *int) error {
	v, err := f.ReadField(rp, 8)
	m.Cause = RejectCause(v)
	return err
}

func (m *LocationUpdatingReject) writeBody(f *Frame, wp *int) error {
	return f.WriteField(wp, uint64(m.Cause), 8)
}

func (m *LocationUpdatingReject) String() string {
	return describe(m, "cause", m.Cause)
}

// AuthenticationRequest は認証要求。
type AuthenticationRequest struct {
	mmMessage
	CKSN CipheringKeySequenceNumber
	RAND RAND
}

func (m *AuthenticationRequest) MTI() uint8 { return MTIAuthenticationRequest }

func (m *AuthenticationRequest) bodyBits() int { return 4 + 4 + m.RAND.BitsV() }

func (m *AuthenticationRequest) parseBody(f *Frame, rp *int) error {
	// 上位ニブルはスペア
	if _, err := f.ReadField(rp, 4); err != nil {
		return err
	}
	cksn, err := f.ReadField(rp, 4)
	if err != nil {
		return err
	}
	m.CKSN = CipheringKeySequenceNumber(cksn)
	return m.RAND.ParseV(f, rp, 0)
}

func (m *AuthenticationRequest) writeBody(f *Frame, wp *int) error {
	if err := f.WriteField(wp, 0, 4); err != nil {
		return err
	}
	if err := f.WriteField(wp, uint64(m.CKSN), 4); err != nil {
		return err
	}
	return m.RAND.WriteV(f, wp)
}

func (m *AuthenticationRequest) String() string {
	return describe(m, "cksn", uint8(m.CKSN), "rand", m.RAND.Hex())
}

// AuthenticationResponse は認証応答。
type AuthenticationResponse struct {
	mmMessage
	SRES SRES
}

func (m *AuthenticationResponse) MTI() uint8 { return MTIAuthenticationResponse }

func (m *AuthenticationResponse) bodyBits() int { return m.SRES.BitsV() }

func (m *AuthenticationResponse) parseBody(f *Frame, rp *int) error {
	return m.SRES.ParseV(f, rp, 0)
}

func (m *AuthenticationResponse) writeBody(f *Frame, wp *int) error {
	return m.SRES.WriteV(f, wp)
}

func (m *AuthenticationResponse) String() string {
	return describe(m, "sres", m.SRES.Hex())
}

// AuthenticationReject は認証拒否。
type AuthenticationReject struct {
	mmMessage
	emptyBody
}

func (m *AuthenticationReject) MTI() uint8 { return MTIAuthenticationReject }

func (m *AuthenticationReject) String() string { return describe(m) }

// IdentityRequest は識別子要求。
type IdentityRequest struct {
	mmMessage
	Type IdentityType
}

func (m *IdentityRequest) MTI() uint8 { return MTIIdentityRequest }

func (m *IdentityRequest) bodyBits() int { return 8 }

func (m *IdentityRequest) parseBody(f *Frame, rp *int) error {
	if _, err := f.ReadField(rp, 4); err != nil {
		return err
	}
	v, err := f.ReadField(rp, 4)
	m.Type = IdentityType(v & 0x07)
	return err
}

func (m *IdentityRequest) writeBody(f *Frame, wp *int) error {
	if err := f.WriteField(wp, 0, 4); err != nil {
		return err
	}
	return f.WriteField(wp, uint64(m.Type&0x07), 4)
}

func (m *IdentityRequest) String() string {
	return describe(m, "type", m.Type)
}

// IdentityResponse は識別子応答。
type IdentityResponse struct {
	mmMessage
	MobileID MobileIdentity
}

func (m *IdentityResponse) MTI() uint8 { return MTIIdentityResponse }

func (m *IdentityResponse) bodyBits() int { return LengthLV(&m.MobileID) }

func (m *IdentityResponse) parseBody(f *Frame, rp *int) error {
	return ParseLV(&m.MobileID, f, rp)
}

func (m *IdentityResponse) writeBody(f *Frame, wp *int) error {
	return WriteLV(&m.MobileID, f, wp)
}

func (m *IdentityResponse) String() string {
	return describe(m, "mobileID", m.MobileID.String())
}

// TMSIReallocationCommand はTMSI再割当指示。
type TMSIReallocationCommand struct {
	mmMessage
	LAI      LocationAreaIdentity
	MobileID MobileIdentity
}

func (m *TMSIReallocationCommand) MTI() uint8 { return MTITMSIReallocationCommand }

func (m *TMSIReallocationCommand) bodyBits() int {
	return m.LAI.BitsV() + LengthLV(&m.MobileID)
}

func (m *TMSIReallocationCommand) parseBody(f *Frame, rp *int) error {
	if err := m.LAI.ParseV(f, rp, 0); err != nil {
		return err
	}
	return ParseLV(&m.MobileID, f, rp)
}

func (m *TMSIReallocationCommand) writeBody(f *Frame, wp *int) error {
	if err := m.LAI.WriteV(f, wp); err != nil {
		return err
	}
	return WriteLV(&m.MobileID, f, wp)
}

func (m *TMSIReallocationCommand) String() string {
	return describe(m, "lai", m.LAI, "mobileID", m.MobileID.String())
}

// TMSIReallocationComplete はTMSI再割当完了。
type TMSIReallocationComplete struct {
	mmMessage
	emptyBody
}

func (m *TMSIReallocationComplete) MTI() uint8 { return MTITMSIReallocationComplete }

func (m *TMSIReallocationComplete) String() string { return describe(m) }

// CMServiceRequest はCMサービス要求。Priority は指定がない場合 nil。
type CMServiceRequest struct {
	mmMessage
	CKSN        CipheringKeySequenceNumber
	ServiceType CMServiceType
	Classmark   MobileStationClassmark2
	MobileID    MobileIdentity
	Priority    *PriorityLevel
}

func (m *CMServiceRequest) MTI() uint8 { return MTICMServiceRequest }

func (m *CMServiceRequest) bodyBits() int {
	n := 4 + 4 + LengthLV(&m.Classmark) + LengthLV(&m.MobileID)
	if m.Priority != nil {
		n += LengthTV(m.Priority)
	}
	return n
}

func (m *CMServiceRequest) parseBody(f *Frame, rp *int) error {
	cksn, err := f.ReadField(rp, 4)
	if err != nil {
		return err
	}
	typ, err := f.ReadField(rp, 4)
	if err != nil {
		return err
	}
	m.CKSN = CipheringKeySequenceNumber(cksn)
	m.ServiceType = CMServiceType(typ)
	if err := ParseLV(&m.Classmark, f, rp); err != nil {
		return err
	}
	if err := ParseLV(&m.MobileID, f, rp); err != nil {
		return err
	}
	var prio PriorityLevel
	ok, err := ParseTV(ieiPriorityLevel, &prio, f, rp)
	if err != nil {
		return err
	}
	if ok {
		m.Priority = &prio
	}
	return nil
}

func (m *CMServiceRequest) writeBody(f *Frame, wp *int) error {
	if err := f.WriteField(wp, uint64(m.CKSN), 4); err != nil {
		return err
	}
	if err := f.WriteField(wp, uint64(m.ServiceType), 4); err != nil {
		return err
	}
	if err := WriteLV(&m.Classmark, f, wp); err != nil {
		return err
	}
	if err := WriteLV(&m.MobileID, f, wp); err != nil {
		return err
	}
	if m.Priority != nil {
		return WriteTV(ieiPriorityLevel, m.Priority, f, wp)
	}
	return nil
}

func (m *CMServiceRequest) String() string {
	return describe(m, "serviceType", m.ServiceType, "mobileID", m.MobileID.String())
}

// CMServiceAccept はCMサービス受付。
type CMServiceAccept struct {
	mmMessage
	emptyBody
}

func (m *CMServiceAccept) MTI() uint8 { return MTICMServiceAccept }

func (m *CMServiceAccept) String() string { return describe(m) }

// CMServiceReject はCMサービス拒否。
type CMServiceReject struct {
	mmMessage
	Cause RejectCause
}

func (m *CMServiceReject) MTI() uint8 { return MTICMServiceReject }

func (m *CMServiceReject) bodyBits() int { return 8 }

func (m *CMServiceReject) parseBody(f *Frame, rp *int) error {
	v, err := f.ReadField(rp, 8)
	m.Cause = RejectCause(v)
	return err
}

func (m *CMServiceReject) writeBody(f *Frame, wp *int) error {
	return f.WriteField(wp, uint64(m.Cause), 8)
}

func (m *CMServiceReject) String() string {
	return describe(m, "cause", m.Cause)
}

// CMServiceAbort はCMサービス中止。
type CMServiceAbort struct {
	mmMessage
	emptyBody
}

func (m *CMServiceAbort) MTI() uint8 { return MTICMServiceAbort }

func (m *CMServiceAbort) String() string { return describe(m) }

// MMStatus はMMステータス。
type MMStatus struct {
	mmMessage
	Cause RejectCause
}

func (m *MMStatus) MTI() uint8 { return MTIMMStatus }

func (m *MMStatus) bodyBits() int { return 8 }

func (m *MMStatus) parseBody(f *Frame, rp *int) error {
	v, err := f.ReadField(rp, 8)
	m.Cause = RejectCause(v)
	return err
}

func (m *MMStatus) writeBody(f *Frame, wp *int) error {
	return f.WriteField(wp, uint64(m.Cause), 8)
}

func (m *MMStatus) String() string {
	return describe(m, "cause", m.Cause)
}

// MMInformation はネットワーク名と時刻の通知。各要素は省略時 nil。
type MMInformation struct {
	mmMessage
	FullName  *NetworkName
	ShortName *NetworkName
	Time      *TimeZoneAndTime
}

// NewMMInformation は略称ネットワーク名のみを持つMM Informationを生成する。
func NewMMInformation(shortName string) *MMInformation {
	return &MMInformation{ShortName: &NetworkName{Name: shortName}}
}

func (m *MMInformation) MTI() uint8 { return MTIMMInformation }

func (m *MMInformation) bodyBits() int {
	n := 0
	if m.FullName != nil {
		n += LengthTLV(m.FullName)
	}
	if m.ShortName != nil {
		n += LengthTLV(m.ShortName)
	}
	if m.Time != nil {
		n += LengthTV(m.Time)
	}
	return n
}

func (m *MMInformation) parseBody(f *Frame, rp *int) error {
	var err error
	if m.FullName, err = parseOptionalTLV[NetworkName](ieiFullNetworkName, f, rp); err != nil {
		return err
	}
	if m.ShortName, err = parseOptionalTLV[NetworkName](ieiShortNetworkName, f, rp); err != nil {
		return err
	}
	if _, err := SkipTV(ieiLocalTimeZone, 8, f, rp); err != nil {
		return err
	}
	var tz TimeZoneAndTime
	ok, err := ParseTV(ieiUniversalTimeZone, &tz, f, rp)
	if err != nil {
		return err
	}
	if ok {
		m.Time = &tz
	}
	return nil
}

func (m *MMInformation) writeBody(f *Frame, wp *int) error {
	if m.FullName != nil {
		if err := WriteTLV(ieiFullNetworkName, m.FullName, f, wp); err != nil {
			return err
		}
	}
	if m.ShortName != nil {
		if err := WriteTLV(ieiShortNetworkName, m.ShortName, f, wp); err != nil {
			return err
		}
	}
	if m.Time != nil {
		return WriteTV(ieiUniversalTimeZone, m.Time, f, wp)
	}
	return nil
}

func (m *MMInformation) String() string {
	if m.ShortName != nil {
		return describe(m, "shortName", m.ShortName.String())
	}
	return describe(m)
}

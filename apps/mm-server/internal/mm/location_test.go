package mm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/channel/channeltest"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/config"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/metrics"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/mocks"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/registrar"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/apperr"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
	"go.uber.org/mock/gomock"
)

var errRegistrarTimeout = errors.Join(registrar.ErrTimeout, errors.New("context deadline exceeded"))

func newLUR(id l3.MobileIdentity) *l3.LocationUpdatingRequest {
	return &l3.LocationUpdatingRequest{
		CKSN:       l3.NoKeyAvailable,
		UpdateType: l3.IMSIAttach,
		LAI:        testLAI,
		Classmark:  0x33,
		MobileID:   id,
	}
}

// expectFreshIMSI はTMSI未割当のIMSIに対する識別子解決とTMSI採番を設定する
func expectFreshIMSI(d *testDeps, lur *l3.LocationUpdatingRequest) {
	d.subs.EXPECT().TMSI(gomock.Any(), testIMSI).Return(uint32(0), false, nil)
	d.subs.EXPECT().AssignTMSI(gomock.Any(), testIMSI, lur).Return(testNewTMSI, nil)
}

// expectKnownIMSI はTMSI割当済みのIMSIに対する識別子解決とTMSI採番を設定する
func expectKnownIMSI(d *testDeps, lur *l3.LocationUpdatingRequest) {
	d.subs.EXPECT().TMSI(gomock.Any(), testIMSI).Return(testTMSI, true, nil)
	d.subs.EXPECT().AssignTMSI(gomock.Any(), testIMSI, lur).Return(testNewTMSI, nil)
}

func registered(ok bool) *registrar.RegisterResult {
	return &registrar.RegisterResult{Success: ok}
}

func TestLocationUpdatingHappyPathAssignsTMSI(t *testing.T) {
	cfg := newTestConfig()
	cfg.SendTMSIs = true
	e, d := newTestEngine(t, cfg)
	ch := channeltest.New("ch-1")
	ch.Push(&l3.TMSIReallocationComplete{})
	lur := newLUR(l3.NewIMSIIdentity(testIMSI))

	expectFreshIMSI(d, lur)
	d.reg.EXPECT().Register(gomock.Any(), &registrar.RegisterRequest{IMSI: testIMSI}).Return(registered(true), nil)

	if err := e.LocationUpdatingController(context.Background(), lur, ch); err != nil {
		t.Fatalf("LocationUpdatingController() error = %v", err)
	}

	assertSent(t, ch, "LocationUpdatingAccept", "ChannelRelease")
	acc := sentMessage[*l3.LocationUpdatingAccept](t, ch, 0)
	if acc.LAI != testLAI {
		t.Errorf("LAI = %s, want %s", acc.LAI, testLAI)
	}
	if acc.MobileID == nil || acc.MobileID.Type != l3.TMSIType || acc.MobileID.TMSI != testNewTMSI {
		t.Fatalf("accept mobile identity = %v, want TMSI %08x", acc.MobileID, testNewTMSI)
	}
	timeouts := ch.RecvTimeouts()
	if len(timeouts) != 1 || timeouts[0] != cfg.TMSIReallocTimeout {
		t.Errorf("recv timeouts = %v, want [%v]", timeouts, cfg.TMSIReallocTimeout)
	}
	if ch.Pending() != 0 {
		t.Error("reallocation complete was not consumed")
	}
}

func TestLocationUpdatingReallocationNotAcknowledged(t *testing.T) {
	tests := []struct {
		name  string
		setup func(ch *channeltest.Channel)
	}{
		{"no response", func(ch *channeltest.Channel) { ch.PushTimeout() }},
		{"other message", func(ch *channeltest.Channel) { ch.Push(&l3.MMStatus{Cause: l3.CauseMessageTypeNonExistent}) }},
		{"unparsable frame", func(ch *channeltest.Channel) {
			ch.PushFrame(l3.NewFrameFromBytes(l3.PrimitiveData, []byte{0x05, 0x3f}))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig()
			cfg.SendTMSIs = true
			e, d := newTestEngine(t, cfg)
			ch := channeltest.New("ch-1")
			tt.setup(ch)
			lur := newLUR(l3.NewIMSIIdentity(testIMSI))

			expectFreshIMSI(d, lur)
			d.reg.EXPECT().Register(gomock.Any(), gomock.Any()).Return(registered(true), nil)

			if err := e.LocationUpdatingController(context.Background(), lur, ch); err != nil {
				t.Fatalf("LocationUpdatingController() error = %v", err)
			}
			// 再送せずに解放する
			assertSent(t, ch, "LocationUpdatingAccept", "ChannelRelease")
		})
	}
}

func TestLocationUpdatingAcceptWithoutTMSI(t *testing.T) {
	tests := []struct {
		name      string
		sendTMSIs bool
		expect    func(d *testDeps, lur *l3.LocationUpdatingRequest)
	}{
		{"TMSI on record", true, expectKnownIMSI},
		{"TMSI assignment disabled", false, expectFreshIMSI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig()
			cfg.SendTMSIs = tt.sendTMSIs
			e, d := newTestEngine(t, cfg)
			ch := channeltest.New("ch-1")
			lur := newLUR(l3.NewIMSIIdentity(testIMSI))

			tt.expect(d, lur)
			d.reg.EXPECT().Register(gomock.Any(), gomock.Any()).Return(registered(true), nil)

			if err := e.LocationUpdatingController(context.Background(), lur, ch); err != nil {
				t.Fatalf("LocationUpdatingController() error = %v", err)
			}
			assertSent(t, ch, "LocationUpdatingAccept", "ChannelRelease")
			if acc := sentMessage[*l3.LocationUpdatingAccept](t, ch, 0); acc.MobileID != nil {
				t.Errorf("accept should not carry a TMSI, got %s", acc.MobileID.String())
			}
			if len(ch.RecvTimeouts()) != 0 {
				t.Error("should not wait for reallocation complete")
			}
		})
	}
}

func TestLocationUpdatingRegistrarTimeout(t *testing.T) {
	cfg := newTestConfig()
	cfg.TimeoutHold = 30 * time.Millisecond
	e, d := newTestEngine(t, cfg)
	ch := channeltest.New("ch-1")
	lur := newLUR(l3.NewIMSIIdentity(testIMSI))

	expectFreshIMSI(d, lur)
	d.reg.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, errRegistrarTimeout)

	start := time.Now()
	if err := e.LocationUpdatingController(context.Background(), lur, ch); err != nil {
		t.Fatalf("LocationUpdatingController() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < cfg.TimeoutHold {
		t.Errorf("channel released after %v, want hold of at least %v", elapsed, cfg.TimeoutHold)
	}

	assertSent(t, ch, "LocationUpdatingReject", "ChannelRelease")
	if rej := sentMessage[*l3.LocationUpdatingReject](t, ch, 0); rej.Cause != 0x11 {
		t.Errorf("cause = 0x%02x, want 0x11", uint8(rej.Cause))
	}
	if ch.CountMTI(l3.PDMobilityManagement, l3.MTILocationUpdatingAccept) != 0 {
		t.Error("accept must not be sent on registrar timeout")
	}
}

func TestLocationUpdatingChallenge(t *testing.T) {
	rand := l3.RAND{Upper: 0x0011223344556677, Lower: 0x8899aabbccddeeff}

	t.Run("accepted with SRES", func(t *testing.T) {
		e, d := newTestEngine(t, newTestConfig())
		ch := channeltest.New("ch-1")
		ch.Push(&l3.AuthenticationResponse{SRES: 0x0000beef})
		lur := newLUR(l3.NewIMSIIdentity(testIMSI))

		expectKnownIMSI(d, lur)
		gomock.InOrder(
			d.reg.EXPECT().Register(gomock.Any(), &registrar.RegisterRequest{IMSI: testIMSI}).
				Return(&registrar.RegisterResult{Challenge: &rand}, nil),
			d.reg.EXPECT().Register(gomock.Any(), &registrar.RegisterRequest{
				IMSI: testIMSI,
				RAND: "00112233445566778899aabbccddeeff",
				SRES: "beef",
			}).Return(registered(true), nil),
		)

		if err := e.LocationUpdatingController(context.Background(), lur, ch); err != nil {
			t.Fatalf("LocationUpdatingController() error = %v", err)
		}
		assertSent(t, ch, "AuthenticationRequest", "LocationUpdatingAccept", "ChannelRelease")
		if req := sentMessage[*l3.AuthenticationRequest](t, ch, 0); req.RAND != rand {
			t.Errorf("RAND = %s, want %s", req.RAND.Hex(), rand.Hex())
		}
	})

	t.Run("second registration times out", func(t *testing.T) {
		e, d := newTestEngine(t, newTestConfig())
		ch := channeltest.New("ch-1")
		ch.Push(&l3.AuthenticationResponse{SRES: 1})
		lur := newLUR(l3.NewIMSIIdentity(testIMSI))

		expectKnownIMSI(d, lur)
		gomock.InOrder(
			d.reg.EXPECT().Register(gomock.Any(), gomock.Any()).
				Return(&registrar.RegisterResult{Challenge: &rand}, nil),
			d.reg.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, errRegistrarTimeout),
		)

		if err := e.LocationUpdatingController(context.Background(), lur, ch); err != nil {
			t.Fatalf("LocationUpdatingController() error = %v", err)
		}
		assertSent(t, ch, "AuthenticationRequest", "LocationUpdatingReject", "ChannelRelease")
		if rej := sentMessage[*l3.LocationUpdatingReject](t, ch, 1); rej.Cause != l3.CauseNetworkFailure {
			t.Errorf("cause = %s, want network failure", rej.Cause)
		}
	})

	t.Run("handset answers with wrong message", func(t *testing.T) {
		e, d := newTestEngine(t, newTestConfig())
		ch := channeltest.New("ch-1")
		ch.Push(&l3.IdentityResponse{MobileID: l3.NewIMSIIdentity(testIMSI)})
		lur := newLUR(l3.NewIMSIIdentity(testIMSI))

		expectKnownIMSI(d, lur)
		d.reg.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(&registrar.RegisterResult{Challenge: &rand}, nil)

		err := e.LocationUpdatingController(context.Background(), lur, ch)
		if !errors.Is(err, apperr.ErrUnexpectedMessage) {
			t.Fatalf("LocationUpdatingController() error = %v, want ErrUnexpectedMessage", err)
		}
		// 解放は呼び出し側が行う
		assertSent(t, ch, "AuthenticationRequest")
	})
}

func TestLocationUpdatingAuthFailureClosedRegistration(t *testing.T) {
	for _, success := range []bool{true, false} {
		name := "registration failed"
		if success {
			name = "registration succeeded"
		}
		t.Run(name, func(t *testing.T) {
			cfg := newTestConfig()
			cfg.OpenRegistration = false
			cfg.DefaultAuthAccept = false
			cfg.CachedAuth = false
			e, d := newTestEngine(t, cfg)
			ch := channeltest.New("ch-1")
			lur := newLUR(l3.NewIMSIIdentity(testIMSI))

			expectFreshIMSI(d, lur)
			d.reg.EXPECT().Register(gomock.Any(), gomock.Any()).Return(registered(success), nil)

			if err := e.LocationUpdatingController(context.Background(), lur, ch); err != nil {
				t.Fatalf("LocationUpdatingController() error = %v", err)
			}
			assertSent(t, ch, "AuthenticationReject", "ChannelRelease")
		})
	}
}

func TestLocationUpdatingRegistrationRejected(t *testing.T) {
	cfg := newTestConfig()
	cfg.UnprovisionedRejectCause = 0x03
	e, d := newTestEngine(t, cfg)
	ch := channeltest.New("ch-1")
	lur := newLUR(l3.NewIMSIIdentity(testIMSI))

	expectFreshIMSI(d, lur)
	d.reg.EXPECT().Register(gomock.Any(), gomock.Any()).Return(registered(false), nil)

	if err := e.LocationUpdatingController(context.Background(), lur, ch); err != nil {
		t.Fatalf("LocationUpdatingController() error = %v", err)
	}
	assertSent(t, ch, "LocationUpdatingReject", "ChannelRelease")
	if rej := sentMessage[*l3.LocationUpdatingReject](t, ch, 0); rej.Cause != 0x03 {
		t.Errorf("cause = 0x%02x, want 0x03", uint8(rej.Cause))
	}
}

func TestLocationUpdatingOpenRegistration(t *testing.T) {
	cfg := newTestConfig()
	cfg.OpenRegistration = true
	cfg.DefaultAuthAccept = false
	// オープン登録ではキャッシュ認証も行わない（AuthCache に EXPECT を設定しない）
	cfg.CachedAuth = true
	e, d := newTestEngine(t, cfg)
	ch := channeltest.New("ch-1")
	lur := newLUR(l3.NewIMSIIdentity(testIMSI))

	expectFreshIMSI(d, lur)
	d.reg.EXPECT().Register(gomock.Any(), gomock.Any()).Return(registered(false), nil)

	if err := e.LocationUpdatingController(context.Background(), lur, ch); err != nil {
		t.Fatalf("LocationUpdatingController() error = %v", err)
	}
	assertSent(t, ch, "LocationUpdatingAccept", "ChannelRelease")
}

func TestLocationUpdatingCachedAuth(t *testing.T) {
	t.Run("first use accepted", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.CachedAuth = true
		cfg.DefaultAuthAccept = false
		e, d := newTestEngine(t, cfg, WithRandom(fixedRandom(7, 8)))
		ch := channeltest.New("ch-1")
		ch.Push(&l3.AuthenticationResponse{SRES: 0x11223344})
		lur := newLUR(l3.NewIMSIIdentity(testIMSI))

		expectKnownIMSI(d, lur)
		d.reg.EXPECT().Register(gomock.Any(), gomock.Any()).Return(registered(true), nil)
		d.cache.EXPECT().Tokens(gomock.Any(), testIMSI).Return(nil, nil)
		d.cache.EXPECT().SaveTokens(gomock.Any(), testIMSI, gomock.Any()).Return(nil)

		if err := e.LocationUpdatingController(context.Background(), lur, ch); err != nil {
			t.Fatalf("LocationUpdatingController() error = %v", err)
		}
		assertSent(t, ch, "AuthenticationRequest", "LocationUpdatingAccept", "ChannelRelease")
	})

	t.Run("replay mismatch rejected", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.CachedAuth = true
		e, d := newTestEngine(t, cfg)
		ch := channeltest.New("ch-1")
		ch.Push(&l3.AuthenticationResponse{SRES: 0x11223344})
		lur := newLUR(l3.NewIMSIIdentity(testIMSI))

		expectKnownIMSI(d, lur)
		d.reg.EXPECT().Register(gomock.Any(), gomock.Any()).Return(registered(true), nil)
		d.cache.EXPECT().Tokens(gomock.Any(), testIMSI).Return(cachedTokens, nil)

		if err := e.LocationUpdatingController(context.Background(), lur, ch); err != nil {
			t.Fatalf("LocationUpdatingController() error = %v", err)
		}
		assertSent(t, ch, "AuthenticationRequest", "AuthenticationReject", "ChannelRelease")
	})

	t.Run("cache unavailable", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.CachedAuth = true
		e, d := newTestEngine(t, cfg)
		ch := channeltest.New("ch-1")
		lur := newLUR(l3.NewIMSIIdentity(testIMSI))

		expectKnownIMSI(d, lur)
		d.reg.EXPECT().Register(gomock.Any(), gomock.Any()).Return(registered(true), nil)
		d.cache.EXPECT().Tokens(gomock.Any(), testIMSI).
			Return(nil, apperr.NewValkeyError("HGETALL", "auth:"+testIMSI, errors.New("refused")))

		if err := e.LocationUpdatingController(context.Background(), lur, ch); err != nil {
			t.Fatalf("LocationUpdatingController() error = %v", err)
		}
		assertSent(t, ch, "LocationUpdatingReject", "ChannelRelease")
	})
}

func TestLocationUpdatingFirstAttachQueries(t *testing.T) {
	cfg := newTestConfig()
	cfg.QueryIMEI = true
	cfg.QueryClassmark = true
	cfg.NetworkShortName = "OpenBTS"
	e, d := newTestEngine(t, cfg)
	ch := channeltest.New("ch-1")
	cm2 := l3.MobileStationClassmark2{0x33, 0x58, 0x19}
	ch.Push(&l3.IdentityResponse{MobileID: l3.NewIMEIIdentity(testIMEI)})
	ch.Push(&l3.ClassmarkChange{Classmark: cm2})
	lur := newLUR(l3.NewIMSIIdentity(testIMSI))

	expectFreshIMSI(d, lur)
	d.reg.EXPECT().Register(gomock.Any(), gomock.Any()).Return(registered(true), nil)
	d.subs.EXPECT().SetIMEI(gomock.Any(), testIMSI, testIMEI).Return(nil)
	// 記録の失敗は手順を止めない
	d.subs.EXPECT().SetClassmark(gomock.Any(), testIMSI, cm2).Return(errors.New("valkey down"))

	if err := e.LocationUpdatingController(context.Background(), lur, ch); err != nil {
		t.Fatalf("LocationUpdatingController() error = %v", err)
	}
	assertSent(t, ch, "IdentityRequest", "ClassmarkEnquiry", "MMInformation", "LocationUpdatingAccept", "ChannelRelease")
	if req := sentMessage[*l3.IdentityRequest](t, ch, 0); req.Type != l3.IMEIType {
		t.Errorf("requested identity = %s, want IMEI", req.Type)
	}
	info := sentMessage[*l3.MMInformation](t, ch, 2)
	if info.ShortName == nil || info.ShortName.Name != "OpenBTS" {
		t.Errorf("short name = %v, want OpenBTS", info.ShortName)
	}
}

func TestLocationUpdatingMultibyteShortName(t *testing.T) {
	cfg := newTestConfig()
	cfg.NetworkShortName = "Café"
	e, d := newTestEngine(t, cfg)
	ch := channeltest.New("ch-1")
	lur := newLUR(l3.NewIMSIIdentity(testIMSI))

	expectFreshIMSI(d, lur)
	d.reg.EXPECT().Register(gomock.Any(), gomock.Any()).Return(registered(true), nil)

	if err := e.LocationUpdatingController(context.Background(), lur, ch); err != nil {
		t.Fatalf("LocationUpdatingController() error = %v", err)
	}
	assertSent(t, ch, "MMInformation", "LocationUpdatingAccept", "ChannelRelease")
	info := sentMessage[*l3.MMInformation](t, ch, 0)
	if info.ShortName == nil || info.ShortName.Name != "Café" {
		t.Errorf("short name = %v, want Café", info.ShortName)
	}
}

func TestLocationUpdatingQueriesSkippedWhenTMSIKnown(t *testing.T) {
	cfg := newTestConfig()
	cfg.QueryIMEI = true
	cfg.QueryClassmark = true
	cfg.NetworkShortName = "OpenBTS"
	e, d := newTestEngine(t, cfg)
	ch := channeltest.New("ch-1")
	lur := newLUR(l3.NewIMSIIdentity(testIMSI))

	expectKnownIMSI(d, lur)
	d.reg.EXPECT().Register(gomock.Any(), gomock.Any()).Return(registered(true), nil)

	if err := e.LocationUpdatingController(context.Background(), lur, ch); err != nil {
		t.Fatalf("LocationUpdatingController() error = %v", err)
	}
	assertSent(t, ch, "LocationUpdatingAccept", "ChannelRelease")
}

func TestLocationUpdatingIMEIQueryFault(t *testing.T) {
	cfg := newTestConfig()
	cfg.QueryIMEI = true
	e, d := newTestEngine(t, cfg)
	ch := channeltest.New("ch-1")
	ch.PushTimeout()
	lur := newLUR(l3.NewIMSIIdentity(testIMSI))

	expectFreshIMSI(d, lur)
	d.reg.EXPECT().Register(gomock.Any(), gomock.Any()).Return(registered(true), nil)

	err := e.LocationUpdatingController(context.Background(), lur, ch)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	assertSent(t, ch, "IdentityRequest")
}

func TestLocationUpdatingStoreUnavailable(t *testing.T) {
	valkeyDown := apperr.NewValkeyError("INCR", "tmsi:seq", errors.New("refused"))

	tests := []struct {
		name  string
		setup func(d *testDeps, lur *l3.LocationUpdatingRequest)
	}{
		{
			name: "TMSI lookup",
			setup: func(d *testDeps, _ *l3.LocationUpdatingRequest) {
				d.subs.EXPECT().TMSI(gomock.Any(), testIMSI).Return(uint32(0), false, valkeyDown)
			},
		},
		{
			name: "TMSI assignment",
			setup: func(d *testDeps, lur *l3.LocationUpdatingRequest) {
				d.subs.EXPECT().TMSI(gomock.Any(), testIMSI).Return(uint32(0), false, nil)
				d.subs.EXPECT().AssignTMSI(gomock.Any(), testIMSI, lur).Return(uint32(0), valkeyDown)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, d := newTestEngine(t, newTestConfig())
			ch := channeltest.New("ch-1")
			lur := newLUR(l3.NewIMSIIdentity(testIMSI))
			tt.setup(d, lur)

			if err := e.LocationUpdatingController(context.Background(), lur, ch); err != nil {
				t.Fatalf("LocationUpdatingController() error = %v", err)
			}
			assertSent(t, ch, "LocationUpdatingReject", "ChannelRelease")
			if rej := sentMessage[*l3.LocationUpdatingReject](t, ch, 0); rej.Cause != l3.CauseNetworkFailure {
				t.Errorf("cause = %s, want network failure", rej.Cause)
			}
		})
	}
}

func TestLocationUpdatingResolvesTMSI(t *testing.T) {
	cfg := newTestConfig()
	cfg.SendTMSIs = true
	e, d := newTestEngine(t, cfg)
	ch := channeltest.New("ch-1")
	lur := newLUR(l3.NewTMSIIdentity(testTMSI))

	d.subs.EXPECT().IMSI(gomock.Any(), testTMSI).Return(testIMSI, nil)
	d.subs.EXPECT().AssignTMSI(gomock.Any(), testIMSI, lur).Return(testNewTMSI, nil)
	d.reg.EXPECT().Register(gomock.Any(), &registrar.RegisterRequest{IMSI: testIMSI}).Return(registered(true), nil)

	if err := e.LocationUpdatingController(context.Background(), lur, ch); err != nil {
		t.Fatalf("LocationUpdatingController() error = %v", err)
	}
	// 既存TMSIがあるため再割当しない
	assertSent(t, ch, "LocationUpdatingAccept", "ChannelRelease")
	if lur.MobileID.Type != l3.TMSIType {
		t.Error("request message must not be modified")
	}
}

func TestLocationUpdatingRecordsOutcome(t *testing.T) {
	tests := []struct {
		name    string
		cfg     func(c *config.Config)
		result  *registrar.RegisterResult
		err     error
		outcome string
	}{
		{"accept", func(*config.Config) {}, registered(true), nil, metrics.OutcomeAccept},
		{"reject", func(*config.Config) {}, registered(false), nil, metrics.OutcomeReject},
		{"network failure", func(*config.Config) {}, nil, errRegistrarTimeout, metrics.OutcomeNetworkFail},
		{"auth reject", func(c *config.Config) { c.DefaultAuthAccept = false }, registered(true), nil, metrics.OutcomeAuthReject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			rec := mocks.NewMockRecorder(ctrl)
			cfg := newTestConfig()
			tt.cfg(cfg)
			e, d := newTestEngine(t, cfg, WithRecorder(rec))
			lur := newLUR(l3.NewIMSIIdentity(testIMSI))

			expectFreshIMSI(d, lur)
			d.reg.EXPECT().Register(gomock.Any(), gomock.Any()).Return(tt.result, tt.err)
			rec.EXPECT().Procedure(ProcedureLocationUpdating, tt.outcome)
			rec.EXPECT().ObserveDuration(ProcedureLocationUpdating, gomock.Any())

			if err := e.LocationUpdatingController(context.Background(), lur, channeltest.New("ch-1")); err != nil {
				t.Fatalf("LocationUpdatingController() error = %v", err)
			}
		})
	}
}

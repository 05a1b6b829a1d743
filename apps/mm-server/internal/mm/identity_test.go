package mm

import (
	"context"
	"errors"
	"testing"

	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/channel"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/channel/channeltest"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/apperr"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
	"go.uber.org/mock/gomock"
)

func TestResolveIMSI(t *testing.T) {
	tests := []struct {
		name     string
		sameLAI  bool
		id       l3.MobileIdentity
		setup    func(d *testDeps, ch *channeltest.Channel)
		wantTMSI uint32
		wantSent []string
	}{
		{
			name:    "IMSI with TMSI on record",
			sameLAI: true,
			id:      l3.NewIMSIIdentity(testIMSI),
			setup: func(d *testDeps, _ *channeltest.Channel) {
				d.subs.EXPECT().TMSI(gomock.Any(), testIMSI).Return(testTMSI, true, nil)
			},
			wantTMSI: testTMSI,
		},
		{
			name:    "IMSI without TMSI",
			sameLAI: false,
			id:      l3.NewIMSIIdentity(testIMSI),
			setup: func(d *testDeps, _ *channeltest.Channel) {
				d.subs.EXPECT().TMSI(gomock.Any(), testIMSI).Return(uint32(0), false, nil)
			},
			wantTMSI: 0,
		},
		{
			name:    "known TMSI in same LAI",
			sameLAI: true,
			id:      l3.NewTMSIIdentity(testTMSI),
			setup: func(d *testDeps, _ *channeltest.Channel) {
				d.subs.EXPECT().IMSI(gomock.Any(), testTMSI).Return(testIMSI, nil)
			},
			wantTMSI: testTMSI,
		},
		{
			name:    "unknown TMSI in same LAI",
			sameLAI: true,
			id:      l3.NewTMSIIdentity(testTMSI),
			setup: func(d *testDeps, ch *channeltest.Channel) {
				d.subs.EXPECT().IMSI(gomock.Any(), testTMSI).Return("", nil)
				d.subs.EXPECT().TMSI(gomock.Any(), testIMSI).Return(uint32(0), false, nil)
				ch.Push(&l3.IdentityResponse{MobileID: l3.NewIMSIIdentity(testIMSI)})
			},
			wantTMSI: 0,
			wantSent: []string{"IdentityRequest"},
		},
		{
			name:    "TMSI from foreign LAI",
			sameLAI: false,
			id:      l3.NewTMSIIdentity(testTMSI),
			setup: func(d *testDeps, ch *channeltest.Channel) {
				d.subs.EXPECT().TMSI(gomock.Any(), testIMSI).Return(testTMSI, true, nil)
				ch.Push(&l3.IdentityResponse{MobileID: l3.NewIMSIIdentity(testIMSI)})
			},
			wantTMSI: testTMSI,
			wantSent: []string{"IdentityRequest"},
		},
		{
			name:    "no identity",
			sameLAI: true,
			id:      l3.MobileIdentity{Type: l3.NoIdentity},
			setup: func(d *testDeps, ch *channeltest.Channel) {
				d.subs.EXPECT().TMSI(gomock.Any(), testIMSI).Return(uint32(0), false, nil)
				ch.Push(&l3.IdentityResponse{MobileID: l3.NewIMSIIdentity(testIMSI)})
			},
			wantTMSI: 0,
			wantSent: []string{"IdentityRequest"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, d := newTestEngine(t, newTestConfig())
			ch := channeltest.New("ch-1")
			tt.setup(d, ch)

			id := tt.id
			got, err := e.resolveIMSI(context.Background(), tt.sameLAI, &id, ch)
			if err != nil {
				t.Fatalf("resolveIMSI() error = %v", err)
			}
			if got != tt.wantTMSI {
				t.Errorf("tmsi = %08x, want %08x", got, tt.wantTMSI)
			}
			if id.Type != l3.IMSIType || id.Digits != testIMSI {
				t.Errorf("identity = %s, want IMSI %s", id.String(), testIMSI)
			}
			assertSent(t, ch, tt.wantSent...)
			if len(tt.wantSent) > 0 {
				req := sentMessage[*l3.IdentityRequest](t, ch, 0)
				if req.Type != l3.IMSIType {
					t.Errorf("requested identity = %s, want IMSI", req.Type)
				}
			}
		})
	}
}

func TestResolveIMSIFaults(t *testing.T) {
	tests := []struct {
		name    string
		id      l3.MobileIdentity
		setup   func(ch *channeltest.Channel)
		wantErr error
	}{
		{
			name:    "IMEI identity",
			id:      l3.NewIMEIIdentity(testIMEI),
			setup:   func(*channeltest.Channel) {},
			wantErr: apperr.ErrUnexpectedIdentity,
		},
		{
			name: "identity response carries TMSI",
			id:   l3.MobileIdentity{Type: l3.NoIdentity},
			setup: func(ch *channeltest.Channel) {
				ch.Push(&l3.IdentityResponse{MobileID: l3.NewTMSIIdentity(testTMSI)})
			},
			wantErr: apperr.ErrUnexpectedIdentity,
		},
		{
			name: "wrong message",
			id:   l3.MobileIdentity{Type: l3.NoIdentity},
			setup: func(ch *channeltest.Channel) {
				ch.Push(&l3.AuthenticationResponse{SRES: 1})
			},
			wantErr: apperr.ErrUnexpectedMessage,
		},
		{
			name: "unparsable frame",
			id:   l3.MobileIdentity{Type: l3.NoIdentity},
			setup: func(ch *channeltest.Channel) {
				ch.PushFrame(l3.NewFrameFromBytes(l3.PrimitiveData, []byte{0x05, 0x7f}))
			},
			wantErr: apperr.ErrUnexpectedMessage,
		},
		{
			name: "release primitive",
			id:   l3.MobileIdentity{Type: l3.NoIdentity},
			setup: func(ch *channeltest.Channel) {
				ch.PushFrame(l3.NewFrame(l3.PrimitiveRelease, 0))
			},
			wantErr: apperr.ErrUnexpectedPrimitive,
		},
		{
			name:    "no response",
			id:      l3.MobileIdentity{Type: l3.NoIdentity},
			setup:   func(ch *channeltest.Channel) { ch.PushTimeout() },
			wantErr: channel.ErrTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t, newTestConfig())
			ch := channeltest.New("ch-1")
			tt.setup(ch)

			id := tt.id
			_, err := e.resolveIMSI(context.Background(), true, &id, ch)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("resolveIMSI() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveIMSIUsesReceiveTimeout(t *testing.T) {
	cfg := newTestConfig()
	e, d := newTestEngine(t, cfg)
	ch := channeltest.New("ch-1")
	ch.Push(&l3.IdentityResponse{MobileID: l3.NewIMSIIdentity(testIMSI)})
	d.subs.EXPECT().TMSI(gomock.Any(), testIMSI).Return(uint32(0), false, nil)

	id := l3.MobileIdentity{Type: l3.NoIdentity}
	if _, err := e.resolveIMSI(context.Background(), true, &id, ch); err != nil {
		t.Fatalf("resolveIMSI() error = %v", err)
	}
	timeouts := ch.RecvTimeouts()
	if len(timeouts) != 1 || timeouts[0] != cfg.ChannelRecvTimeout {
		t.Errorf("recv timeouts = %v, want [%v]", timeouts, cfg.ChannelRecvTimeout)
	}
}

// Package sinks holds the Engine output sinks: Art-Net UDP transmission and
// the websocket state broadcaster.
package sinks

import (
	"net"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"panelfx/internal/grid"
	"panelfx/pkg/artnet"
)

// ArtNetConfig configures one ArtNetSink.
type ArtNetConfig struct {
	Enabled          bool
	Host             string
	Port             int
	Net              int
	Subnet           int
	Universe         int
	StartChannel     int
	ChannelsPerPanel int
	RefreshRate      float64
}

// DefaultArtNetConfig returns the default Art-Net broadcast settings.
func DefaultArtNetConfig() ArtNetConfig {
	return ArtNetConfig{
		Enabled:          true,
		Host:             "255.255.255.255",
		Port:             artnet.DefaultPort,
		Net:              0,
		Subnet:           0,
		Universe:         0,
		StartChannel:     1,
		ChannelsPerPanel: 5,
		RefreshRate:      44,
	}
}

// ArtNetSink renders grid state onto the wire as Art-Net ArtDMX packets,
// throttled to cfg.RefreshRate.
type ArtNetSink struct {
	mu       sync.Mutex
	cfg      ArtNetConfig
	conn     *net.UDPConn
	limiter  *rate.Limiter
	sequence byte
	log      *logrus.Entry
}

// NewArtNetSink dials the configured host:port (or leaves the sink disabled
// if cfg.Enabled is false) and returns a ready-to-render sink.
func NewArtNetSink(cfg ArtNetConfig, log *logrus.Entry) (*ArtNetSink, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	s := &ArtNetSink{cfg: cfg, log: log}
	if cfg.RefreshRate <= 0 {
		cfg.RefreshRate = 44
	}
	s.limiter = rate.NewLimiter(rate.Limit(cfg.RefreshRate), 1)

	if !cfg.Enabled {
		return s, nil
	}
	if err := s.dial(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ArtNetSink) dial(cfg ArtNetConfig) error {
	addr, err := net.ResolveUDPAddr("udp4", net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)))
	if err != nil {
		return err
	}
	conn, err := net.DialUDP("udp4", nil, addr)
	if err != nil {
		return err
	}
	s.conn = conn
	return nil
}

// ReloadBroadcastAddress re-dials the UDP socket at a new host, keeping
// every other setting unchanged. Used by the setArtNetBroadcast command.
func (s *ArtNetSink) ReloadBroadcastAddress(host string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
	s.cfg.Host = host
	if !s.cfg.Enabled {
		return nil
	}
	return s.dial(s.cfg)
}

// Render builds one ArtDMX frame from states and sends it, subject to the
// configured refresh-rate throttle. Send errors are logged and swallowed:
// a bad UDP write must never interrupt the tick loop.
func (s *ArtNetSink) Render(states []grid.PanelState, _ grid.TopologyMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cfg.Enabled || s.conn == nil {
		return nil
	}
	if !s.limiter.Allow() {
		return nil
	}

	channels := make([]byte, artnet.DMXDataLength)
	for i, st := range states {
		base := s.cfg.StartChannel - 1 + i*s.cfg.ChannelsPerPanel
		if base+s.cfg.ChannelsPerPanel > int(artnet.DMXDataLength) {
			continue
		}
		channels[base+0] = channelByte(st.Color.R, st.Brightness)
		channels[base+1] = channelByte(st.Color.G, st.Brightness)
		channels[base+2] = channelByte(st.Color.B, st.Brightness)
		channels[base+3] = channelByte(st.Color.Cool, st.Brightness)
		channels[base+4] = channelByte(st.Color.Warm, st.Brightness)
	}

	packet := artnet.BuildDMXPacket(s.cfg.Net, s.cfg.Subnet, s.cfg.Universe, channels, s.sequence)
	s.sequence++

	if _, err := s.conn.Write(packet); err != nil {
		s.log.WithError(err).Warn("artnet send failed")
	}
	return nil
}

func channelByte(v int, brightness float64) byte {
	scaled := float64(v) * brightness
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return byte(scaled + 0.5)
}

// Close sends one final zeroed (blackout) packet, then closes the socket.
func (s *ArtNetSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	blank := make([]byte, artnet.DMXDataLength)
	packet := artnet.BuildDMXPacket(s.cfg.Net, s.cfg.Subnet, s.cfg.Universe, blank, s.sequence)
	_, _ = s.conn.Write(packet)

	err := s.conn.Close()
	s.conn = nil
	return err
}

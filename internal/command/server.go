package command

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"panelfx/internal/apperr"
	"panelfx/internal/colormanager"
	"panelfx/internal/effects"
	"panelfx/internal/engine"
	"panelfx/internal/grid"
	"panelfx/internal/presets"
	"panelfx/internal/settings"
	"panelfx/internal/sinks"
)

// ConfigSnapshot is the active configuration the server reports in the
// connected event: enough for a client to render the topology and know
// what's running, without exposing internal wiring.
type ConfigSnapshot struct {
	TargetFPS     int               `json:"targetFPS"`
	Columns       int               `json:"columns"`
	RowsPerColumn int               `json:"rowsPerColumn"`
	Topology      grid.TopologyMode `json:"topology"`
}

// EngineStateSnapshot mirrors the engine's current activity.
type EngineStateSnapshot struct {
	Running       bool          `json:"running"`
	CurrentEffect *effects.Name `json:"currentEffect"`
	FPS           float64       `json:"fps"`
}

// ArtNetReloader is the narrow surface Server needs from the Art-Net sink
// to service setArtNetBroadcast.
type ArtNetReloader interface {
	ReloadBroadcastAddress(host string) error
}

// Server is the websocket command/event endpoint: it dispatches inbound
// commands against the engine/grid/color manager/preset store, and
// implements engine.Sink to broadcast stateUpdate every tick.
type Server struct {
	eng      *engine.Engine
	g        *grid.Grid
	colors   *colormanager.Manager
	store    *presets.Store
	settings *settings.Store
	artnet   ArtNetReloader
	bc       *sinks.Broadcaster
	upgrader websocket.Upgrader
	log      *logrus.Entry
}

// New constructs a Server. allowedOrigins empty means allow any origin.
func New(eng *engine.Engine, store *presets.Store, settingsStore *settings.Store, artnet ArtNetReloader, allowedOrigins []string, log *logrus.Entry) *Server {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	s := &Server{
		eng:      eng,
		g:        eng.Grid(),
		colors:   eng.Colors(),
		store:    store,
		settings: settingsStore,
		artnet:   artnet,
		bc:       sinks.NewBroadcaster(4),
		log:      log,
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, o := range allowedOrigins {
				if o == origin {
					return true
				}
			}
			return false
		},
	}
	return s
}

// Render implements engine.Sink: broadcasts a stateUpdate to every
// subscriber on each tick.
func (s *Server) Render(states []grid.PanelState, _ grid.TopologyMode) error {
	name, active := s.eng.ActiveEffectName()
	var namePtr *effects.Name
	if active {
		namePtr = &name
	}
	s.bc.Broadcast(OutboundMessage{
		Type: OutboundStateUpdate,
		Payload: StateUpdatePayload{
			Panels:        panelStatesToWire(states),
			CurrentEffect: namePtr,
			Timestamp:     time.Now().UnixMilli(),
		},
	})
	return nil
}

// ServeHTTP upgrades the connection and runs its reader/writer loop until
// it disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	sub := s.bc.Subscribe()
	defer s.bc.Unsubscribe(sub.ID)

	done := make(chan struct{})
	go s.writeLoop(conn, sub, done)

	s.sendConnected(sub.ID)
	s.readLoop(conn, sub.ID)
	close(done)
}

func (s *Server) writeLoop(conn *websocket.Conn, sub *sinks.Subscription, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case msg, ok := <-sub.Channel:
			if !ok {
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}
}

func (s *Server) readLoop(conn *websocket.Conn, subID string) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var in InboundMessage
		if err := json.Unmarshal(data, &in); err != nil {
			s.bc.Send(subID, OutboundMessage{
				Type:    OutboundError,
				Payload: ErrorPayload{Code: string(apperr.CodeInvalidCommand), Message: "malformed message"},
			})
			continue
		}
		s.dispatch(subID, in)
	}
}

func (s *Server) sendConnected(subID string) {
	name, active := s.eng.ActiveEffectName()
	var namePtr *effects.Name
	if active {
		namePtr = &name
	}
	s.bc.Send(subID, OutboundMessage{
		Type: OutboundConnected,
		Payload: struct {
			Config      ConfigSnapshot      `json:"config"`
			EngineState EngineStateSnapshot `json:"engineState"`
		}{
			Config: ConfigSnapshot{
				TargetFPS:     s.eng.TargetFPS(),
				Columns:       s.g.Columns(),
				RowsPerColumn: s.g.RowsPerColumn(),
				Topology:      s.g.Mode(),
			},
			EngineState: EngineStateSnapshot{
				Running:       s.eng.IsRunning(),
				CurrentEffect: namePtr,
				FPS:           s.eng.CurrentFPS(),
			},
		},
	})
}

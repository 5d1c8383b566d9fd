// Package command implements the websocket command/event protocol:
// inbound JSON commands mutate the engine/grid/color manager/preset store,
// and every tick broadcasts a stateUpdate event to all connected
// subscribers.
package command

import (
	"encoding/json"

	"panelfx/internal/effects"
	"panelfx/internal/grid"
)

// InboundType enumerates the wire types a connection may send.
type InboundType string

const (
	InboundRunEffect     InboundType = "runEffect"
	InboundStopEffect    InboundType = "stopEffect"
	InboundSetTopology   InboundType = "setTopology"
	InboundAddPreset     InboundType = "addPreset"
	InboundSavePreset    InboundType = "savePreset"
	InboundUpdatePreset  InboundType = "updatePreset"
	InboundDeletePreset  InboundType = "deletePreset"
	InboundListPresets   InboundType = "listPresets"
	InboundSetArtNetAddr InboundType = "setArtNetBroadcast"
)

// OutboundType enumerates the wire types the server may send.
type OutboundType string

const (
	OutboundConnected      OutboundType = "connected"
	OutboundStateUpdate    OutboundType = "stateUpdate"
	OutboundError          OutboundType = "error"
	OutboundPresetSaved    OutboundType = "presetSaved"
	OutboundPresetUpdated  OutboundType = "presetUpdated"
	OutboundPresetDeleted  OutboundType = "presetDeleted"
	OutboundPresetsList    OutboundType = "presetsList"
)

// InboundMessage is the wire shape of every message a connection sends.
type InboundMessage struct {
	Type    InboundType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// OutboundMessage is the wire shape of every message the server sends.
type OutboundMessage struct {
	Type    OutboundType `json:"type"`
	Payload interface{}  `json:"payload,omitempty"`
}

// RunEffectPayload is the payload of an inbound runEffect message: either
// EffectName+Params, or a PresetID referencing a stored preset.
type RunEffectPayload struct {
	EffectName effects.Name   `json:"effectName,omitempty"`
	Params     effects.Params `json:"params,omitempty"`
	PresetID   string         `json:"presetId,omitempty"`
}

// SetTopologyPayload is the payload of an inbound setTopology message.
type SetTopologyPayload struct {
	Mode grid.TopologyMode `json:"mode"`
}

// SetArtNetBroadcastPayload is the payload of an inbound setArtNetBroadcast
// message, per the enrichment wiring ArtNetSink.ReloadBroadcastAddress to
// the persisted setting.
type SetArtNetBroadcastPayload struct {
	Host string `json:"host"`
}

// PresetPayload is the payload shared by savePreset and updatePreset.
type PresetPayload struct {
	ID       string            `json:"id,omitempty"`
	Name     string            `json:"name,omitempty"`
	Effect   effects.Name      `json:"effect,omitempty"`
	Topology grid.TopologyMode `json:"topology,omitempty"`
	Params   effects.Params    `json:"params,omitempty"`
}

// IDPayload is the payload of an inbound deletePreset message.
type IDPayload struct {
	ID string `json:"id"`
}

// PanelStateWire is the wire shape of one panel's state inside a
// stateUpdate event.
type PanelStateWire struct {
	Color     ColorWire `json:"color"`
	Brightness float64  `json:"brightness"`
	Timestamp  int64    `json:"timestamp"`
}

// ColorWire is the wire shape of an RGBCCT color.
type ColorWire struct {
	R    int `json:"r"`
	G    int `json:"g"`
	B    int `json:"b"`
	Cool int `json:"cool"`
	Warm int `json:"warm"`
}

// StateUpdatePayload is the payload of an outbound stateUpdate event.
type StateUpdatePayload struct {
	Panels        []PanelStateWire `json:"panels"`
	CurrentEffect *effects.Name    `json:"currentEffect"`
	Timestamp     int64            `json:"timestamp"`
}

// ErrorPayload is the payload of an outbound error event.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func panelStatesToWire(states []grid.PanelState) []PanelStateWire {
	out := make([]PanelStateWire, len(states))
	for i, s := range states {
		out[i] = PanelStateWire{
			Color: ColorWire{
				R: s.Color.R, G: s.Color.G, B: s.Color.B, Cool: s.Color.Cool, Warm: s.Color.Warm,
			},
			Brightness: s.Brightness,
			Timestamp:  s.Timestamp,
		}
	}
	return out
}

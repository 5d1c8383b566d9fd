package command

import (
	"context"
	"encoding/json"

	"panelfx/internal/apperr"
	"panelfx/internal/colormanager"
	"panelfx/internal/effects"
	"panelfx/internal/presets"
	"panelfx/internal/settings"
)

func (s *Server) dispatch(subID string, in InboundMessage) {
	var err error
	switch in.Type {
	case InboundRunEffect:
		err = s.handleRunEffect(in.Payload)
	case InboundStopEffect:
		s.eng.StopCurrentEffect()
	case InboundSetTopology:
		err = s.handleSetTopology(in.Payload)
	case InboundAddPreset:
		err = s.handleAddPreset(in.Payload)
	case InboundSavePreset:
		err = s.handleSavePreset(subID, in.Payload)
	case InboundUpdatePreset:
		err = s.handleUpdatePreset(subID, in.Payload)
	case InboundDeletePreset:
		err = s.handleDeletePreset(subID, in.Payload)
	case InboundListPresets:
		s.handleListPresets(subID)
	case InboundSetArtNetAddr:
		err = s.handleSetArtNetBroadcast(in.Payload)
	default:
		err = apperr.New(apperr.CodeInvalidCommand, "unknown message type %q", in.Type)
	}

	if err != nil {
		s.bc.Send(subID, OutboundMessage{
			Type:    OutboundError,
			Payload: ErrorPayload{Code: string(apperr.CodeOf(err)), Message: err.Error()},
		})
	}
}

func newEffect(name effects.Name) (effects.Effect, error) {
	switch name {
	case effects.NameSolid:
		return effects.NewSolid(), nil
	case effects.NameSequentialFade:
		return effects.NewSequentialFade(), nil
	case effects.NameFlow:
		return effects.NewFlow(), nil
	case effects.NameStrobe:
		return effects.NewStrobe(), nil
	case effects.NameBlackout:
		return effects.NewBlackout(), nil
	case effects.NameStatic:
		return effects.NewStatic(), nil
	default:
		return nil, apperr.New(apperr.CodeNotFound, "unknown effect %q", name)
	}
}

func (s *Server) handleRunEffect(raw json.RawMessage) error {
	var payload RunEffectPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return apperr.New(apperr.CodeInvalidParam, "invalid runEffect payload: %v", err)
	}

	effectName := payload.EffectName
	params := payload.Params

	if payload.PresetID != "" {
		preset, ok := s.store.Get(payload.PresetID)
		if !ok {
			return apperr.New(apperr.CodeNotFound, "preset %q not found", payload.PresetID)
		}
		effectName = preset.Effect
		params = preset.Params
		s.g.SetMode(preset.Topology)
	}

	eff, err := newEffect(effectName)
	if err != nil {
		return err
	}
	s.eng.RunEffect(eff, params)
	return nil
}

func (s *Server) handleSetTopology(raw json.RawMessage) error {
	var payload SetTopologyPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return apperr.New(apperr.CodeInvalidParam, "invalid setTopology payload: %v", err)
	}
	s.g.SetMode(payload.Mode)
	return nil
}

func (s *Server) handleAddPreset(raw json.RawMessage) error {
	var payload struct {
		Name   string              `json:"name"`
		Preset colormanager.Preset `json:"preset"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return apperr.New(apperr.CodeInvalidParam, "invalid addPreset payload: %v", err)
	}
	if payload.Name == "" {
		return apperr.New(apperr.CodeInvalidParam, "addPreset requires a name")
	}
	s.colors.AddPreset(payload.Name, payload.Preset)
	return nil
}

func (s *Server) handleSavePreset(subID string, raw json.RawMessage) error {
	var payload PresetPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return apperr.New(apperr.CodeInvalidParam, "invalid savePreset payload: %v", err)
	}
	saved, err := s.store.Create(presets.EffectPreset{
		ID: payload.ID, Name: payload.Name, Effect: payload.Effect,
		Topology: payload.Topology, Params: payload.Params,
	})
	if err != nil {
		return err
	}
	s.bc.Send(subID, OutboundMessage{Type: OutboundPresetSaved, Payload: saved})
	return nil
}

func (s *Server) handleUpdatePreset(subID string, raw json.RawMessage) error {
	var payload PresetPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return apperr.New(apperr.CodeInvalidParam, "invalid updatePreset payload: %v", err)
	}
	if payload.ID == "" {
		return apperr.New(apperr.CodeInvalidParam, "updatePreset requires an id")
	}
	updated, err := s.store.Update(payload.ID, presets.EffectPreset{
		Name: payload.Name, Effect: payload.Effect, Topology: payload.Topology, Params: payload.Params,
	})
	if err != nil {
		return err
	}
	s.bc.Send(subID, OutboundMessage{Type: OutboundPresetUpdated, Payload: updated})
	return nil
}

func (s *Server) handleDeletePreset(subID string, raw json.RawMessage) error {
	var payload IDPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return apperr.New(apperr.CodeInvalidParam, "invalid deletePreset payload: %v", err)
	}
	if err := s.store.Delete(payload.ID); err != nil {
		return err
	}
	s.bc.Send(subID, OutboundMessage{Type: OutboundPresetDeleted, Payload: IDPayload{ID: payload.ID}})
	return nil
}

func (s *Server) handleListPresets(subID string) {
	s.bc.Send(subID, OutboundMessage{Type: OutboundPresetsList, Payload: s.store.GetAll()})
}

func (s *Server) handleSetArtNetBroadcast(raw json.RawMessage) error {
	var payload SetArtNetBroadcastPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return apperr.New(apperr.CodeInvalidParam, "invalid setArtNetBroadcast payload: %v", err)
	}
	if payload.Host == "" {
		return apperr.New(apperr.CodeInvalidParam, "setArtNetBroadcast requires a host")
	}
	if s.artnet != nil {
		if err := s.artnet.ReloadBroadcastAddress(payload.Host); err != nil {
			return apperr.New(apperr.CodeIO, "reload art-net broadcast address: %v", err)
		}
	}
	if s.settings != nil {
		if err := s.settings.Set(context.Background(), settings.KeyArtNetBroadcastAddress, payload.Host); err != nil {
			return apperr.New(apperr.CodeIO, "persist art-net broadcast address: %v", err)
		}
	}
	return nil
}

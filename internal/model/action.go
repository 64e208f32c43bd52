package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ActionType discriminates the payload carried by an Action.
type ActionType string

const (
	ActionAnnoter         ActionType = "annoter"
	ActionTransmettre     ActionType = "transmettre"
	ActionValider         ActionType = "valider"
	ActionJoindreDocument ActionType = "joindre_document"
	ActionRejeter         ActionType = "rejeter"
	ActionRepondre        ActionType = "répondre"
	ActionCloturer        ActionType = "cloturer"
	ActionArchiver        ActionType = "archiver"
)

// ActionTypes lists every known action type in declaration order.
var ActionTypes = []ActionType{
	ActionAnnoter,
	ActionTransmettre,
	ActionValider,
	ActionJoindreDocument,
	ActionRejeter,
	ActionRepondre,
	ActionCloturer,
	ActionArchiver,
}

// Known reports whether t belongs to the closed set of action types.
func (t ActionType) Known() bool {
	for _, k := range ActionTypes {
		if k == t {
			return true
		}
	}
	return false
}

// ActionData is the sealed union of action payloads. Only types in this
// package implement it; each reports the ActionType it belongs to.
type ActionData interface {
	ActionType() ActionType
	sealed()
}

// Target is one recipient of a transmission.
type Target struct {
	Entity string `json:"entity" validate:"required"`
	User   string `json:"user" validate:"required"`
}

type AnnotateData struct {
	Note string `json:"note" validate:"required"`
}

type TransmitData struct {
	Targets []Target `json:"targets" validate:"required,min=1,dive"`
	Message string   `json:"message,omitempty"`
}

type ValidateData struct {
	Comment string `json:"comment,omitempty"`
}

type AttachDocumentsData struct {
	Documents []DataDocument `json:"documents" validate:"required,min=1,dive"`
}

type RejectData struct {
	Reason string `json:"reason" validate:"required"`
}

type RespondData struct {
	Content   string         `json:"content" validate:"required"`
	Documents []DataDocument `json:"documents,omitempty" validate:"omitempty,dive"`
}

type CloseData struct {
	Comment string `json:"comment,omitempty"`
}

type ArchiveData struct {
	Comment string `json:"comment,omitempty"`
}

// UnknownData keeps the raw payload of an action whose type is not recognized.
// It is only produced when reading stored data, never by the routing engine.
type UnknownData struct {
	Type ActionType
	Raw  json.RawMessage
}

func (AnnotateData) ActionType() ActionType        { return ActionAnnoter }
func (TransmitData) ActionType() ActionType        { return ActionTransmettre }
func (ValidateData) ActionType() ActionType        { return ActionValider }
func (AttachDocumentsData) ActionType() ActionType { return ActionJoindreDocument }
func (RejectData) ActionType() ActionType          { return ActionRejeter }
func (RespondData) ActionType() ActionType         { return ActionRepondre }
func (CloseData) ActionType() ActionType           { return ActionCloturer }
func (ArchiveData) ActionType() ActionType         { return ActionArchiver }
func (u UnknownData) ActionType() ActionType       { return u.Type }

func (AnnotateData) sealed()        {}
func (TransmitData) sealed()        {}
func (ValidateData) sealed()        {}
func (AttachDocumentsData) sealed() {}
func (RejectData) sealed()          {}
func (RespondData) sealed()         {}
func (CloseData) sealed()           {}
func (ArchiveData) sealed()         {}
func (UnknownData) sealed()         {}

// MarshalJSON writes the raw payload back unchanged.
func (u UnknownData) MarshalJSON() ([]byte, error) {
	if len(u.Raw) == 0 {
		return []byte("{}"), nil
	}
	return u.Raw, nil
}

// Action is one append-only event performed inside a node.
type Action struct {
	ID       string     `json:"id"`
	NodeID   string     `json:"nodeId"`
	Type     ActionType `json:"type"`
	Date     time.Time  `json:"date"`
	AuthorID string     `json:"authorId"`
	Data     ActionData `json:"data"`
}

type actionJSON struct {
	ID       string          `json:"id"`
	NodeID   string          `json:"nodeId"`
	Type     ActionType      `json:"type"`
	Date     time.Time       `json:"date"`
	AuthorID string          `json:"authorId"`
	Data     json.RawMessage `json:"data"`
}

// UnmarshalJSON decodes data strictly by the sibling type field. Unknown types
// are preserved as UnknownData instead of failing.
func (a *Action) UnmarshalJSON(b []byte) error {
	var raw actionJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	data, err := DecodeActionData(raw.Type, raw.Data, false)
	if err != nil {
		return fmt.Errorf("action %s: %w", raw.ID, err)
	}
	*a = Action{
		ID:       raw.ID,
		NodeID:   raw.NodeID,
		Type:     raw.Type,
		Date:     raw.Date,
		AuthorID: raw.AuthorID,
		Data:     data,
	}
	return nil
}

// DecodeActionData decodes raw into the payload struct matching t. With strict
// set, unknown fields are rejected and unknown types return an error; otherwise
// unknown types yield UnknownData.
func DecodeActionData(t ActionType, raw json.RawMessage, strict bool) (ActionData, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		raw = json.RawMessage("{}")
	}
	switch t {
	case ActionAnnoter:
		return decodeInto[AnnotateData](raw, strict)
	case ActionTransmettre:
		return decodeInto[TransmitData](raw, strict)
	case ActionValider:
		return decodeInto[ValidateData](raw, strict)
	case ActionJoindreDocument:
		return decodeInto[AttachDocumentsData](raw, strict)
	case ActionRejeter:
		return decodeInto[RejectData](raw, strict)
	case ActionRepondre:
		return decodeInto[RespondData](raw, strict)
	case ActionCloturer:
		return decodeInto[CloseData](raw, strict)
	case ActionArchiver:
		return decodeInto[ArchiveData](raw, strict)
	}
	if strict {
		return nil, fmt.Errorf("unknown action type %q", t)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, err
	}
	return UnknownData{Type: t, Raw: json.RawMessage(buf.Bytes())}, nil
}

func decodeInto[T ActionData](raw json.RawMessage, strict bool) (ActionData, error) {
	var v T
	dec := json.NewDecoder(bytes.NewReader(raw))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

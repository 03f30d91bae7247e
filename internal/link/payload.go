package link

import (
	"strings"
	"time"
)

// Kind identifies the producer role that published a record.
type Kind string

const (
	KindForm   Kind = "form"
	KindButton Kind = "button"
)

// Button overrides a form can carry in FormState.ButtonState.
const (
	ButtonStateEnabled  = "enabled"
	ButtonStateDisabled = "disabled"
)

// Payload is the state a producer publishes. The set of variants is closed;
// consumers use a type switch over FormState and ButtonState.
type Payload interface {
	Kind() Kind
	isPayload()
}

// FormState is published by form widgets whenever their content changes.
type FormState struct {
	HasContent    bool     `json:"hasContent"`
	Value         string   `json:"value"`
	SelectedChips []string `json:"selectedChips,omitempty"`
	FieldType     string   `json:"fieldType"`
	Label         string   `json:"label"`
	ButtonState   string   `json:"buttonState,omitempty"`
}

func (FormState) Kind() Kind { return KindForm }
func (FormState) isPayload() {}

// DisablesButton reports whether a button linked to this form should be
// disabled. An explicit ButtonState override wins over content.
func (s FormState) DisablesButton() bool {
	switch s.ButtonState {
	case ButtonStateEnabled:
		return false
	case ButtonStateDisabled:
		return true
	}
	return !s.HasContent
}

// NewFormState derives the published state from raw form content.
func NewFormState(fieldType, label, value string, chips []string, buttonState string) FormState {
	var selected []string
	if len(chips) > 0 {
		selected = append(selected, chips...)
	}
	return FormState{
		HasContent:    strings.TrimSpace(value) != "" || len(selected) > 0,
		Value:         value,
		SelectedChips: selected,
		FieldType:     fieldType,
		Label:         label,
		ButtonState:   buttonState,
	}
}

// ButtonState is published by button widgets.
type ButtonState struct {
	Disabled     bool   `json:"disabled"`
	Loading      bool   `json:"loading"`
	LinkedFormID string `json:"linkedFormId,omitempty"`
}

func (ButtonState) Kind() Kind { return KindButton }
func (ButtonState) isPayload() {}

// Record is the latest payload stored under an identifier.
type Record struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Payload     Payload   `json:"payload"`
	PublishedAt time.Time `json:"publishedAt"`
}

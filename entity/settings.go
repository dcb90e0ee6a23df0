package entity

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

//go:embed settings.json
var settingsTemplate []byte

type Settings struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"_id"`
	TimeOpen    *time.Time             `bson:"time_open,omitempty" json:"timeOpen,omitempty"`
	TimeClose   *time.Time             `bson:"time_close,omitempty" json:"timeClose,omitempty"`
	TimeConfirm *time.Time             `bson:"time_confirm,omitempty" json:"timeConfirm,omitempty"`
	Params      map[string]interface{} `bson:"params,omitempty" json:"params,omitempty"`
}

// IsRegistrationOpen reports whether now lies in [timeOpen, timeClose]. A missing
// bound leaves that side of the window unbounded.
func (s *Settings) IsRegistrationOpen(now time.Time) bool {
	return windowOpen(now, s.TimeOpen, s.TimeClose)
}

// IsConfirmationOpen reports whether now lies in [timeOpen, timeConfirm].
func (s *Settings) IsConfirmationOpen(now time.Time) bool {
	return windowOpen(now, s.TimeOpen, s.TimeConfirm)
}

func windowOpen(now time.Time, open, close *time.Time) bool {
	if open != nil && now.Before(*open) {
		return false
	}
	if close != nil && now.After(*close) {
		return false
	}

	return true
}

type settingsParameter struct {
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Value       interface{} `json:"value"`
}

// SettingsFromTemplate builds the initial settings document. Parameters whose
// template value is 0 are left unset.
func SettingsFromTemplate() (*Settings, error) {
	var t struct {
		Parameters map[string]settingsParameter `json:"parameters"`
	}
	if err := json.Unmarshal(settingsTemplate, &t); err != nil {
		return nil, fmt.Errorf("settings template: %w", err)
	}

	s := &Settings{Params: map[string]interface{}{}}
	for key, p := range t.Parameters {
		if p.Value == nil || p.Value == float64(0) {
			continue
		}

		var dst **time.Time
		switch key {
		case "timeOpen":
			dst = &s.TimeOpen
		case "timeClose":
			dst = &s.TimeClose
		case "timeConfirm":
			dst = &s.TimeConfirm
		default:
			s.Params[key] = p.Value
			continue
		}

		str, ok := p.Value.(string)
		if !ok {
			return nil, fmt.Errorf("settings template: %s must be an RFC3339 string", key)
		}
		ts, err := time.Parse(time.RFC3339, str)
		if err != nil {
			return nil, fmt.Errorf("settings template: %s: %w", key, err)
		}
		*dst = &ts
	}

	return s, nil
}

// SettingsPatch lists the settings an admin may change.
type SettingsPatch struct {
	TimeOpen    *time.Time             `json:"timeOpen"`
	TimeClose   *time.Time             `json:"timeClose"`
	TimeConfirm *time.Time             `json:"timeConfirm"`
	Params      map[string]interface{} `json:"params"`
}

// Valid rejects parameter names that mongo would read as paths or operators.
func (p *SettingsPatch) Valid() bool {
	for k := range p.Params {
		if k == "" || strings.ContainsAny(k, ".$") {
			return false
		}
	}

	return true
}

func (p *SettingsPatch) Empty() bool {
	return len(p.Fields()) == 0
}

func (p *SettingsPatch) Fields() bson.M {
	m := bson.M{}
	if p.TimeOpen != nil {
		m["time_open"] = *p.TimeOpen
	}
	if p.TimeClose != nil {
		m["time_close"] = *p.TimeClose
	}
	if p.TimeConfirm != nil {
		m["time_confirm"] = *p.TimeConfirm
	}
	for k, v := range p.Params {
		m["params."+k] = v
	}
	return m
}

func (p *SettingsPatch) Apply(s *Settings) {
	if p.TimeOpen != nil {
		t := *p.TimeOpen
		s.TimeOpen = &t
	}
	if p.TimeClose != nil {
		t := *p.TimeClose
		s.TimeClose = &t
	}
	if p.TimeConfirm != nil {
		t := *p.TimeConfirm
		s.TimeConfirm = &t
	}
	if len(p.Params) > 0 && s.Params == nil {
		s.Params = map[string]interface{}{}
	}
	for k, v := range p.Params {
		s.Params[k] = v
	}
}

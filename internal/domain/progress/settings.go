package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

var (
	themes    = map[string]bool{"light": true, "dark": true, "auto": true}
	fontSizes = map[string]bool{"normal": true, "medium": true, "large": true}
)

func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.clone()
}

// UpdateSettings shallow-merges the JSON object patch into the current
// settings. Top-level keys replace whole values, so a customOfficials key
// replaces the entire override and null clears it. Unknown keys are ignored.
func (s *Store) UpdateSettings(ctx context.Context, patch []byte) (Settings, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(patch, &fields); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.settings.clone()
	if _, ok := fields["customOfficials"]; ok {
		next.CustomOfficials = nil
	}
	if err := json.Unmarshal(patch, &next); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if err := next.Validate(); err != nil {
		return Settings{}, err
	}

	if err := s.saveJSON(ctx, KeySettings, next); err != nil {
		return Settings{}, err
	}
	s.settings = next
	return next.clone(), nil
}

// Validate checks the enumerated fields and the reminder time format.
func (s Settings) Validate() error {
	if !themes[s.Theme] {
		return fmt.Errorf("%w: theme %q", ErrInvalidSettings, s.Theme)
	}
	if !fontSizes[s.FontSize] {
		return fmt.Errorf("%w: fontSize %q", ErrInvalidSettings, s.FontSize)
	}
	if s.ReminderTime != nil {
		if _, err := time.Parse("15:04", *s.ReminderTime); err != nil {
			return fmt.Errorf("%w: reminderTime %q", ErrInvalidSettings, *s.ReminderTime)
		}
	}
	return nil
}

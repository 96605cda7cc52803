// Package destinations stores the search destination list and builds the
// live destination menu from it.
package destinations

import (
	"encoding/json"
	"fmt"
)

const enabledKey = "isEnabled"

// Target is one configured search destination.
type Target struct {
	Label   string
	URL     string // template; the encoded query is appended
	Enabled bool
}

// MarshalJSON writes the list-file record shape:
// {"<label>": "<url>", "isEnabled": true}.
func (t Target) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		t.Label:    t.URL,
		enabledKey: t.Enabled,
	})
}

// UnmarshalJSON reads a single label→URL pair plus the isEnabled flag.
func (t *Target) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out Target
	found := false
	for k, v := range raw {
		if k == enabledKey {
			if err := json.Unmarshal(v, &out.Enabled); err != nil {
				return fmt.Errorf("target %s: %w", enabledKey, err)
			}
			continue
		}
		if found {
			return fmt.Errorf("target record has more than one label: %q and %q", out.Label, k)
		}
		if err := json.Unmarshal(v, &out.URL); err != nil {
			return fmt.Errorf("target %q: %w", k, err)
		}
		out.Label = k
		found = true
	}
	if !found {
		return fmt.Errorf("target record has no label")
	}

	*t = out
	return nil
}

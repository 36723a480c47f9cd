package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// eventTypePattern validates event types: hierarchical, full-stop delimited, [a-zA-Z0-9_.]
var eventTypePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+(\.[a-zA-Z0-9_]+)*$`)

// Marshal returns the canonical JSON form of v: struct field order, no
// insignificant whitespace, no trailing newline and no HTML escaping.
// The result is what gets signed and sent, so it must be produced once per
// event and never re-encoded.
func Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("marshaling payload: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshal decodes a JSON object into v. Trailing data after the object is
// rejected.
func Unmarshal(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("unmarshaling payload: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("unmarshaling payload: unexpected data after JSON object")
	}
	return nil
}

// ValidateEventType validates an event type format
func ValidateEventType(eventType string) error {
	if eventType == "" {
		return fmt.Errorf("event type cannot be empty")
	}

	// Allow wildcard suffix for filtering
	eventType = strings.TrimSuffix(eventType, ".*")

	if !eventTypePattern.MatchString(eventType) {
		return fmt.Errorf("event type must be hierarchical and contain only [a-zA-Z0-9_.]: %s", eventType)
	}

	return nil
}

// MatchesEventType checks if eventType matches any of the given filters
// Supports exact matching and prefix matching (e.g., "issue.*" matches "issue.updated")
func MatchesEventType(eventType string, filters []string) bool {
	if len(filters) == 0 {
		// No filter means accept all
		return true
	}

	for _, filter := range filters {
		if eventType == filter {
			return true
		}

		if prefix, ok := strings.CutSuffix(filter, ".*"); ok && prefix != "" {
			if strings.HasPrefix(eventType, prefix+".") && len(eventType) > len(prefix)+1 {
				return true
			}
		}
	}

	return false
}

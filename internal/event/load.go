package event

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a GitHub event payload from a JSON file, typically the file
// named by GITHUB_EVENT_PATH inside a workflow run.
func Load(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload: %w", err)
	}

	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse event payload: %w", err)
	}

	return &payload, nil
}

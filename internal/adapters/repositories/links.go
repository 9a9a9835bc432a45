package repositories

import (
	"encoding/json"
	"fmt"
)

// Link titles and links are stored as JSON arrays in a text column so the
// parallel sequences survive round-trips without a join table.

func encodeStringList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encode string list: %w", err)
	}
	return string(raw), nil
}

func decodeStringList(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("decode string list: %w", err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list, nil
}

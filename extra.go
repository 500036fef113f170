package firecrawl

import (
	json "github.com/goccy/go-json"
)

// decodeWithExtra unmarshals data into v, then collects every top-level key
// not listed in known into a side map. Response types that embed the result
// survive additive API changes without dropping the new fields.
func decodeWithExtra(data []byte, v any, known []string) (map[string]json.RawMessage, error) {
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

package qcfile

import "encoding/json"

// ParseJSON parses a session from JSON.
func ParseJSON(data []byte) (*Session, error) {
	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return fromFile(f)
}

// ToJSON converts a session to JSON.
func ToJSON(s *Session, pretty bool) ([]byte, error) {
	f := toFile(s)
	if pretty {
		return json.MarshalIndent(f, "", "  ")
	}
	return json.Marshal(f)
}

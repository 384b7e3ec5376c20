package session

import (
	"encoding/json"
	"errors"
	"maps"
)

// record is the main-tier value stored under SessionPrefix+id.
type record struct {
	UserID       string         `json:"user_id"`
	Data         map[string]any `json:"data"`
	LastActivity int64          `json:"last_activity"`
	Fingerprint  string         `json:"fingerprint"`
}

func decodeRecord(raw []byte) (*record, error) {
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errors.Join(ErrCorruptRecord, err)
	}
	if rec.Data == nil {
		rec.Data = make(map[string]any)
	}
	return &rec, nil
}

func decodeLazy(raw []byte) (map[string]any, error) {
	data := make(map[string]any)
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Join(ErrCorruptRecord, err)
	}
	return data, nil
}

func cloneData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	maps.Copy(out, data)
	return out
}

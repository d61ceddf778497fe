package store

import (
	"encoding/json"
	"unicode/utf16"
)

// Stats describes the persisted dataset for user-facing reporting. Sizes
// are approximate: two bytes per stored character (UTF-16 code units), the
// accounting browsers apply to local storage. Nothing is enforced from it.
type Stats struct {
	Items       map[Key]int `json:"items"`
	ApproxBytes int64       `json:"approxBytes"`
}

// Stats reports item counts and the approximate total size across all
// namespaced keys.
func (s *Store) Stats() Stats {
	out := Stats{Items: make(map[Key]int)}
	for _, key := range AllKeys() {
		raw, ok := s.readRaw(key)
		if !ok {
			continue
		}
		out.Items[key] = itemCount(key, raw)
		out.ApproxBytes += 2 * int64(len(utf16.Encode([]rune(string(raw)))))
	}
	return out
}

// itemCount is the number of entries for sequence records and 1 for flat ones.
func itemCount(key Key, raw []byte) int {
	switch key {
	case KeyCollections, KeyCustomLists:
		var seq []json.RawMessage
		if err := json.Unmarshal(raw, &seq); err != nil {
			return 1
		}
		return len(seq)
	default:
		return 1
	}
}

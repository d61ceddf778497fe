package importer

import (
	"fmt"
	"unicode/utf8"

	"github.com/ondrel/curio/internal/models"
)

// Shape classifies decoded JSON import data.
type Shape string

// Recognized shapes.
const (
	ShapeSingle      Shape = "single"      // one collection: name + lists
	ShapeCollections Shape = "collections" // {"collections": [...]}
	ShapeBackup      Shape = "backup"      // version + collections/preferences
	ShapeUnknown     Shape = ""
)

// ValidateCollectionData classifies decoded JSON data and collects every
// validation problem, not just the first: callers show all of them at once.
// An empty message slice means the data is acceptable for its shape.
func ValidateCollectionData(data any) (Shape, []string) {
	obj, ok := data.(map[string]any)
	if !ok {
		return ShapeUnknown, []string{"unrecognized data structure"}
	}

	_, hasVersion := obj["version"]
	rawCollections, hasCollections := obj["collections"]
	_, hasPreferences := obj["preferences"]

	if hasVersion && (hasCollections || hasPreferences) {
		var msgs []string
		if hasCollections {
			msgs = validateCollectionSeq(rawCollections)
		}
		return ShapeBackup, msgs
	}

	if hasCollections {
		return ShapeCollections, validateCollectionSeq(rawCollections)
	}

	if _, hasName := obj["name"]; hasName {
		if _, hasLists := obj["lists"]; hasLists {
			return ShapeSingle, validateCollectionObj(obj, 0, false)
		}
	}

	return ShapeUnknown, []string{"unrecognized data structure"}
}

func validateCollectionSeq(raw any) []string {
	seq, ok := raw.([]any)
	if !ok {
		return []string{"collections must be a sequence"}
	}
	var msgs []string
	for i, item := range seq {
		obj, ok := item.(map[string]any)
		if !ok {
			msgs = append(msgs, fmt.Sprintf("collection %d: not an object", i+1))
			continue
		}
		msgs = append(msgs, validateCollectionObj(obj, i+1, true)...)
	}
	return msgs
}

// validateCollectionObj checks one decoded collection object. When indexed
// is true, messages are prefixed with the 1-based position.
func validateCollectionObj(obj map[string]any, index int, indexed bool) []string {
	prefix := ""
	if indexed {
		prefix = fmt.Sprintf("collection %d: ", index)
	}

	var msgs []string
	name, _ := obj["name"].(string)
	if name == "" {
		msgs = append(msgs, prefix+"name is required")
	} else if utf8.RuneCountInString(name) > models.MaxNameLength {
		msgs = append(msgs, fmt.Sprintf("%sname exceeds %d characters", prefix, models.MaxNameLength))
	}
	if desc, ok := obj["description"].(string); ok && utf8.RuneCountInString(desc) > models.MaxDescriptionLength {
		msgs = append(msgs, fmt.Sprintf("%sdescription exceeds %d characters", prefix, models.MaxDescriptionLength))
	}
	if raw, ok := obj["lists"]; ok {
		if _, isSeq := raw.([]any); !isSeq {
			msgs = append(msgs, prefix+"lists must be a sequence")
		}
	}
	return msgs
}

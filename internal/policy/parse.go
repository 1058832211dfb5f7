package policy

import (
	"bytes"
	"fmt"

	"github.com/tidwall/gjson"

	"visa-engine/internal/model"
)

// ParseUpdates reads a JSON array of update objects. Blank input is an empty list.
// Fields are read leniently: missing ones become "" and non-string values are
// stringified, so an odd risk_level simply never matches a tier.
func ParseUpdates(raw []byte) ([]model.PolicyUpdate, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []model.PolicyUpdate{}, nil
	}
	if !gjson.ValidBytes(raw) {
		return nil, &model.PolicyInputError{Reason: "not valid JSON"}
	}

	doc := gjson.ParseBytes(raw)
	if !doc.IsArray() {
		return nil, &model.PolicyInputError{Reason: "expected a JSON array of updates"}
	}

	updates := []model.PolicyUpdate{}
	var perr error
	i := 0
	doc.ForEach(func(_, v gjson.Result) bool {
		if !v.IsObject() {
			perr = &model.PolicyInputError{Reason: fmt.Sprintf("item %d is not an object", i)}
			return false
		}
		updates = append(updates, model.PolicyUpdate{
			Update:       v.Get("update").String(),
			Source:       v.Get("source").String(),
			RiskLevel:    v.Get("risk_level").String(),
			ActionNeeded: v.Get("action_needed").String(),
		})
		i++
		return true
	})
	if perr != nil {
		return nil, perr
	}
	return updates, nil
}

// FromField reads a request field that holds either an array of updates or a
// string containing one as text. present is false when the field is absent or null.
func FromField(raw []byte) (updates []model.PolicyUpdate, present bool, err error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, false, nil
	}
	if trimmed[0] == '"' {
		if !gjson.ValidBytes(trimmed) {
			return nil, true, &model.PolicyInputError{Reason: "not valid JSON"}
		}
		text := gjson.ParseBytes(trimmed).String()
		updates, err = ParseUpdates([]byte(text))
		return updates, true, err
	}
	updates, err = ParseUpdates(trimmed)
	return updates, true, err
}

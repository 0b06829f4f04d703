package netskope

import (
	"encoding/json"
	"fmt"

	"urllistsync/internal/domain"
)

// createdShape tags which of the known creation response shapes matched.
type createdShape int

const (
	// shapeDirect is a bare object carrying an id.
	shapeDirect createdShape = iota + 1
	// shapeWrapped is an object holding the list under "data".
	shapeWrapped
	// shapeListTail is an array whose last element is the new list.
	shapeListTail
)

func (s createdShape) String() string {
	switch s {
	case shapeDirect:
		return "direct"
	case shapeWrapped:
		return "wrapped"
	case shapeListTail:
		return "list-tail"
	}
	return "unknown"
}

type createdList struct {
	Shape createdShape
	Entry listEntry
}

// decodeCreated tries each shape in order and fails closed when none yields
// a list with an id.
func decodeCreated(body []byte) (createdList, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err == nil && obj != nil {
		if e, ok := entryWithID(body); ok {
			return createdList{Shape: shapeDirect, Entry: e}, nil
		}
		if raw, ok := obj["data"]; ok {
			if e, ok := entryWithID(raw); ok {
				return createdList{Shape: shapeWrapped, Entry: e}, nil
			}
		}
		return createdList{}, fmt.Errorf("create response: %w: %s", domain.ErrMalformedResponse, snippet(body))
	}

	var arr []json.RawMessage
	if err := json.Unmarshal(body, &arr); err == nil && len(arr) > 0 {
		if e, ok := entryWithID(arr[len(arr)-1]); ok {
			return createdList{Shape: shapeListTail, Entry: e}, nil
		}
	}
	return createdList{}, fmt.Errorf("create response: %w: %s", domain.ErrMalformedResponse, snippet(body))
}

func entryWithID(raw json.RawMessage) (listEntry, bool) {
	var e listEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return listEntry{}, false
	}
	return e, e.hasID()
}

// decodeLists accepts a bare array or an object keyed by "data" or
// "urllists". An object with neither key holds no lists.
func decodeLists(body []byte) ([]domain.ListSummary, error) {
	var entries []listEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(body, &obj); err != nil {
			return nil, fmt.Errorf("list response: %w: %s", domain.ErrMalformedResponse, snippet(body))
		}
		entries = nil
		for _, key := range []string{"data", "urllists"} {
			raw, ok := obj[key]
			if !ok {
				continue
			}
			if err := json.Unmarshal(raw, &entries); err != nil {
				return nil, fmt.Errorf("list response %q: %w: %v", key, domain.ErrMalformedResponse, err)
			}
			break
		}
	}

	out := make([]domain.ListSummary, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.ListSummary{ID: e.id(), Name: e.Name})
	}
	return out, nil
}

// decodeCount reads {data:{urls:[...]}} or {urls:[...]}. ok is false when
// the body fits neither.
func decodeCount(body []byte) (n int, ok bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		return 0, false
	}
	if raw, found := obj["data"]; found {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(raw, &inner); err != nil {
			return 0, false
		}
		if urls, found := inner["urls"]; found {
			return countArray(urls)
		}
	}
	if urls, found := obj["urls"]; found {
		return countArray(urls)
	}
	return 0, true
}

func countArray(raw json.RawMessage) (int, bool) {
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return 0, false
	}
	return len(arr), true
}

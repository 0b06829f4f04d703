package netskope

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// MatchExact is the only list type we write: literal entries, no wildcards.
const MatchExact = "exact"

type listData struct {
	URLs []string `json:"urls"`
	Type string   `json:"type"`
}

// writeBody is sent by create (POST) and replace (PUT).
type writeBody struct {
	Name string   `json:"name"`
	Data listData `json:"data"`
}

// appendBody is sent by PATCH .../append.
type appendBody struct {
	Data listData `json:"data"`
}

func newListData(urls []string) listData {
	if urls == nil {
		urls = []string{}
	}
	return listData{URLs: urls, Type: MatchExact}
}

// EnvelopeSize is the encoded size of the largest write body for name with
// no entries. The chunk planner reserves it in every chunk.
func EnvelopeSize(name string) int {
	b, err := json.Marshal(writeBody{Name: name, Data: newListData(nil)})
	if err != nil {
		return 0
	}
	return len(b)
}

// listID accepts ids encoded as JSON numbers or strings.
type listID string

func (id *listID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = listID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("list id: %w", err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("list id %q: %w", n, err)
	}
	*id = listID(n.String())
	return nil
}

type listEntry struct {
	ID   *listID `json:"id"`
	Name string  `json:"name"`
}

func (e listEntry) hasID() bool { return e.ID != nil && *e.ID != "" }

func (e listEntry) id() string {
	if e.ID == nil {
		return ""
	}
	return string(*e.ID)
}

package domains

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// DomainColumn is the header of the domain column in CERT.PL style exports.
const DomainColumn = "AdresDomeny"

var delimiters = []rune{'\t', ',', ';'}

// ParseTable extracts the DomainColumn values of a delimited file. It tries
// each delimiter in turn and keeps the first that yields at least one valid
// entry. found is false when no delimiter did.
func (n Normalizer) ParseTable(text string) (out []string, found bool) {
	for _, delim := range delimiters {
		if out := n.parseColumn(text, delim); len(out) > 0 {
			return out, true
		}
	}
	return nil, false
}

func (n Normalizer) parseColumn(text string, delim rune) []string {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return nil
	}
	col := -1
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if h == DomainColumn {
			col = i
			break
		}
	}
	if col < 0 {
		return nil
	}

	var out []string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			continue
		}
		if err != nil {
			break
		}
		if col >= len(rec) {
			continue
		}
		if d, ok := n.Normalize(rec[col]); ok {
			out = append(out, d)
		}
	}
	return out
}

// ParsePlain treats text as one candidate per line.
func (n Normalizer) ParsePlain(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if d, ok := n.Normalize(line); ok {
			out = append(out, d)
		}
	}
	return out
}

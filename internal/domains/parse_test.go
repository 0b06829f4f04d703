package domains_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"urllistsync/internal/domains"
)

func TestParseTable_Delimiters(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "tab cert.pl export",
			text: "Lp.\tAdresDomeny\tDataWpisu\n1\tevil.pl\t2024-01-01\n2\thttps://Bad.COM/\t2024-01-02\n",
			want: []string{"evil.pl", "bad.com"},
		},
		{
			name: "comma",
			text: "id,AdresDomeny\n1,a.pl\n2,b.pl\n",
			want: []string{"a.pl", "b.pl"},
		},
		{
			name: "semicolon with short row",
			text: "id;AdresDomeny\n1;a.pl\n2\n3;c.pl\n",
			want: []string{"a.pl", "c.pl"},
		},
		{
			name: "bom header",
			text: "\ufeffAdresDomeny\ta\nx.pl\t1\n",
			want: []string{"x.pl"},
		},
		{
			name: "invalid cells dropped",
			text: "AdresDomeny\n\nbad value\nok.pl\n",
			want: []string{"ok.pl"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := domains.Normalizer{}.ParseTable(tt.text)
			if !found {
				t.Fatal("column not found")
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("ParseTable mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseTable_NoColumn(t *testing.T) {
	if _, found := (domains.Normalizer{}).ParseTable("a.pl\nb.pl\n"); found {
		t.Fatal("expected no column")
	}
	// Header present but no valid values under any delimiter.
	if _, found := (domains.Normalizer{}).ParseTable("AdresDomeny\n\n   \n"); found {
		t.Fatal("expected empty column to count as not found")
	}
}

func TestParsePlain(t *testing.T) {
	got := domains.Normalizer{}.ParsePlain("a.pl\r\n\nhttp://B.pl/\n with space\n a.pl")
	want := []string{"a.pl", "b.pl", "a.pl"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ParsePlain mismatch (-want +got):\n%s", diff)
	}
}

func TestNewSet(t *testing.T) {
	raw := []string{"b.com", "a.com", "a.com", "c.com", "b.com"}
	got := domains.NewSet(raw)
	want := []string{"a.com", "b.com", "c.com"}
	if diff := cmp.Diff(want, []string(got)); diff != "" {
		t.Fatalf("NewSet mismatch (-want +got):\n%s", diff)
	}
	if n := domains.NewSet(nil).Len(); n != 0 {
		t.Fatalf("empty set len = %d", n)
	}
}

func TestNewSet_AfterNormalize(t *testing.T) {
	var raw []string
	for _, s := range []string{"a.com", "A.COM", "https://b.com/"} {
		if d, ok := domains.Normalize(s); ok {
			raw = append(raw, d)
		}
	}
	got := domains.NewSet(raw)
	if diff := cmp.Diff([]string{"a.com", "b.com"}, []string(got)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

package storage

import "testing"

func TestQuoteQualified(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"listings", `"listings"`, false},
		{"public.listings", `"public"."listings"`, false},
		{`we"ird`, `"we""ird"`, false},
		{"a.b.c", "", true},
		{"", "", true},
		{"public.", "", true},
	}

	for _, tt := range tests {
		got, err := quoteQualified(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("quoteQualified(%q) error = %v; wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("quoteQualified(%q) = %s; want %s", tt.in, got, tt.want)
		}
	}
}

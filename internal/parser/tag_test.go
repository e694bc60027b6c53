package parser

import (
	"testing"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag      string
		want     FieldLayout
		complete bool
		wantErr  bool
	}{
		{"size=16", FieldLayout{Size: 16, HasSize: true}, false, false},
		{"align=8", FieldLayout{Align: 8, HasAlign: true}, false, false},
		{"size=144,align=8", FieldLayout{Size: 144, Align: 8, HasSize: true, HasAlign: true}, true, false},
		{"align=4, size=0", FieldLayout{Size: 0, Align: 4, HasSize: true, HasAlign: true}, true, false},
		{"size=0x10,align=1", FieldLayout{}, false, true}, // decimal only

		// Error cases
		{"", FieldLayout{}, false, true},
		{"size", FieldLayout{}, false, true},
		{"size=", FieldLayout{}, false, true},
		{"size=abc", FieldLayout{}, false, true},
		{"align=0", FieldLayout{}, false, true},
		{"align=6", FieldLayout{}, false, true},
		{"offset=4", FieldLayout{}, false, true},
		{"size=4,size=8", FieldLayout{}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := ParseTag(tt.tag)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseTag(%q) expected error, got %+v", tt.tag, got)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseTag(%q) unexpected error: %v", tt.tag, err)
			}

			if *got != tt.want {
				t.Errorf("ParseTag(%q) = %+v, want %+v", tt.tag, *got, tt.want)
			}

			if got.Complete() != tt.complete {
				t.Errorf("ParseTag(%q).Complete() = %v, want %v", tt.tag, got.Complete(), tt.complete)
			}
		})
	}
}

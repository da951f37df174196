package common

import "testing"

func TestMetadataString(t *testing.T) {
	tests := []struct {
		name      string
		metadata  map[string]string
		keys      []string
		wantValue string
		wantFound bool
	}{
		{"nil metadata", nil, []string{"prompt"}, "", false},
		{"key found", map[string]string{"prompt": "#"}, []string{"prompt"}, "#", true},
		{"fallback key found", map[string]string{"cli_prompt": ">"}, []string{"prompt", "cli_prompt"}, ">", true},
		{"first key wins", map[string]string{"a": "1", "b": "2"}, []string{"a", "b"}, "1", true},
		{"empty value is valid", map[string]string{"prompt": ""}, []string{"prompt"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotValue, gotFound := MetadataString(tt.metadata, tt.keys...)
			if gotValue != tt.wantValue || gotFound != tt.wantFound {
				t.Errorf("MetadataString() = (%q, %v), want (%q, %v)", gotValue, gotFound, tt.wantValue, tt.wantFound)
			}
		})
	}
}

func TestMetadataIntWithDefault(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]string
		want     int
	}{
		{"nil metadata", nil, 6},
		{"valid", map[string]string{"slot_count": "12"}, 12},
		{"not a number", map[string]string{"slot_count": "six"}, 6},
		{"zero is skipped", map[string]string{"slot_count": "0"}, 6},
		{"negative is skipped", map[string]string{"slot_count": "-3"}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MetadataIntWithDefault(tt.metadata, 6, "slot_count"); got != tt.want {
				t.Errorf("MetadataIntWithDefault() = %d, want %d", got, tt.want)
			}
		})
	}
}

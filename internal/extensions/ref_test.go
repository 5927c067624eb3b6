package extensions

import "testing"

func TestParseRef(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Ref
		wantErr  bool
	}{
		{
			name:     "name only",
			input:    "pubs/logger",
			expected: Ref{Publisher: "pubs", ExtensionID: "logger"},
		},
		{
			name:     "exact version",
			input:    "pubs/logger@1.2.3",
			expected: Ref{Publisher: "pubs", ExtensionID: "logger", Version: "1.2.3"},
		},
		{
			name:     "latest version",
			input:    "pubs/logger@latest",
			expected: Ref{Publisher: "pubs", ExtensionID: "logger", Version: "latest"},
		},
		{
			name:     "range version",
			input:    "pubs/logger@^1.0.0",
			expected: Ref{Publisher: "pubs", ExtensionID: "logger", Version: "^1.0.0"},
		},
		{name: "missing publisher", input: "/logger", wantErr: true},
		{name: "missing extension id", input: "pubs/", wantErr: true},
		{name: "no separator", input: "pubslogger", wantErr: true},
		{name: "too many segments", input: "pubs/logger/extra", wantErr: true},
		{name: "empty version", input: "pubs/logger@", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ref, err := ParseRef(test.input)
			if test.wantErr {
				if err == nil {
					t.Fatalf("ParseRef(%q) expected error, got %+v", test.input, ref)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRef(%q) unexpected error: %v", test.input, err)
			}
			if ref != test.expected {
				t.Errorf("ParseRef(%q) = %+v, expected %+v", test.input, ref, test.expected)
			}
		})
	}
}

func TestRef_String_RoundTrip(t *testing.T) {
	for _, input := range []string{"pubs/logger", "pubs/logger@1.2.3", "pubs/logger@latest"} {
		ref, err := ParseRef(input)
		if err != nil {
			t.Fatalf("ParseRef(%q) unexpected error: %v", input, err)
		}
		if got := ref.String(); got != input {
			t.Errorf("String() = %q, expected %q", got, input)
		}
	}
}

func TestRef_Name(t *testing.T) {
	ref := Ref{Publisher: "pubs", ExtensionID: "logger", Version: "1.2.3"}
	if got := ref.Name(); got != "pubs/logger" {
		t.Errorf("Name() = %q, expected %q", got, "pubs/logger")
	}
}

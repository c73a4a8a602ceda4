package sanitizer

import "testing"

func TestStripControl(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text", input: "Ann Lee", want: "Ann Lee"},
		{name: "null and bell bytes", input: "Ann\x00\x07 Lee", want: "Ann Lee"},
		{name: "delete byte", input: "Cut\x7f", want: "Cut"},
		{name: "keeps line breaks and tabs", input: "a\tb\r\nc", want: "a\tb\r\nc"},
		{name: "keeps surrounding spaces", input: "  Ann   Lee ", want: "  Ann   Lee "},
		{name: "empty string", input: "", want: ""},
		{name: "preserve special characters", input: " Café & Spa™ ", want: " Café & Spa™ "},
		{name: "hebrew characters", input: "תספורת יוסי", want: "תספורת יוסי"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripControl(tt.input)
			if got != tt.want {
				t.Errorf("stripControl(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeBookingText(t *testing.T) {
	tests := []struct {
		name string
		fn   Strategy
		in   string
		want string
	}{
		{name: "name keeps spacing", fn: SanitizeName, in: "Ann   Marie", want: "Ann   Marie"},
		{name: "name drops control bytes", fn: SanitizeName, in: "Ann\x00\x07 Lee", want: "Ann Lee"},
		{name: "whitespace-only name unchanged", fn: SanitizeName, in: "   ", want: "   "},
		{name: "service keeps case", fn: SanitizeService, in: "Cut  &  Colour", want: "Cut  &  Colour"},
		{name: "notes keep line breaks", fn: SanitizeNotes, in: "Allergic to latex.\nPrefers the window chair.", want: "Allergic to latex.\nPrefers the window chair."},
		{name: "notes empty", fn: SanitizeNotes, in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{"  a  b ", "x\t\ty", "", "Ann\x00 Lee"}
	for _, in := range inputs {
		once := SanitizeName(in)
		if twice := SanitizeName(once); twice != once {
			t.Errorf("SanitizeName not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

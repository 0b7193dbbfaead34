package morse

import (
	"testing"
)

func TestEncode_Letters(t *testing.T) {
	tests := []struct {
		char rune
		want string
	}{
		{'E', "."},
		{'T', "-"},
		{'A', ".-"},
		{'S', "..."},
		{'O', "---"},
		{'Q', "--.-"},
		{'Z', "--.."},
	}

	for _, tt := range tests {
		t.Run(string(tt.char), func(t *testing.T) {
			code, ok := Encode(tt.char)
			if !ok {
				t.Fatalf("Encode(%c) ok = false, want true", tt.char)
			}
			if code != tt.want {
				t.Errorf("Encode(%c) = %q, want %q", tt.char, code, tt.want)
			}
		})
	}
}

func TestEncode_Digits(t *testing.T) {
	tests := []struct {
		char rune
		want string
	}{
		{'0', "-----"},
		{'1', ".----"},
		{'5', "....."},
		{'9', "----."},
	}

	for _, tt := range tests {
		t.Run(string(tt.char), func(t *testing.T) {
			code, ok := Encode(tt.char)
			if !ok {
				t.Fatalf("Encode(%c) ok = false, want true", tt.char)
			}
			if code != tt.want {
				t.Errorf("Encode(%c) = %q, want %q", tt.char, code, tt.want)
			}
		})
	}
}

func TestEncode_Punctuation(t *testing.T) {
	tests := []struct {
		char rune
		want string
	}{
		{'?', "..--.."},
		{'.', ".-.-.-"},
		{',', "--..--"},
		{'=', "-...-"},
		{'/', "-..-."},
		{'!', "-.-.--"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			code, ok := Encode(tt.char)
			if !ok {
				t.Fatalf("Encode(%c) ok = false, want true", tt.char)
			}
			if code != tt.want {
				t.Errorf("Encode(%c) = %q, want %q", tt.char, code, tt.want)
			}
		})
	}
}

func TestEncode_LowercaseFolds(t *testing.T) {
	upper, _ := Encode('S')
	lower, ok := Encode('s')
	if !ok {
		t.Fatal("Encode('s') ok = false, want true")
	}
	if lower != upper {
		t.Errorf("Encode('s') = %q, want %q", lower, upper)
	}
}

func TestEncode_Unmapped(t *testing.T) {
	for _, ch := range []rune{'#', '%', 'é', 'ü'} {
		if code, ok := Encode(ch); ok {
			t.Errorf("Encode(%c) = %q, ok = true, want not found", ch, code)
		}
	}
}

func TestEncode_Space(t *testing.T) {
	code, ok := Encode(' ')
	if !ok {
		t.Fatal("Encode(' ') ok = false, want true")
	}
	if code != WordSeparator {
		t.Errorf("Encode(' ') = %q, want %q", code, WordSeparator)
	}
}

func TestDecode_Basic(t *testing.T) {
	tests := []struct {
		code string
		want rune
	}{
		{".", 'E'},
		{"-", 'T'},
		{".-", 'A'},
		{"...", 'S'},
		{"---", 'O'},
		{"-----", '0'},
		{"..--..", '?'},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := Decode(tt.code); got != tt.want {
				t.Errorf("Decode(%q) = %c, want %c", tt.code, got, tt.want)
			}
		})
	}
}

func TestDecode_UnknownYieldsSentinel(t *testing.T) {
	tests := []string{
		"",         // empty
		"......",   // no entry at this depth
		"--------", // deeper than the tree
		".x-",      // invalid mark
		"----",     // valid path, empty slot
	}

	for _, code := range tests {
		if got := Decode(code); got != Unknown {
			t.Errorf("Decode(%q) = %c, want %c", code, got, Unknown)
		}
	}
}

func TestRoundTrip_AllEntries(t *testing.T) {
	for _, entry := range Entries() {
		got, ok := Encode(Decode(entry.Code))
		if !ok {
			t.Errorf("Encode(Decode(%q)) not found", entry.Code)
			continue
		}
		if got != entry.Code {
			t.Errorf("Encode(Decode(%q)) = %q, want %q", entry.Code, got, entry.Code)
		}
	}
}

func TestRoundTrip_SpaceIsTheException(t *testing.T) {
	// The space separator is encode-only: its code decodes to '/'.
	code, _ := Encode(' ')
	if got := Decode(code); got != '/' {
		t.Errorf("Decode(%q) = %c, want '/'", code, got)
	}
}

func TestEncodeWord(t *testing.T) {
	tests := []struct {
		name string
		word string
		want string
	}{
		{"sos", "SOS", "... --- ..."},
		{"empty", "", ""},
		{"lowercase", "sos", "... --- ..."},
		{"digit kept", "sos1", "... --- ... .----"},
		{"unmapped dropped", "S#S", "... ..."},
		{"all unmapped", "##", ""},
		{"space separator", "A B", ".- / -..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeWord(tt.word); got != tt.want {
				t.Errorf("EncodeWord(%q) = %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}

func TestEntries_SortedAndComplete(t *testing.T) {
	entries := Entries()
	if len(entries) < 36 {
		t.Fatalf("len(Entries()) = %d, want at least 36 (A-Z plus 0-9)", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Char >= entries[i].Char {
			t.Errorf("Entries() not sorted at %d: %c >= %c", i, entries[i-1].Char, entries[i].Char)
		}
	}
	for _, entry := range entries {
		if entry.Char == ' ' {
			t.Error("Entries() should exclude the space separator")
		}
	}
}

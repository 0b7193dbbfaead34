// internal/morse/morse.go
// Package morse provides the static Morse code lookup table used by the trainer.
package morse

import (
	"sort"
	"strings"
	"unicode"
)

// Symbol characters produced by the keyer and consumed by the table.
const (
	// Dit is the short mark
	Dit = '.'
	// Dah is the long mark
	Dah = '-'
	// Unknown is the sentinel returned when decoding a code not in the table
	Unknown = '?'
	// WordSeparator is the code emitted for a space when encoding text
	WordSeparator = "/"
)

// MorseTree is the binary tree for Morse code lookup.
// Left branch = dit, Right branch = dah.
// Index 0 is root (unused), 1 is start, parent at i, left child at 2i, right child at 2i+1.
// Indices 64-127 hold the six-element punctuation codes.
var MorseTree = [128]rune{
	0,    // 0: root (unused)
	0,    // 1: start
	'E',  // 2: .
	'T',  // 3: -
	'I',  // 4: ..
	'A',  // 5: .-
	'N',  // 6: -.
	'M',  // 7: --
	'S',  // 8: ...
	'U',  // 9: ..-
	'R',  // 10: .-.
	'W',  // 11: .--
	'D',  // 12: -..
	'K',  // 13: -.-
	'G',  // 14: --.
	'O',  // 15: ---
	'H',  // 16: ....
	'V',  // 17: ...-
	'F',  // 18: ..-.
	0,    // 19: ..-- (Ü with accent, not standard)
	'L',  // 20: .-..
	0,    // 21: .-.- (Ä with accent)
	'P',  // 22: .--.
	'J',  // 23: .---
	'B',  // 24: -...
	'X',  // 25: -..-
	'C',  // 26: -.-.
	'Y',  // 27: -.--
	'Z',  // 28: --..
	'Q',  // 29: --.-
	0,    // 30: ---. (Ö with accent)
	0,    // 31: ----
	'5',  // 32: .....
	'4',  // 33: ....-
	0,    // 34: ...-.
	'3',  // 35: ...--
	0,    // 36: ..-..
	0,    // 37: ..-.-
	0,    // 38: ..--.
	'2',  // 39: ..---
	'&',  // 40: .-...
	0,    // 41: .-..-
	'+',  // 42: .-.-.
	0,    // 43: .-.--
	0,    // 44: .--..
	0,    // 45: .--.-
	0,    // 46: .---.
	'1',  // 47: .----
	'6',  // 48: -....
	'=',  // 49: -...-
	'/',  // 50: -..-.
	0,    // 51: -..--
	0,    // 52: -.-..
	0,    // 53: -.-.-
	'(',  // 54: -.--.
	0,    // 55: -.---
	'7',  // 56: --...
	0,    // 57: --..-
	0,    // 58: --.-.
	0,    // 59: --.--
	'8',  // 60: ---..
	0,    // 61: ---.-
	'9',  // 62: ----.
	'0',  // 63: -----
	76:  '?',  // ..--..
	77:  '_',  // ..--.-
	82:  '"',  // .-..-.
	85:  '.',  // .-.-.-
	90:  '@',  // .--.-.
	94:  '\'', // .----.
	97:  '-',  // -....-
	106: ';',  // -.-.-.
	107: '!',  // -.-.--
	109: ')',  // -.--.-
	115: ',',  // --..--
	120: ':',  // ---...
}

// encodeTable maps characters to their codes. It is derived from MorseTree at
// init so encode and decode can never disagree.
var encodeTable = buildEncodeTable()

func buildEncodeTable() map[rune]string {
	table := make(map[rune]string, 64)
	for i := 2; i < len(MorseTree); i++ {
		ch := MorseTree[i]
		if ch == 0 {
			continue
		}
		table[ch] = codeForIndex(i)
	}
	// Space is encode-only: decoding its code yields '/' from the tree.
	table[' '] = WordSeparator
	return table
}

// codeForIndex reconstructs the dit/dah sequence for a tree index by walking
// back to the root. Even indices descend via the left (dit) branch.
func codeForIndex(index int) string {
	var marks []byte
	for i := index; i > 1; i /= 2 {
		if i%2 == 0 {
			marks = append(marks, Dit)
		} else {
			marks = append(marks, Dah)
		}
	}
	for l, r := 0, len(marks)-1; l < r; l, r = l+1, r-1 {
		marks[l], marks[r] = marks[r], marks[l]
	}
	return string(marks)
}

// Encode returns the code for a single character.
// Lowercase letters are folded to uppercase. The second return value is false
// when the character is not in the table.
func Encode(ch rune) (string, bool) {
	code, ok := encodeTable[unicode.ToUpper(ch)]
	return code, ok
}

// Decode returns the character for a dit/dah code, or Unknown if the code is
// empty, contains characters other than '.' and '-', or maps to no entry.
func Decode(code string) rune {
	if code == "" {
		return Unknown
	}
	index := 1
	for i := 0; i < len(code); i++ {
		switch code[i] {
		case Dit:
			index = index * 2
		case Dah:
			index = index*2 + 1
		default:
			return Unknown
		}
		if index >= len(MorseTree) {
			return Unknown
		}
	}
	ch := MorseTree[index]
	if ch == 0 {
		return Unknown
	}
	return ch
}

// EncodeWord encodes a string as per-character codes joined by single spaces.
// Characters not in the table are dropped silently.
// TODO: surface dropped characters to the caller.
func EncodeWord(word string) string {
	codes := make([]string, 0, len(word))
	for _, ch := range word {
		if code, ok := Encode(ch); ok {
			codes = append(codes, code)
		}
	}
	return strings.Join(codes, " ")
}

// Entry is one character/code pair from the table.
type Entry struct {
	Char rune
	Code string
}

// Entries returns every table entry sorted by character, excluding the
// encode-only space separator. Used by the chart command.
func Entries() []Entry {
	entries := make([]Entry, 0, len(encodeTable))
	for ch, code := range encodeTable {
		if ch == ' ' {
			continue
		}
		entries = append(entries, Entry{Char: ch, Code: code})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Char < entries[j].Char })
	return entries
}

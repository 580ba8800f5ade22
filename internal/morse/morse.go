// Package morse encodes text as Morse code.
package morse

import (
	"strings"
	"unicode"
)

var codes = map[rune]string{
	'a': ".-", 'b': "-...", 'c': "-.-.", 'd': "-..", 'e': ".", 'f': "..-.",
	'g': "--.", 'h': "....", 'i': "..", 'j': ".---", 'k': "-.-", 'l': ".-..",
	'm': "--", 'n': "-.", 'o': "---", 'p': ".--.", 'q': "--.-", 'r': ".-.",
	's': "...", 't': "-", 'u': "..-", 'v': "...-", 'w': ".--", 'x': "-..-",
	'y': "-.--", 'z': "--..",
	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",
	'.': ".-.-.-", ',': "--..--", '?': "..--..", '/': "-..-.", '=': "-...-",
	'+': ".-.-.", '-': "-....-", '\'': ".----.", '"': ".-..-.", ':': "---...",
	'(': "-.--.", ')': "-.--.-", '@': ".--.-.", '!': "-.-.--", '&': ".-...",
	';': "-.-.-.", '_': "..--.-", '$': "...-..-",
}

// Code returns the dot-dash sequence for r.
func Code(r rune) (string, bool) {
	code, ok := codes[unicode.ToLower(r)]
	return code, ok
}

// Encodable reports whether every non-space rune of text has a code.
func Encodable(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	for _, r := range text {
		if r == ' ' {
			continue
		}
		if _, ok := Code(r); !ok {
			return false
		}
	}
	return true
}

// Encode renders text with a space between letters and " / " between words.
// Runes without a code are dropped.
func Encode(text string) string {
	words := strings.Fields(text)
	out := make([]string, 0, len(words))
	for _, word := range words {
		letters := make([]string, 0, len(word))
		for _, r := range word {
			if code, ok := Code(r); ok {
				letters = append(letters, code)
			}
		}
		if len(letters) > 0 {
			out = append(out, strings.Join(letters, " "))
		}
	}
	return strings.Join(out, " / ")
}

// Player presents practice text. Implementations may render or sound it.
type Player interface {
	PlayString(text string)
	ForceStop()
}

package logparser

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

type lineDecoder struct {
	name   string
	decode func(raw []byte) (string, bool)
}

//nolint:gochecknoglobals // fixed fallback chain
var decoders = []lineDecoder{
	{name: "utf-8", decode: decodeUTF8},
	{name: "latin-1", decode: decodeWith(charmap.ISO8859_1)},
	{name: "utf-16-le", decode: decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM))},
	{name: "utf-16-be", decode: decodeWith(unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM))},
}

// Decode returns the best-effort text of a raw log line. Encodings are tried
// in a fixed order and the first clean decode wins. If none succeeds the
// bytes are reduced to ASCII, dropping everything else. Decode never fails.
func Decode(raw []byte) string {
	for _, d := range decoders {
		if text, ok := d.decode(raw); ok {
			return text
		}
	}
	return decodeASCIIIgnore(raw)
}

func decodeUTF8(raw []byte) (string, bool) {
	if !utf8.Valid(raw) {
		return "", false
	}
	return string(raw), true
}

func decodeWith(enc encoding.Encoding) func([]byte) (string, bool) {
	return func(raw []byte) (string, bool) {
		out, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			return "", false
		}
		return string(out), true
	}
}

func decodeASCIIIgnore(raw []byte) string {
	out := make([]byte, 0, len(raw))
	for _, b := range raw {
		if b < utf8.RuneSelf {
			out = append(out, b)
		}
	}
	return string(out)
}

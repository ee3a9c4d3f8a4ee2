package lexer

import (
	"bytes"

	"golang.org/x/text/unicode/norm"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// Normalize strips a UTF-8 BOM and applies Unicode NFC normalization,
// grounded on the teacher's internal/lexer/normalize.go. Doing this once
// at the input boundary means lexically equivalent source (e.g. "café"
// in NFC vs NFD) always produces identical token streams.
func Normalize(src []byte) []byte {
	src = bytes.TrimPrefix(src, bomUTF8)
	if !norm.NFC.IsNormal(src) {
		src = norm.NFC.Bytes(src)
	}
	return src
}

var fence = []byte("```")

// StripMarkdownFence implements spec.md §6.2: if the file begins with a
// triple-backtick fenced code block, the fence markers (and any language
// tag / trailing text on the opening fence's line) are removed in place
// before lexing, so spans still point at the source bytes the file
// actually contains minus the fence syntax.
func StripMarkdownFence(src []byte) []byte {
	trimmed := bytes.TrimLeft(src, " \t\r\n")
	if !bytes.HasPrefix(trimmed, fence) {
		return src
	}
	lead := len(src) - len(trimmed)
	afterOpen := trimmed[len(fence):]
	nl := bytes.IndexByte(afterOpen, '\n')
	if nl < 0 {
		return src
	}
	bodyStart := lead + len(fence) + nl + 1
	body := src[bodyStart:]

	closeIdx := bytes.LastIndex(body, fence)
	if closeIdx < 0 {
		return src
	}
	return body[:closeIdx]
}

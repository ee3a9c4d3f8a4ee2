// Package arena implements a per-module region allocator.
//
// Each loaded module owns one Arena (internal/module.Module.Arena), which
// holds copies of that module's PathAbs and DirAbs strings. AST nodes and
// diagnostic message strings are ordinary Go heap values and are not
// allocated from it. Nothing is freed piece by piece; the whole region is
// dropped together when the last reference to the Arena is released.
package arena

// Arena is a bump allocator for strings and small byte buffers. It exists
// so that a systems-language port of this front end has an obvious,
// already-idiomatic place to fold heap allocations into: every String
// call here is a stand-in for what would be an arena_alloc call in a
// language without a garbage collector.
type Arena struct {
	blocks    [][]byte
	blockSize int
	cur       []byte
	used      int
	strings   int
	bytes     int
}

const defaultBlockSize = 64 * 1024

// New creates an empty arena.
func New() *Arena {
	return &Arena{blockSize: defaultBlockSize}
}

// String copies s into the arena and returns the arena-owned copy.
func (a *Arena) String(s string) string {
	if s == "" {
		return ""
	}
	buf := a.alloc(len(s))
	copy(buf, s)
	a.strings++
	return string(buf)
}

// Bytes copies b into the arena and returns the arena-owned copy.
func (a *Arena) Bytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	buf := a.alloc(len(b))
	copy(buf, b)
	return buf
}

func (a *Arena) alloc(n int) []byte {
	a.bytes += n
	if a.cur == nil || a.used+n > len(a.cur) {
		size := a.blockSize
		if n > size {
			size = n
		}
		a.cur = make([]byte, size)
		a.blocks = append(a.blocks, a.cur)
		a.used = 0
	}
	buf := a.cur[a.used : a.used+n : a.used+n]
	a.used += n
	return buf
}

// Stats reports how many strings and bytes this arena has allocated, for
// diagnostics and tests only.
func (a *Arena) Stats() (strings, bytes int) {
	return a.strings, a.bytes
}

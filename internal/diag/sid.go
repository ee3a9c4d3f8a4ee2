package diag

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// SID is a content-addressed stable identifier for an AST node or
// diagnostic, used so that repeated runs over unchanged source produce
// byte-identical output (spec.md Testable Property 1, diagnostic
// monotonicity). Grounded on the teacher's internal/sid package; hashing
// stays on the standard library crypto/sha256 since the pack has no
// ecosystem hashing dependency that improves on it.
type SID string

// NewSID computes a SID from a canonical module path, a byte span, a node
// kind tag, and the path of child indices leading to the node.
func NewSID(modulePath string, start, end int, kind string, childPath []int) SID {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%d|%d|%s", modulePath, start, end, kind)
	for _, idx := range childPath {
		fmt.Fprintf(&b, "|%d", idx)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return SID(hex.EncodeToString(sum[:])[:16])
}

package view

import (
	"path/filepath"
	"strings"
)

const pathSep = string(filepath.Separator)

func dirOf(p string) string { return filepath.Dir(p) }

func dottedToRelPath(modulePath string) string {
	return filepath.Join(strings.Split(modulePath, ".")...)
}

func pathHasSuffix(p, suffix string) bool {
	return strings.HasSuffix(filepath.Clean(p), filepath.Clean(suffix))
}

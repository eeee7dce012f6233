// # internal/parser/module_name.go
package parser

import (
	"os"
	"path/filepath"
	"strings"
)

// ModuleNameForPath derives the dotted module name of a stub file from its
// location: the file's stem (nothing for __init__ files), prefixed by every
// enclosing directory that is itself a package.
func ModuleNameForPath(path string) string {
	dir, file := filepath.Split(path)
	dir = filepath.Clean(dir)

	var parts []string
	if !IsInitFile(path) {
		parts = append(parts, strings.TrimSuffix(file, filepath.Ext(file)))
	}

	for dir != "" && dir != "." && dir != string(filepath.Separator) && isPackageDir(dir) {
		parts = append([]string{filepath.Base(dir)}, parts...)
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return strings.Join(parts, ".")
}

func IsInitFile(path string) bool {
	base := filepath.Base(path)
	return base == "__init__.py" || base == "__init__.pyi"
}

func isPackageDir(dir string) bool {
	for _, init := range []string{"__init__.py", "__init__.pyi"} {
		if fi, err := os.Stat(filepath.Join(dir, init)); err == nil && !fi.IsDir() {
			return true
		}
	}
	return false
}

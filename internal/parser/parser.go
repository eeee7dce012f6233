// # internal/parser/parser.go
package parser

import (
	"path/filepath"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"enumsed/internal/errors"
)

type Parser struct {
	loader *GrammarLoader
}

func NewParser(loader *GrammarLoader) *Parser {
	return &Parser{loader: loader}
}

func (p *Parser) IsStubPath(path string) bool {
	return filepath.Ext(path) == ".pyi"
}

// ParseFile parses one stub file into a typed module tree. The module name
// is derived from the file's position in its package tree.
func (p *Parser) ParseFile(path string, content []byte) (*Module, error) {
	return p.Parse(ModuleNameForPath(path), IsInitFile(path), path, content)
}

// Parse builds the module under an explicit name. A syntax error anywhere in
// the file is fatal; stub files are machine-written and a broken one means
// the whole script would be wrong.
func (p *Parser) Parse(moduleName string, isPackage bool, path string, content []byte) (*Module, error) {
	grammar := p.loader.Language("python")
	if grammar == nil {
		return nil, errors.New(errors.CodeInternal, "python grammar not loaded")
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, (&errors.DomainError{Code: errors.CodeParseError, Message: "parse failed"}).
			WithContext(errors.CtxPath, path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, (&errors.DomainError{Code: errors.CodeParseError, Message: "stub file has syntax errors"}).
			WithContext(errors.CtxPath, path).
			WithContext(errors.CtxModule, moduleName)
	}

	b := &builder{source: content}
	return b.buildModule(root, moduleName, isPackage, path), nil
}

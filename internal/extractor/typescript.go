package extractor

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// templateProperty is the decorator object key that points a component at
// its markup file.
const templateProperty = "templateUrl"

// typeScriptExtractor extracts component records from TypeScript sources
// using tree-sitter. A record is emitted for every named class declaration;
// the template reference is taken from a decorator object literal that
// carries a templateUrl property.
type typeScriptExtractor struct {
	language *sitter.Language
}

// NewTypeScript creates an extractor for TypeScript component files.
func NewTypeScript() Extractor {
	return &typeScriptExtractor{
		language: sitter.NewLanguage(typescript.LanguageTypescript()),
	}
}

// Extract parses the file and returns one record per named class.
func (e *typeScriptExtractor) Extract(ctx context.Context, filePath string) ([]Record, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(e.language)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse typescript file: %s", filePath)
	}
	defer tree.Close()

	var records []Record
	walkTree(tree.RootNode(), func(n *sitter.Node) bool {
		if ctx.Err() != nil {
			return false
		}
		switch n.Kind() {
		case "class_declaration", "abstract_class_declaration":
			if rec, ok := e.classRecord(n, source); ok {
				records = append(records, rec)
			}
		}
		return true
	})
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return records, nil
}

// classRecord builds a record from a class declaration node.
func (e *typeScriptExtractor) classRecord(node *sitter.Node, source []byte) (Record, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return Record{}, false
	}

	name := nodeText(nameNode, source)
	if name == "" {
		return Record{}, false
	}

	rec := Record{IdentifierName: name}

	// Decorators appear as children of the class declaration, or of the
	// wrapping export statement depending on the source shape.
	if ref := templateReference(node, source); ref != "" {
		rec.TemplateReference = ref
	} else if parent := node.Parent(); parent != nil && parent.Kind() == "export_statement" {
		rec.TemplateReference = templateReference(parent, source)
	}

	return rec, true
}

// templateReference scans decorator children of node for a templateUrl
// property and returns its string value as written in the source.
func templateReference(node *sitter.Node, source []byte) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child == nil || child.Kind() != "decorator" {
			continue
		}

		var ref string
		walkTree(child, func(n *sitter.Node) bool {
			if n.Kind() != "pair" {
				return true
			}
			keyNode := n.ChildByFieldName("key")
			valueNode := n.ChildByFieldName("value")
			if keyNode == nil || valueNode == nil {
				return true
			}
			if nodeText(keyNode, source) != templateProperty {
				return true
			}
			if valueNode.Kind() == "string" {
				ref = stripQuotes(nodeText(valueNode, source))
			}
			return false
		})
		if ref != "" {
			return ref
		}
	}
	return ""
}

// nodeText extracts the source text covered by a node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// stripQuotes removes the surrounding string delimiters from a literal.
func stripQuotes(s string) string {
	return strings.Trim(s, "'\"`")
}

// walkTree recursively walks a tree-sitter tree, calling visitor for each
// node. Returning false from the visitor stops descent into that subtree.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visitor(node) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}

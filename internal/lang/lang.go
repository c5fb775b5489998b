// Package lang parses source files into shapematch trees using tree-sitter
// grammars, lowering grammar-specific node types onto the canonical kind
// and slot vocabulary the matching engine understands.
package lang

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"unsafe"

	"github.com/alexaandru/go-sitter-forest/javascript"
	"github.com/alexaandru/go-sitter-forest/tsx"
	"github.com/alexaandru/go-sitter-forest/typescript"
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/shapematch/pkg/tree"
)

// Sentinel errors for parsing operations.
var (
	ErrNoFileExtension = errors.New("no file extension found")
	ErrNoLanguage      = errors.New("no language registered for extension")
	ErrNoRootNode      = errors.New("parse produced no root node")

	errPoolType = errors.New("unexpected type in parser pool")
)

//nolint:gochecknoglobals // Static grammar registry.
var languageFuncs = map[string]func() unsafe.Pointer{
	"javascript": javascript.GetLanguage,
	"typescript": typescript.GetLanguage,
	"tsx":        tsx.GetLanguage,
}

//nolint:gochecknoglobals // Static extension routing table.
var extensionLanguages = map[string]string{
	".js":  "javascript",
	".jsx": "javascript",
	".mjs": "javascript",
	".cjs": "javascript",
	".ts":  "typescript",
	".mts": "typescript",
	".cts": "typescript",
	".tsx": "tsx",
}

//nolint:gochecknoglobals // Lazily initialized language cache.
var languageCache sync.Map

// LanguageForFile returns the registered language name for a filename, or
// "" when the extension is not supported.
func LanguageForFile(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	return extensionLanguages[ext]
}

// IsSupported reports whether the filename routes to a registered grammar.
func IsSupported(filename string) bool {
	return LanguageForFile(filename) != ""
}

func getLanguage(name string) *sitter.Language {
	if cached, ok := languageCache.Load(name); ok {
		if lang, castOK := cached.(*sitter.Language); castOK {
			return lang
		}
	}

	fn, ok := languageFuncs[name]
	if !ok {
		return nil
	}

	lang := sitter.NewLanguage(fn())
	languageCache.Store(name, lang)

	return lang
}

// Parser parses source files for one language, pooling tree-sitter parsers
// across calls.
type Parser struct {
	language string
	pool     sync.Pool
}

// NewParser creates a parser for the named language.
func NewParser(language string) (*Parser, error) {
	lang := getLanguage(language)
	if lang == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoLanguage, language)
	}

	return &Parser{
		language: language,
		pool: sync.Pool{
			New: func() any {
				tsParser := sitter.NewParser()
				tsParser.SetLanguage(lang)

				return tsParser
			},
		},
	}, nil
}

// Language returns the parser's language name.
func (parser *Parser) Language() string {
	return parser.language
}

// Parse parses content into a lowered tree.
func (parser *Parser) Parse(ctx context.Context, content []byte) (*tree.Node, error) {
	tsParser, ok := parser.pool.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}

	defer parser.pool.Put(tsParser)

	parsed, err := tsParser.ParseString(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("lang: parse failed: %w", err)
	}
	defer parsed.Close()

	root := parsed.RootNode()
	if root.IsNull() {
		return nil, ErrNoRootNode
	}

	conv := &converter{source: content}

	return conv.lower(root), nil
}

// ParseFile routes the filename to a grammar and parses the content.
func ParseFile(ctx context.Context, filename string, content []byte) (*tree.Node, error) {
	if filepath.Ext(filename) == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoFileExtension, filename)
	}

	language := LanguageForFile(filename)
	if language == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoLanguage, filename)
	}

	parser, err := NewParser(language)
	if err != nil {
		return nil, err
	}

	return parser.Parse(ctx, content)
}

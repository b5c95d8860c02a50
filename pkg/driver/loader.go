package driver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	lru "github.com/hashicorp/golang-lru"
	"gopkg.in/yaml.v3"

	"github.com/poojapathak0/vyra/pkg/ast"
	"github.com/poojapathak0/vyra/pkg/graph"
)

const (
	DefaultCacheSize = 64

	includeType = "include"
)

// statementListKeys are the document keys whose values are statement lists
// and may therefore contain include statements.
var statementListKeys = []string{"statements", "then", "else", "body"}

// IncludeError reports an include chain that loops back on itself.
type IncludeError struct {
	Chain []string
}

func (e *IncludeError) Error() string {
	return fmt.Sprintf("include cycle: %s", strings.Join(e.Chain, " -> "))
}

// Source is a loaded document: either a program (Graph built from Program)
// or a previously exported graph (Program is nil).
type Source struct {
	Path    string
	Program *ast.Program
	Graph   *graph.Graph
}

type cachedDocument struct {
	modTime time.Time
	size    int64
	raw     any
}

// Loader reads program and graph documents. Decoded files are cached by
// absolute path and invalidated when the file changes on disk.
type Loader struct {
	cache *lru.ARCCache
	log   log.Logger
}

func NewLoader(cacheSize int, logger log.Logger) (*Loader, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.NewARC(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	if logger == nil {
		logger = log.Root()
	}
	return &Loader{cache: cache, log: logger}, nil
}

// Load reads the document at path. Program documents have their include
// statements expanded before decoding.
func (l *Loader) Load(path string) (*Source, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("loader: resolve %s: %w", path, err)
	}
	raw, err := l.document(abs)
	if err != nil {
		return nil, err
	}
	if graph.IsDocument(raw) {
		g, err := graph.FromMap(raw.(map[string]any))
		if err != nil {
			return nil, fmt.Errorf("loader: %s: %w", abs, err)
		}
		return &Source{Path: abs, Graph: g}, nil
	}

	expanded, err := l.expandDocument(raw, []string{abs})
	if err != nil {
		return nil, err
	}
	prog, err := ast.DecodeProgram(expanded)
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w", abs, err)
	}
	return &Source{Path: abs, Program: prog, Graph: graph.Build(prog)}, nil
}

// document returns the decoded contents of abs, from cache when the file is
// unchanged. Cached values are shared and must not be mutated.
func (l *Loader) document(abs string) (any, error) {
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if cached, ok := l.cache.Get(abs); ok {
		doc := cached.(*cachedDocument)
		if doc.modTime.Equal(info.ModTime()) && doc.size == info.Size() {
			l.log.Trace("Document cache hit", "path", abs)
			return doc.raw, nil
		}
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}
	raw, err := decodeDocument(abs, data)
	if err != nil {
		return nil, err
	}
	l.cache.Add(abs, &cachedDocument{modTime: info.ModTime(), size: info.Size(), raw: raw})
	l.log.Debug("Loaded document", "path", abs, "bytes", len(data))
	return raw, nil
}

func decodeDocument(path string, data []byte) (any, error) {
	var raw any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("loader: parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("loader: parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("loader: unsupported document type %q (expected .json, .yaml or .yml)", filepath.Ext(path))
	}
	return raw, nil
}

// expandDocument rewrites every statement list reachable from raw with its
// include statements replaced by the included file's statements. chain holds
// the files currently being expanded, outermost first.
func (l *Loader) expandDocument(raw any, chain []string) (any, error) {
	switch doc := raw.(type) {
	case []any:
		return l.expandList(doc, chain)
	case map[string]any:
		return l.expandStatement(doc, chain)
	default:
		return raw, nil
	}
}

func (l *Loader) expandList(items []any, chain []string) ([]any, error) {
	out := make([]any, 0, len(items))
	for _, item := range items {
		node, ok := item.(map[string]any)
		if !ok {
			out = append(out, item)
			continue
		}
		if typ, _ := node["type"].(string); typ == includeType {
			included, err := l.include(node, chain)
			if err != nil {
				return nil, err
			}
			out = append(out, included...)
			continue
		}
		expanded, err := l.expandStatement(node, chain)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded)
	}
	return out, nil
}

// expandStatement copies node, expanding its nested statement lists.
func (l *Loader) expandStatement(node map[string]any, chain []string) (map[string]any, error) {
	var out map[string]any
	for _, key := range statementListKeys {
		items, ok := node[key].([]any)
		if !ok {
			continue
		}
		expanded, err := l.expandList(items, chain)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = make(map[string]any, len(node))
			for k, v := range node {
				out[k] = v
			}
		}
		out[key] = expanded
	}
	if out == nil {
		return node, nil
	}
	return out, nil
}

// include resolves an include statement's path relative to the including
// file and returns the included program's expanded statements.
func (l *Loader) include(node map[string]any, chain []string) ([]any, error) {
	current := chain[len(chain)-1]
	rel, _ := node["path"].(string)
	if strings.TrimSpace(rel) == "" {
		return nil, fmt.Errorf("loader: %s: include statement without a path", current)
	}
	target := rel
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(current), rel)
	}
	target = filepath.Clean(target)
	for _, seen := range chain {
		if seen == target {
			cycle := append(append([]string(nil), chain...), target)
			return nil, &IncludeError{Chain: cycle}
		}
	}

	raw, err := l.document(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loader: %s: included file %s not found", current, rel)
		}
		return nil, err
	}
	var stmts []any
	switch doc := raw.(type) {
	case []any:
		stmts = doc
	case map[string]any:
		if graph.IsDocument(doc) {
			return nil, fmt.Errorf("loader: %s: cannot include graph document %s", current, rel)
		}
		stmts, _ = doc["statements"].([]any)
	default:
		return nil, fmt.Errorf("loader: %s: included file %s is not a program", current, rel)
	}
	l.log.Debug("Expanding include", "from", current, "path", target)
	return l.expandList(stmts, append(chain[:len(chain):len(chain)], target))
}

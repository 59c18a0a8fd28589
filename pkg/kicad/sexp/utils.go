// Package sexp provides navigation helpers over parsed KiCad S-expressions.
package sexp

import (
	"fmt"
	"strconv"

	"github.com/OpenTraceLab/OpenTraceBOM/pkg/kicad/sexp/kicadsexp"
)

// FindNode searches for a child node with the given key (first symbol)
// Example: FindNode(comp, "value") finds (value "10k") in a (comp ...) list
func FindNode(s kicadsexp.Sexp, key string) (kicadsexp.Sexp, bool) {
	for _, item := range SexpToSlice(s) {
		if item == nil || item.IsLeaf() {
			continue
		}
		if name, err := GetNodeName(item); err == nil && name == key {
			return item, true
		}
	}
	return nil, false
}

// FindAllNodes finds all child nodes with the given key
func FindAllNodes(s kicadsexp.Sexp, key string) []kicadsexp.Sexp {
	var results []kicadsexp.Sexp
	for _, item := range SexpToSlice(s) {
		if item == nil || item.IsLeaf() {
			continue
		}
		if name, err := GetNodeName(item); err == nil && name == key {
			results = append(results, item)
		}
	}
	return results
}

// GetListItems returns all items in a list (excluding the first symbol/key)
// Example: GetListItems((names "/" "/power/")) returns ["/", "/power/"]
func GetListItems(s kicadsexp.Sexp) []kicadsexp.Sexp {
	items := SexpToSlice(s)
	if len(items) <= 1 {
		return nil
	}
	return items[1:]
}

// SexpToSlice returns the elements of a list, or nil for atoms
func SexpToSlice(s kicadsexp.Sexp) []kicadsexp.Sexp {
	if list, ok := s.(*kicadsexp.List); ok && list != nil {
		return list.Items()
	}
	return nil
}

// GetString extracts an atom at the given index in a list
// Index 0 is the key, 1 is first value, etc.
func GetString(s kicadsexp.Sexp, index int) (string, error) {
	if s == nil || s.IsLeaf() {
		return "", fmt.Errorf("expected list, got leaf")
	}

	items := SexpToSlice(s)
	if index < 0 || index >= len(items) {
		return "", fmt.Errorf("index %d out of bounds (length %d)", index, len(items))
	}

	if sym, ok := items[index].(kicadsexp.Symbol); ok {
		return string(sym), nil
	}

	return "", fmt.Errorf("expected symbol at index %d, got %T", index, items[index])
}

// GetInt extracts an int value at the given index
func GetInt(s kicadsexp.Sexp, index int) (int, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("failed to parse int %q: %w", str, err)
	}

	return val, nil
}

// GetValue returns the first atom after the key, or "" when the node has
// none. Netlists write empty values either as (value "") or as (value).
func GetValue(s kicadsexp.Sexp) string {
	for _, item := range GetListItems(s) {
		if sym, ok := item.(kicadsexp.Symbol); ok {
			return string(sym)
		}
	}
	return ""
}

// GetChildValue is FindNode followed by GetValue.
// Example: GetChildValue((comp (ref "R1") (value "10k")), "value") returns "10k"
func GetChildValue(s kicadsexp.Sexp, key string) string {
	node, ok := FindNode(s, key)
	if !ok {
		return ""
	}
	return GetValue(node)
}

// HasSymbol checks if a list contains a specific bare symbol
func HasSymbol(s kicadsexp.Sexp, symbol string) bool {
	for _, item := range SexpToSlice(s) {
		if sym, ok := item.(kicadsexp.Symbol); ok && string(sym) == symbol {
			return true
		}
	}
	return false
}

// GetNodeName returns the first symbol of a list (the node type/name)
func GetNodeName(s kicadsexp.Sexp) (string, error) {
	if s == nil {
		return "", fmt.Errorf("nil node")
	}
	if s.IsLeaf() {
		if sym, ok := s.(kicadsexp.Symbol); ok {
			return string(sym), nil
		}
		return "", fmt.Errorf("expected symbol leaf")
	}

	if sym, ok := s.Head().(kicadsexp.Symbol); ok {
		return string(sym), nil
	}

	return "", fmt.Errorf("expected symbol at head of list")
}

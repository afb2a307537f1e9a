package model

import (
	"errors"
	"strings"
)

// SkipChildren can be returned from a WalkFunc to skip the children of the
// current node.
var SkipChildren = errors.New("model: skip children")

// WalkFunc is called for every node visited by Walk. path is the dotted key
// path from the root; the root itself is visited with an empty path.
type WalkFunc func(path string, field *Field) error

// Walk traverses the tree depth-first in declaration order.
func Walk(root *Field, fn WalkFunc) error {
	if root == nil {
		return ErrNilField
	}
	if fn == nil {
		return nil
	}
	return walk("", root, fn)
}

func walk(path string, field *Field, fn WalkFunc) error {
	if err := fn(path, field); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	for _, child := range field.Items {
		if child == nil {
			continue
		}
		if err := walk(joinPath(path, child.Key), child, fn); err != nil {
			return err
		}
	}
	return nil
}

// Find resolves a dotted key path such as "settings.layout.style".
func Find(root *Field, path string) (*Field, bool) {
	if root == nil {
		return nil, false
	}
	path = strings.Trim(strings.TrimSpace(path), ".")
	if path == "" {
		return root, true
	}
	current := root
	for _, key := range strings.Split(path, ".") {
		next, ok := current.Child(key)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// FindRef returns the first field bound to the supplied layout reference.
// Array item refs are only matched relative to their array.
func FindRef(root *Field, ref string) (*Field, bool) {
	var found *Field
	_ = Walk(root, func(_ string, field *Field) error {
		if field.Ref == ref {
			found = field
			return errStop
		}
		if field.IsArray() {
			return SkipChildren
		}
		return nil
	})
	return found, found != nil
}

var errStop = errors.New("model: stop")

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	if key == "" {
		return parent
	}
	return parent + "." + key
}

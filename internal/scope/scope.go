// Package scope implements the symbol table the code generator consults
// while lowering one function body. The language has no nested binding
// forms, so a scope is a single flat table, rebuilt for every function.
package scope

import (
	"errors"
	"fmt"
)

var (
	SYMBOL_ALREADY_DEFINED_ON_SCOPE error = errors.New("symbol already defined on scope")
	SYMBOL_NOT_FOUND_ON_SCOPE       error = errors.New("symbol not found on scope")
)

type Scope[V any] struct {
	Nodes map[string]V
}

func New[V any]() *Scope[V] {
	return &Scope[V]{Nodes: map[string]V{}}
}

func (scope *Scope[V]) Insert(name string, element V) error {
	if _, ok := scope.Nodes[name]; ok {
		return fmt.Errorf("%w: %s", SYMBOL_ALREADY_DEFINED_ON_SCOPE, name)
	}
	scope.Nodes[name] = element
	return nil
}

func (scope *Scope[V]) Lookup(name string) (V, error) {
	if node, ok := scope.Nodes[name]; ok {
		return node, nil
	}
	var empty V
	return empty, fmt.Errorf("%w: %s", SYMBOL_NOT_FOUND_ON_SCOPE, name)
}

func (scope Scope[V]) String() string {
	return fmt.Sprintf("Scope: %v", scope.Nodes)
}

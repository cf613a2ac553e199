// Package ident provides the symbol table used throughout the compiler.
//
// The interner sits at the boundary with the external parser: the core
// packages (ast, modaltypes, typecheck, core1, closure) only ever
// consume the opaque Symbol ids it hands out, and this package is the
// minimal black box that produces them.
package ident

import "golang.org/x/text/unicode/norm"

// Symbol is an opaque identifier for a name (variable or clock variable).
// Two symbols compare equal iff they were interned from NFC-equal strings.
type Symbol uint32

// Interner maps identifier strings to Symbols and back.
type Interner struct {
	strs []string
	ids  map[string]Symbol
}

// NewInterner creates an empty interner.
func NewInterner() *Interner {
	return &Interner{ids: make(map[string]Symbol)}
}

// Intern returns the Symbol for name, allocating a fresh one if name has not
// been seen before. Input is normalized to Unicode NFC first so that
// lexically-equivalent source text always yields the same Symbol.
func (in *Interner) Intern(name string) Symbol {
	name = norm.NFC.String(name)
	if sym, ok := in.ids[name]; ok {
		return sym
	}
	sym := Symbol(len(in.strs))
	in.strs = append(in.strs, name)
	in.ids[name] = sym
	return sym
}

// Resolve returns the string a Symbol was interned from.
func (in *Interner) Resolve(s Symbol) (string, bool) {
	if int(s) < 0 || int(s) >= len(in.strs) {
		return "", false
	}
	return in.strs[s], true
}

// MustResolve is Resolve but panics on an unknown Symbol, for use by
// pretty-printers that are only ever handed Symbols the same Interner
// produced.
func (in *Interner) MustResolve(s Symbol) string {
	name, ok := in.Resolve(s)
	if !ok {
		panic("ident: symbol not produced by this interner")
	}
	return name
}

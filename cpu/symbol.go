package cpu

import (
	"cmp"
	"iter"
	"maps"
	"slices"

	"github.com/ezrec/khepra/internal"
)

// Symbol is a named value, for listings.
type Symbol struct {
	Name  string
	Value int
	Label bool // Defined by a label, rather than predefined.
}

// SymbolTable maps case-sensitive names to values. Labels shadow
// predefined names.
type SymbolTable struct {
	defines map[string]int
	labels  map[string]int
}

// Predefine sets a constant, as from the command line.
func (st *SymbolTable) Predefine(name string, value int) {
	if st.defines == nil {
		st.defines = make(map[string]int)
	}
	st.defines[name] = value
}

// Declare adds a label at address 0, if it is not already present.
func (st *SymbolTable) Declare(name string) {
	if st.labels == nil {
		st.labels = make(map[string]int)
	}
	if _, ok := st.labels[name]; !ok {
		st.labels[name] = 0
	}
}

// Define sets the address of a label, overwriting any previous address.
func (st *SymbolTable) Define(name string, addr int) (changed bool) {
	if st.labels == nil {
		st.labels = make(map[string]int)
	}
	old, ok := st.labels[name]
	changed = !ok || old != addr
	st.labels[name] = addr
	return
}

// Resolve looks up a name.
func (st *SymbolTable) Resolve(name string) (value int, ok bool) {
	value, ok = st.labels[name]
	if ok {
		return
	}
	value, ok = st.defines[name]
	return
}

// All iterates over predefined names, then labels.
func (st *SymbolTable) All() iter.Seq2[string, int] {
	return internal.IterSeq2Concat(maps.All(st.defines), maps.All(st.labels))
}

// Labels returns a copy of the label addresses.
func (st *SymbolTable) Labels() map[string]int {
	return maps.Clone(st.labels)
}

// Symbols lists every symbol, ordered by value and then name.
func (st *SymbolTable) Symbols() (symbols []Symbol) {
	for name, value := range st.defines {
		if _, shadowed := st.labels[name]; shadowed {
			continue
		}
		symbols = append(symbols, Symbol{Name: name, Value: value})
	}
	for name, value := range st.labels {
		symbols = append(symbols, Symbol{Name: name, Value: value, Label: true})
	}

	slices.SortFunc(symbols, func(a, b Symbol) int {
		return cmp.Or(cmp.Compare(a.Value, b.Value), cmp.Compare(a.Name, b.Name))
	})

	return
}

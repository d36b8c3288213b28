package cpu

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolTable(t *testing.T) {
	assert := assert.New(t)

	st := &SymbolTable{}

	_, ok := st.Resolve("start")
	assert.False(ok)

	st.Declare("start")
	value, ok := st.Resolve("start")
	assert.True(ok)
	assert.Equal(0, value)

	assert.True(st.Define("start", 0x10))
	assert.False(st.Define("start", 0x10))
	st.Declare("start")
	value, _ = st.Resolve("start")
	assert.Equal(0x10, value)

	assert.True(st.Define("Start", 0x20))
	value, _ = st.Resolve("Start")
	assert.Equal(0x20, value)

	st.Predefine("BASE", 0x8000)
	st.Predefine("start", 0x1234)
	value, _ = st.Resolve("BASE")
	assert.Equal(0x8000, value)
	value, _ = st.Resolve("start")
	assert.Equal(0x10, value)

	assert.Equal(map[string]int{"start": 0x10, "Start": 0x20}, st.Labels())

	all := map[string]int{}
	for name, value := range st.All() {
		all[name] = value
	}
	assert.Equal(map[string]int{"start": 0x10, "Start": 0x20, "BASE": 0x8000}, all)

	assert.Equal([]Symbol{
		{Name: "start", Value: 0x10, Label: true},
		{Name: "Start", Value: 0x20, Label: true},
		{Name: "BASE", Value: 0x8000},
	}, st.Symbols())

	labels := st.Labels()
	labels["start"] = 99
	assert.False(maps.Equal(labels, st.Labels()))
}

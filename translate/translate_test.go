package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	Use("en-US")
	assert.Equal("label start missing", From("label %v missing", "start"))
	assert.Equal("line 3 'foo' bad", From("line %d '%v' %v", 3, "foo", "bad"))

	Use()
	assert.Equal("1,234", From("%d", 1234))
}

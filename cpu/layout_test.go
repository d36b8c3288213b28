package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayout(t *testing.T) {
	assert := assert.New(t)

	lay := &Layout{}
	lay.Reset()
	assert.Equal(BANK_ROM_FIXED, lay.Bank)
	assert.Equal(0, lay.Org)

	addr, err := lay.Place(3)
	assert.NoError(err)
	assert.Equal(0, addr)
	assert.Equal(3, lay.Org)

	lay.Select(BANK_AUDIO_SWAP)
	assert.Equal(0xf000, lay.Org)

	assert.NoError(lay.SetOrg(0xf7ff))
	addr, err = lay.Place(1)
	assert.NoError(err)
	assert.Equal(0xf7ff, addr)
	assert.Equal(0xf800, lay.Org)

	_, err = lay.Place(1)
	assert.Equal(ErrBankOverflow, err)
	assert.Equal(0xf800, lay.Org)

	assert.NoError(lay.SetOrg(0xf000))
	assert.Equal(ErrOrgRange, lay.SetOrg(0xf801))
	assert.Equal(ErrOrgRange, lay.SetOrg(0xefff))
	assert.Equal(0xf000, lay.Org)

	lay.Reset()
	assert.NoError(lay.SetOrg(0x4000))
	_, err = lay.Place(1)
	assert.Equal(ErrBankOverflow, err)
}

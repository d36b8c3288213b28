package cpu

// Bank is one of the fixed regions of the Khepra address space.
type Bank int

//go:generate go tool stringer -linecomment -type=Bank
const (
	BANK_ROM_FIXED  = Bank(0) // rom_fixed
	BANK_ROM_SWAP   = Bank(1) // rom_swap
	BANK_RAM_FIXED  = Bank(2) // ram_fixed
	BANK_RAM_SWAP   = Bank(3) // ram_swap
	BANK_TILE_SWAP  = Bank(4) // tile_swap
	BANK_AUDIO_SWAP = Bank(5) // audio_swap
)

const BANK_COUNT = 6

var bankMap = func() map[string]Bank {
	names := make(map[string]Bank, BANK_COUNT)
	for bank := range Bank(BANK_COUNT) {
		names[bank.String()] = bank
	}
	return names
}()

// ParseBank looks up a bank by its directive name.
func ParseBank(name string) (bank Bank, err error) {
	bank, ok := bankMap[name]
	if !ok {
		err = ErrBankUnknown(name)
	}
	return
}

// Base returns the first address of the bank.
func (bank Bank) Base() int {
	switch bank {
	case BANK_ROM_FIXED:
		return 0x0000
	case BANK_ROM_SWAP:
		return 0x4000
	case BANK_RAM_FIXED:
		return 0x8000
	case BANK_RAM_SWAP:
		return 0xa000
	case BANK_TILE_SWAP:
		return 0xc000
	case BANK_AUDIO_SWAP:
		return 0xf000
	}
	return 0
}

// Size returns the number of bytes in the bank.
func (bank Bank) Size() int {
	switch bank {
	case BANK_ROM_FIXED, BANK_ROM_SWAP:
		return 0x4000
	case BANK_RAM_FIXED, BANK_RAM_SWAP, BANK_TILE_SWAP:
		return 0x2000
	case BANK_AUDIO_SWAP:
		return 0x0800
	}
	return 0
}

// Contains returns true if addr lies in the bank, or is the address just
// past its end.
func (bank Bank) Contains(addr int) bool {
	return addr >= bank.Base() && addr <= bank.Base()+bank.Size()
}

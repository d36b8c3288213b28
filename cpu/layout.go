package cpu

// Layout tracks the current bank and location counter.
type Layout struct {
	Bank Bank
	Org  int
}

// Reset returns to the start of the fixed ROM bank.
func (lay *Layout) Reset() {
	lay.Select(BANK_ROM_FIXED)
}

// Select switches to the base of a bank.
func (lay *Layout) Select(bank Bank) {
	lay.Bank = bank
	lay.Org = bank.Base()
}

// SetOrg moves the location counter within the current bank.
func (lay *Layout) SetOrg(addr int) (err error) {
	if !lay.Bank.Contains(addr) {
		err = ErrOrgRange
		return
	}
	lay.Org = addr
	return
}

// Place reserves size bytes at the location counter, and advances it.
// A record that would run past the end of the bank is not placed.
func (lay *Layout) Place(size int) (addr int, err error) {
	addr = lay.Org
	if addr+size > lay.Bank.Base()+lay.Bank.Size() {
		err = ErrBankOverflow
		return
	}
	lay.Org += size
	return
}

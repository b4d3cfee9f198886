package idgen

import "fmt"

// Fake issues sequential ids for tests.
type Fake struct {
	seq int
}

func NewFake() *Fake {
	return &Fake{}
}

func (f *Fake) TransactionID() string {
	f.seq++
	return fmt.Sprintf("M%08d", f.seq)
}

func (f *Fake) RequestID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%08d", prefix, f.seq)
}

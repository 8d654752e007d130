// This file is part of arm5emu.
//
// arm5emu is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// arm5emu is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with arm5emu.  If not, see <https://www.gnu.org/licenses/>.

package bus

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/jetsetilly/arm5emu/curated"
	"github.com/jetsetilly/arm5emu/logger"
)

// Sentinal error patterns.
const (
	InvalidAddress = "bus: invalid address (%08x to %08x)"
	SlaveOverlap   = "bus: slave overlap (%08x to %08x)"
	InvalidRange   = "bus: invalid range (%08x to %08x)"
)

// a slave registered at an inclusive address range
type entry struct {
	slave Slave
	start uint32
	end   uint32
}

func (e *entry) contains(addr uint32, addrEnd uint32) bool {
	return addr >= e.start && addrEnd <= e.end
}

func (e *entry) String() string {
	return fmt.Sprintf("%T [%08x to %08x]", e.slave, e.start, e.end)
}

// Bus routes accesses to the slaves registered on it.
type Bus struct {
	crit sync.RWMutex

	// sorted by start address
	entries []*entry

	// most recently used entry
	cache atomic.Pointer[entry]

	masters []Master
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus() *Bus {
	return &Bus{}
}

// AddSlave registers the slave at the inclusive range start to end. The same
// slave can be added more than once at different ranges.
func (b *Bus) AddSlave(s Slave, start uint32, end uint32) error {
	if start > end {
		return curated.Errorf(InvalidRange, start, end)
	}

	b.crit.Lock()
	defer b.crit.Unlock()

	if e := b.find(start, end); e != nil {
		return curated.Errorf(SlaveOverlap, start, end)
	}

	e := &entry{slave: s, start: start, end: end}
	i := sort.Search(len(b.entries), func(i int) bool {
		return b.entries[i].start > start
	})
	b.entries = append(b.entries, nil)
	copy(b.entries[i+1:], b.entries[i:])
	b.entries[i] = e

	logger.Logf(logger.Allow, "bus", "added slave %v", e)

	return nil
}

// RemoveSlave removes every registration of the slave. Returns the number of
// ranges removed.
func (b *Bus) RemoveSlave(s Slave) int {
	b.crit.Lock()
	defer b.crit.Unlock()

	n := 0
	keep := b.entries[:0]
	for _, e := range b.entries {
		if e.slave == s {
			n++
			if b.cache.Load() == e {
				b.cache.Store(nil)
			}
			continue
		}
		keep = append(keep, e)
	}
	for i := len(keep); i < len(b.entries); i++ {
		b.entries[i] = nil
	}
	b.entries = keep

	return n
}

// FindSlave returns the slave registered at the range covering addr to
// addrEnd, along with the start address of the registration. Returns false if
// no single slave covers the range.
func (b *Bus) FindSlave(addr uint32, addrEnd uint32) (Slave, uint32, bool) {
	b.crit.RLock()
	defer b.crit.RUnlock()

	e := b.find(addr, addrEnd)
	if e == nil || !e.contains(addr, addrEnd) {
		return nil, 0, false
	}
	return e.slave, e.start, true
}

// find the entry intersecting addr to addrEnd. returns nil if there is no such
// entry. must be called with the lock held.
//
// when used to check for overlap, an entry that partially covers the range
// must also be found so the partial check is always performed
func (b *Bus) find(addr uint32, addrEnd uint32) *entry {
	if addrEnd < addr {
		return nil
	}

	if e := b.cache.Load(); e != nil && e.contains(addr, addrEnd) {
		return e
	}

	// the last entry starting at or before addrEnd is the only candidate that
	// can intersect the range
	i := sort.Search(len(b.entries), func(i int) bool {
		return b.entries[i].start > addrEnd
	})
	if i == 0 {
		return nil
	}
	e := b.entries[i-1]
	if e.end < addr {
		return nil
	}

	b.cache.Store(e)
	return e
}

// resolve the entry covering size bytes at addr. unlike find() a partially
// covering entry is an error
func (b *Bus) resolve(addr uint32, size int) (*entry, error) {
	addrEnd := addr + uint32(size) - 1
	e := b.find(addr, addrEnd)
	if e == nil || !e.contains(addr, addrEnd) {
		return nil, b.invalid(addr, size)
	}
	return e, nil
}

// AddMaster registers a bus master.
func (b *Bus) AddMaster(m Master) {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.masters = append(b.masters, m)
}

// Masters returns a copy of the list of registered bus masters.
func (b *Bus) Masters() []Master {
	b.crit.RLock()
	defer b.crit.RUnlock()
	m := make([]Master, len(b.masters))
	copy(m, b.masters)
	return m
}

// TryRead returns true if size bytes at addr can be read.
func (b *Bus) TryRead(addr uint32, size int) bool {
	b.crit.RLock()
	defer b.crit.RUnlock()
	e, err := b.resolve(addr, size)
	if err != nil {
		return false
	}
	return e.slave.TryRead(addr-e.start, size)
}

// TryWrite returns true if size bytes at addr can be written.
func (b *Bus) TryWrite(addr uint32, size int) bool {
	b.crit.RLock()
	defer b.crit.RUnlock()
	e, err := b.resolve(addr, size)
	if err != nil {
		return false
	}
	return e.slave.TryWrite(addr-e.start, size)
}

func (b *Bus) readSlave(addr uint32, size int) (*entry, error) {
	e, err := b.resolve(addr, size)
	if err != nil {
		return nil, err
	}
	if !e.slave.TryRead(addr-e.start, size) {
		return nil, b.invalid(addr, size)
	}
	return e, nil
}

func (b *Bus) writeSlave(addr uint32, size int) (*entry, error) {
	e, err := b.resolve(addr, size)
	if err != nil {
		return nil, err
	}
	if !e.slave.TryWrite(addr-e.start, size) {
		return nil, b.invalid(addr, size)
	}
	return e, nil
}

func (b *Bus) invalid(addr uint32, size int) error {
	return curated.Errorf(InvalidAddress, addr, addr+uint32(size)-1)
}

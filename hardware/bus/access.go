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

// Read8 reads a byte from the bus.
func (b *Bus) Read8(addr uint32) (uint8, error) {
	b.crit.RLock()
	defer b.crit.RUnlock()
	return b.read8(addr)
}

func (b *Bus) read8(addr uint32) (uint8, error) {
	e, err := b.readSlave(addr, 1)
	if err != nil {
		return 0, err
	}
	return e.slave.Read8(addr - e.start)
}

// Read16 reads a halfword from the bus.
func (b *Bus) Read16(addr uint32) (uint16, error) {
	b.crit.RLock()
	defer b.crit.RUnlock()
	e, err := b.readSlave(addr, 2)
	if err != nil {
		return 0, err
	}
	return e.slave.Read16(addr - e.start)
}

// Read32 reads a word from the bus.
func (b *Bus) Read32(addr uint32) (uint32, error) {
	b.crit.RLock()
	defer b.crit.RUnlock()
	e, err := b.readSlave(addr, 4)
	if err != nil {
		return 0, err
	}
	return e.slave.Read32(addr - e.start)
}

// Read64 reads a doubleword from the bus.
func (b *Bus) Read64(addr uint32) (uint64, error) {
	b.crit.RLock()
	defer b.crit.RUnlock()
	e, err := b.readSlave(addr, 8)
	if err != nil {
		return 0, err
	}
	return e.slave.Read64(addr - e.start)
}

// Write8 writes a byte to the bus.
func (b *Bus) Write8(addr uint32, v uint8) error {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.write8(addr, v)
}

func (b *Bus) write8(addr uint32, v uint8) error {
	e, err := b.writeSlave(addr, 1)
	if err != nil {
		return err
	}
	return e.slave.Write8(addr-e.start, v)
}

// Write16 writes a halfword to the bus.
func (b *Bus) Write16(addr uint32, v uint16) error {
	b.crit.Lock()
	defer b.crit.Unlock()
	e, err := b.writeSlave(addr, 2)
	if err != nil {
		return err
	}
	return e.slave.Write16(addr-e.start, v)
}

// Write32 writes a word to the bus.
func (b *Bus) Write32(addr uint32, v uint32) error {
	b.crit.Lock()
	defer b.crit.Unlock()
	e, err := b.writeSlave(addr, 4)
	if err != nil {
		return err
	}
	return e.slave.Write32(addr-e.start, v)
}

// Write64 writes a doubleword to the bus.
func (b *Bus) Write64(addr uint32, v uint64) error {
	b.crit.Lock()
	defer b.crit.Unlock()
	e, err := b.writeSlave(addr, 8)
	if err != nil {
		return err
	}
	return e.slave.Write64(addr-e.start, v)
}

// the slave covering the unaligned range if it supports unaligned access
// natively. returns nil if the access must be decomposed
func (b *Bus) native(addr uint32, size int) *entry {
	e, err := b.resolve(addr, size)
	if err != nil {
		return nil
	}
	if ua, ok := e.slave.(Unaligned); ok && ua.NativeUnaligned() {
		return e
	}
	return nil
}

// read size bytes from the bus, little-endian, one byte at a time. must be
// called with the read lock held
func (b *Bus) readBytes(addr uint32, size int) (uint64, error) {
	var v uint64
	for i := 0; i < size; i++ {
		d, err := b.read8(addr + uint32(i))
		if err != nil {
			return 0, err
		}
		v |= uint64(d) << (i * 8)
	}
	return v, nil
}

// write size bytes to the bus, little-endian, one byte at a time. must be
// called with the write lock held
func (b *Bus) writeBytes(addr uint32, size int, v uint64) error {
	for i := 0; i < size; i++ {
		if err := b.write8(addr+uint32(i), uint8(v>>(i*8))); err != nil {
			return err
		}
	}
	return nil
}

// ReadUA16 reads a halfword from the bus with no alignment restriction.
func (b *Bus) ReadUA16(addr uint32) (uint16, error) {
	if addr&0x01 == 0 {
		return b.Read16(addr)
	}
	b.crit.RLock()
	defer b.crit.RUnlock()
	if e := b.native(addr, 2); e != nil {
		if !e.slave.TryRead(addr-e.start, 2) {
			return 0, b.invalid(addr, 2)
		}
		return e.slave.Read16(addr - e.start)
	}
	v, err := b.readBytes(addr, 2)
	return uint16(v), err
}

// ReadUA32 reads a word from the bus with no alignment restriction.
func (b *Bus) ReadUA32(addr uint32) (uint32, error) {
	if addr&0x03 == 0 {
		return b.Read32(addr)
	}
	b.crit.RLock()
	defer b.crit.RUnlock()
	if e := b.native(addr, 4); e != nil {
		if !e.slave.TryRead(addr-e.start, 4) {
			return 0, b.invalid(addr, 4)
		}
		return e.slave.Read32(addr - e.start)
	}
	v, err := b.readBytes(addr, 4)
	return uint32(v), err
}

// ReadUA64 reads a doubleword from the bus with no alignment restriction.
func (b *Bus) ReadUA64(addr uint32) (uint64, error) {
	if addr&0x07 == 0 {
		return b.Read64(addr)
	}
	b.crit.RLock()
	defer b.crit.RUnlock()
	if e := b.native(addr, 8); e != nil {
		if !e.slave.TryRead(addr-e.start, 8) {
			return 0, b.invalid(addr, 8)
		}
		return e.slave.Read64(addr - e.start)
	}
	return b.readBytes(addr, 8)
}

// WriteUA16 writes a halfword to the bus with no alignment restriction.
func (b *Bus) WriteUA16(addr uint32, v uint16) error {
	if addr&0x01 == 0 {
		return b.Write16(addr, v)
	}
	b.crit.Lock()
	defer b.crit.Unlock()
	if e := b.native(addr, 2); e != nil {
		if !e.slave.TryWrite(addr-e.start, 2) {
			return b.invalid(addr, 2)
		}
		return e.slave.Write16(addr-e.start, v)
	}
	return b.writeBytes(addr, 2, uint64(v))
}

// WriteUA32 writes a word to the bus with no alignment restriction.
func (b *Bus) WriteUA32(addr uint32, v uint32) error {
	if addr&0x03 == 0 {
		return b.Write32(addr, v)
	}
	b.crit.Lock()
	defer b.crit.Unlock()
	if e := b.native(addr, 4); e != nil {
		if !e.slave.TryWrite(addr-e.start, 4) {
			return b.invalid(addr, 4)
		}
		return e.slave.Write32(addr-e.start, v)
	}
	return b.writeBytes(addr, 4, uint64(v))
}

// WriteUA64 writes a doubleword to the bus with no alignment restriction.
func (b *Bus) WriteUA64(addr uint32, v uint64) error {
	if addr&0x07 == 0 {
		return b.Write64(addr, v)
	}
	b.crit.Lock()
	defer b.crit.Unlock()
	if e := b.native(addr, 8); e != nil {
		if !e.slave.TryWrite(addr-e.start, 8) {
			return b.invalid(addr, 8)
		}
		return e.slave.Write64(addr-e.start, v)
	}
	return b.writeBytes(addr, 8, v)
}

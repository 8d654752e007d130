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

// AddressMask returns the mask that aligns an address to a bus of width bits.
// Widths are 8, 16, 32 or 64.
func AddressMask(width int) uint32 {
	return ^uint32(width/8 - 1)
}

// DataMask returns a mask covering a data value of width bits.
func DataMask(width int) uint64 {
	if width >= 64 {
		return 0xffffffffffffffff
	}
	return (1 << width) - 1
}

// the shift required to reach the data lane of addr in a bus word
func laneShift(addr uint32, busLen int, dataLen int) uint {
	return uint(addr&^AddressMask(busLen)&AddressMask(dataLen)) * 8
}

// ReadMasked extracts a value of dataLen bits from word, which has been read
// from the bus aligned address of addr on a bus busLen bits wide. Sub-word
// lanes are addressed little-endian.
func ReadMasked(addr uint32, word uint64, busLen int, dataLen int) uint64 {
	return (word >> laneShift(addr, busLen, dataLen)) & DataMask(dataLen)
}

// WriteMasked inserts the value v of dataLen bits into old, the existing word
// at the bus aligned address of addr. The other lanes of old are preserved.
func WriteMasked(addr uint32, old uint64, v uint64, busLen int, dataLen int) uint64 {
	sh := laneShift(addr, busLen, dataLen)
	m := DataMask(dataLen)
	return (old &^ (m << sh)) | ((v & m) << sh)
}

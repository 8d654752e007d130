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

// Package monitor implements a simple interactive monitor for the emulated
// board. The monitor is controlled with single key presses:
//
//	s	step the selected core by one instruction
//	c	run every core until a key is pressed or the board stops
//	r	print the registers of the selected core
//	n	select the next core
//	i	toggle the monitor interrupt line of the selected core
//	v	write a graph of the selected core's state to a file
//	l	print the most recent log entries
//	h	help
//	q	quit
//
// Keys are read through the Input interface. The easyterm package provides a
// suitable implementation for posix terminals.
package monitor

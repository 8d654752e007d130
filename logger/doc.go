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

// Package logger is the central log repository for arm5emu. Log entries are
// made by any part of the emulation that has something useful to say and can
// be written to any io.Writer.
//
// Each entry has a tag and a detail. The tag is usually the name of the
// component making the entry (eg. "arm", "bus" or "board") and the detail is
// the information being logged. Repeated entries are collapsed into a single
// entry with a repeat count.
//
// Logging requests must be accompanied by a Permission. The Allow value can be
// used when a log entry should always be made.
package logger

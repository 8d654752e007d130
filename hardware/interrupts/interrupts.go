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

// Package interrupts connects interrupt sources to the cores that poll them.
//
// A Destination collects any number of Sources. The CPU polls the Destination
// once per instruction and raises the interrupt exception if the Destination
// is asserted and the interrupt is not masked. The NullSource and
// NullDestination types are used when nothing is connected.
package interrupts

import (
	"strings"
	"sync"
	"sync/atomic"
)

// Source is implemented by anything that can assert an interrupt.
type Source interface {
	IsAssert() bool
	IRQMessage() string
}

// Destination is implemented by anything that can collect interrupt sources.
type Destination interface {
	SetRaisedInterrupt(src Source)
	Asserted() bool
}

// Waker is implemented by anything that sleeps until an interrupt source is
// asserted.
type Waker interface {
	Wake()
}

// Signaller is implemented by sources that wake every added Waker when they
// are asserted. A source that does not implement Signaller must be polled.
type Signaller interface {
	AddWaker(w Waker)
}

// NullSource is never asserted.
type NullSource struct{}

// IsAssert implements the Source interface.
func (NullSource) IsAssert() bool { return false }

// IRQMessage implements the Source interface.
func (NullSource) IRQMessage() string { return "" }

// AddWaker implements the Signaller interface. The waker is never woken.
func (NullSource) AddWaker(_ Waker) {}

// NullDestination ignores all sources and is never asserted.
type NullDestination struct{}

// SetRaisedInterrupt implements the Destination interface.
func (NullDestination) SetRaisedInterrupt(_ Source) {}

// Asserted implements the Destination interface.
func (NullDestination) Asserted() bool { return false }

// Line is a Source that can be asserted and deasserted by any goroutine.
type Line struct {
	name     string
	asserted atomic.Bool

	crit   sync.Mutex
	wakers []Waker
}

// NewLine is the preferred method of initialisation for the Line type.
func NewLine(name string) *Line {
	return &Line{name: name}
}

// Assert the line. Every Waker added to the line is woken, even if the line
// was already asserted.
func (l *Line) Assert() {
	l.asserted.Store(true)

	l.crit.Lock()
	wakers := l.wakers
	l.crit.Unlock()

	for _, w := range wakers {
		w.Wake()
	}
}

// AddWaker implements the Signaller interface.
func (l *Line) AddWaker(w Waker) {
	l.crit.Lock()
	defer l.crit.Unlock()
	for _, v := range l.wakers {
		if v == w {
			return
		}
	}
	l.wakers = append(l.wakers[:len(l.wakers):len(l.wakers)], w)
}

// Deassert the line.
func (l *Line) Deassert() {
	l.asserted.Store(false)
}

// IsAssert implements the Source interface.
func (l *Line) IsAssert() bool {
	return l.asserted.Load()
}

// IRQMessage implements the Source interface.
func (l *Line) IRQMessage() string {
	return l.name
}

// Aggregator is a Destination that is asserted when any of its sources are
// asserted.
type Aggregator struct {
	crit    sync.RWMutex
	sources []Source

	// wakers are added to every source that is a Signaller, including sources
	// connected after the waker
	wakers []Waker

	// number of sources that are not Signallers
	polled int
}

// NewAggregator is the preferred method of initialisation for the Aggregator
// type.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// SetRaisedInterrupt implements the Destination interface. Adding the same
// source twice has no effect.
func (agg *Aggregator) SetRaisedInterrupt(src Source) {
	agg.crit.Lock()
	defer agg.crit.Unlock()
	for _, s := range agg.sources {
		if s == src {
			return
		}
	}
	agg.sources = append(agg.sources, src)

	if sig, ok := src.(Signaller); ok {
		for _, w := range agg.wakers {
			sig.AddWaker(w)
		}
	} else {
		agg.polled++
	}
}

// AddWaker implements the Signaller interface. The waker is woken by any
// source connected to the aggregator that is a Signaller.
func (agg *Aggregator) AddWaker(w Waker) {
	agg.crit.Lock()
	defer agg.crit.Unlock()
	agg.wakers = append(agg.wakers, w)
	for _, s := range agg.sources {
		if sig, ok := s.(Signaller); ok {
			sig.AddWaker(w)
		}
	}
}

// Signalling returns false if any connected source must be polled.
func (agg *Aggregator) Signalling() bool {
	agg.crit.RLock()
	defer agg.crit.RUnlock()
	return agg.polled == 0
}

// Asserted implements the Destination interface.
func (agg *Aggregator) Asserted() bool {
	agg.crit.RLock()
	defer agg.crit.RUnlock()
	for _, s := range agg.sources {
		if s.IsAssert() {
			return true
		}
	}
	return false
}

// Message returns the messages of all asserted sources.
func (agg *Aggregator) Message() string {
	agg.crit.RLock()
	defer agg.crit.RUnlock()
	m := make([]string, 0, len(agg.sources))
	for _, s := range agg.sources {
		if s.IsAssert() {
			m = append(m, s.IRQMessage())
		}
	}
	return strings.Join(m, ", ")
}

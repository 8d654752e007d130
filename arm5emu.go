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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/jetsetilly/arm5emu/curated"
	"github.com/jetsetilly/arm5emu/hardware/board"
	"github.com/jetsetilly/arm5emu/hardware/loader"
	"github.com/jetsetilly/arm5emu/hardware/preferences"
	"github.com/jetsetilly/arm5emu/logger"
	"github.com/jetsetilly/arm5emu/modalflag"
	"github.com/jetsetilly/arm5emu/monitor"
	"github.com/jetsetilly/arm5emu/monitor/easyterm"
	"github.com/jetsetilly/arm5emu/prefs"
	"github.com/jetsetilly/arm5emu/resources"
	"github.com/jetsetilly/arm5emu/statsview"
	"github.com/jetsetilly/arm5emu/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "MONITOR", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "MONITOR":
		err = mon(md)

	case "VERSION":
		fmt.Println(version.String())
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// flags common to the RUN and MONITOR modes
type boardFlags struct {
	prefsFile *string
	set       *[]string
	entry     *string
	regs      *[]string
	limit     *int
	log       *bool
}

func addBoardFlags(md *modalflag.Modes) boardFlags {
	return boardFlags{
		prefsFile: md.AddString("prefs", "", "preferences file (defaults to the file in the resources directory)"),
		set:       md.AddList("set", "override preference for this session (key::value)"),
		entry:     md.AddString("entry", "", "entry address (defaults to the load address)"),
		regs:      md.AddList("r", "initial register value. first use sets r0, second use sets r1, etc."),
		limit:     md.AddInt("limit", 0, "stop each core after the number of instructions"),
		log:       md.AddBool("log", false, "echo log to stdout"),
	}
}

// parse an address or register value in decimal, hex (0x) or octal (0)
func parseValue(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, curated.Errorf("arm5emu: %v", err)
	}
	return uint32(v), nil
}

// create and setup the board from the command line
func prepareBoard(md *modalflag.Modes, flgs boardFlags) (*board.Board, error) {
	if len(md.RemainingArgs()) != 1 {
		return nil, curated.Errorf("arm5emu: %v", "a single boot image must be specified")
	}

	if *flgs.log {
		logger.SetEcho(os.Stdout)
	}

	pth := *flgs.prefsFile
	if pth == "" {
		var err error
		pth, err = resources.JoinPath(preferences.DefaultPrefsFile)
		if err != nil {
			return nil, err
		}
	}

	cl := *flgs.set
	if *flgs.limit > 0 {
		cl = append(cl, fmt.Sprintf("hardware.arm.instructionLimit::%d", *flgs.limit))
	}
	prefs.PushCommandLineStack(strings.Join(cl, "; "))
	defer func() {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			logger.Logf(logger.Allow, "arm5emu", "unused preferences: %s", unused)
		}
	}()

	p, err := preferences.NewPreferences(pth)
	if err != nil {
		return nil, err
	}

	entry := p.Board.LoadAddress.Value()
	if *flgs.entry != "" {
		entry, err = parseValue(*flgs.entry)
		if err != nil {
			return nil, err
		}
	}

	var args []uint32
	for _, r := range *flgs.regs {
		v, err := parseValue(r)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	ld := loader.NewLoader(md.GetArg(0))

	brd := board.NewBoard(p)
	if err := brd.Setup(&ld, entry, args...); err != nil {
		return nil, err
	}

	return brd, nil
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	flgs := addBoardFlags(md)

	var stats *bool
	if statsview.Available() {
		stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.URL("")))
	}

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	brd, err := prepareBoard(md, flgs)
	if err != nil {
		return err
	}

	if stats != nil && *stats {
		statsview.Launch(os.Stdout, "")
	}

	// stop the board on ctrl-c
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)
	go func() {
		if _, ok := <-intChan; ok {
			brd.Stop()
		}
	}()

	if err := brd.Start(); err != nil {
		return err
	}

	err = brd.Wait()

	for _, c := range brd.Cores {
		fmt.Printf("core %d: %d instructions\n", c.MasterID(), c.Instructions())
	}

	if curated.Is(err, board.InstructionLimit) {
		return nil
	}

	return err
}

func mon(md *modalflag.Modes) error {
	md.NewMode()

	flgs := addBoardFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	brd, err := prepareBoard(md, flgs)
	if err != nil {
		return err
	}

	term := &easyterm.Terminal{}
	if err := term.Initialise(os.Stdin, os.Stdout); err != nil {
		return err
	}
	defer term.CleanUp()

	term.CBreakMode()

	m, err := monitor.NewMonitor(brd, term, term)
	if err != nil {
		return err
	}

	err = m.Run()

	// make sure nothing is running on the way out
	brd.Stop()
	_ = brd.Wait()

	return err
}

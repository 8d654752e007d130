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

package loader_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/arm5emu/curated"
	"github.com/jetsetilly/arm5emu/hardware/bus"
	"github.com/jetsetilly/arm5emu/hardware/loader"
	"github.com/jetsetilly/arm5emu/hardware/memory"
	"github.com/jetsetilly/arm5emu/test"
)

var image = []byte{0x01, 0x00, 0xa0, 0xe3, 0x02, 0x10, 0xa0, 0xe3}

func writeImage(t *testing.T) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "kernel.bin")
	test.DemandSuccess(t, os.WriteFile(fn, image, 0644))
	return fn
}

func TestLoadFile(t *testing.T) {
	ld := loader.NewLoader(writeImage(t))
	test.ExpectEquality(t, ld.ShortName(), "kernel")
	test.ExpectFailure(t, ld.HasLoaded())

	test.DemandSuccess(t, ld.Load())
	test.ExpectSuccess(t, ld.HasLoaded())
	test.ExpectEquality(t, len(ld.Data), len(image))
	test.ExpectEquality(t, len(ld.Hash), 40)

	// hash mismatch
	ld = loader.NewLoader(ld.Filename)
	ld.Hash = "0000"
	err := ld.Load()
	test.ExpectSuccess(t, curated.Is(err, loader.UnexpectedHash))
	test.ExpectFailure(t, ld.HasLoaded())

	// missing file
	ld = loader.NewLoader(filepath.Join(t.TempDir(), "missing.bin"))
	test.ExpectFailure(t, ld.Load())
}

func TestLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/kernel.bin" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(image)
	}))
	defer srv.Close()

	ld := loader.NewLoader(srv.URL + "/kernel.bin")
	test.DemandSuccess(t, ld.Load())
	test.ExpectEquality(t, string(ld.Data), string(image))

	ld = loader.NewLoader(srv.URL + "/missing.bin")
	test.ExpectFailure(t, ld.Load())

	ld = loader.NewLoader("ftp://example.com/kernel.bin")
	test.ExpectSuccess(t, curated.Is(ld.Load(), loader.UnsupportedType))
}

func TestInstall(t *testing.T) {
	b := bus.NewBus()
	ram, err := memory.NewRAM(0x1000)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, b.AddSlave(ram, 0x80000000, 0x80000fff))

	ld := loader.NewLoader(writeImage(t))

	// nothing loaded yet
	test.ExpectFailure(t, ld.Install(b, 0x80000000))

	test.DemandSuccess(t, ld.Load())
	test.DemandSuccess(t, ld.Install(b, 0x80000800))

	v, err := b.Read32(0x80000800)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0xe3a00001))
	v, err = b.Read32(0x80000804)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0xe3a01002))

	// image does not fit
	err = ld.Install(b, 0x80000ffc)
	test.ExpectSuccess(t, curated.Is(err, loader.NoSlave))
	err = ld.Install(b, 0x10000000)
	test.ExpectSuccess(t, curated.Is(err, loader.NoSlave))
}

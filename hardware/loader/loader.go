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

package loader

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/arm5emu/curated"
	"github.com/jetsetilly/arm5emu/hardware/bus"
	"github.com/jetsetilly/arm5emu/logger"
)

// Sentinal error patterns.
const (
	LoaderError     = "loader: %v"
	NoSlave         = "loader: no single slave covers %08x to %08x"
	UnexpectedHash  = "loader: unexpected hash value (%s)"
	UnsupportedType = "loader: unsupported URL scheme (%s)"
)

// Loader describes a boot image.
type Loader struct {
	// filename or URL of the image
	Filename string

	// expected hash of the image. empty string indicates that the hash is
	// unknown and need not be validated. after a load operation the value
	// will be the hash of the loaded data
	Hash string

	// the loaded data. subsequent calls to Load() will not reload the data
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{
		Filename: filename,
	}
}

// ShortName returns the filename of the image without the path or
// extension.
func (ld Loader) ShortName() string {
	s := filepath.Base(ld.Filename)
	return strings.TrimSuffix(s, filepath.Ext(ld.Filename))
}

// HasLoaded returns true if Load() has completed successfully.
func (ld Loader) HasLoaded() bool {
	return len(ld.Data) > 0
}

// Load the image data.
func (ld *Loader) Load() error {
	if len(ld.Data) > 0 {
		return nil
	}

	scheme := "file"

	u, err := url.Parse(ld.Filename)
	if err == nil && len(u.Scheme) > 1 {
		scheme = u.Scheme
	}

	switch scheme {
	case "http":
		fallthrough
	case "https":
		resp, err := http.Get(ld.Filename)
		if err != nil {
			return curated.Errorf(LoaderError, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return curated.Errorf(LoaderError, resp.Status)
		}

		ld.Data, err = io.ReadAll(resp.Body)
		if err != nil {
			return curated.Errorf(LoaderError, err)
		}

	case "file":
		ld.Data, err = os.ReadFile(ld.Filename)
		if err != nil {
			return curated.Errorf(LoaderError, err)
		}

	default:
		return curated.Errorf(UnsupportedType, scheme)
	}

	hash := fmt.Sprintf("%x", sha1.Sum(ld.Data))
	if ld.Hash != "" && ld.Hash != hash {
		ld.Data = nil
		return curated.Errorf(UnexpectedHash, hash)
	}
	ld.Hash = hash

	return nil
}

// Installable is implemented by bus slaves that can accept a block of data
// in one operation. The offset is relative to the start address of the
// slave's registration.
type Installable interface {
	Load(offset uint32, data []byte) error
}

// Install copies the loaded image to the bus at the physical address. The
// image must fit entirely inside a single slave.
func (ld Loader) Install(b *bus.Bus, addr uint32) error {
	if !ld.HasLoaded() {
		return curated.Errorf(LoaderError, "no data loaded")
	}

	end := addr + uint32(len(ld.Data)) - 1
	if end < addr {
		return curated.Errorf(NoSlave, addr, end)
	}

	slave, start, ok := b.FindSlave(addr, end)
	if !ok {
		return curated.Errorf(NoSlave, addr, end)
	}

	if s, ok := slave.(Installable); ok {
		if err := s.Load(addr-start, ld.Data); err != nil {
			return curated.Errorf(LoaderError, err)
		}
	} else {
		for i, d := range ld.Data {
			if err := b.Write8(addr+uint32(i), d); err != nil {
				return curated.Errorf(LoaderError, err)
			}
		}
	}

	logger.Logf(logger.Allow, "loader", "%s: %d bytes at %08x (sha1 %s)", ld.ShortName(), len(ld.Data), addr, ld.Hash)

	return nil
}

package navigator

import (
	"io"
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/pofkit/pof/registry"
)

// mapping adapts an mmap.MMap to io.Closer, also closing the backing
// file descriptor once the mapping is released.
type mapping struct {
	data mmap.MMap
	f    *os.File
}

// Close unmaps the region and closes the file.
func (m *mapping) Close() error {
	if err := m.data.Unmap(); err != nil {
		m.f.Close()
		return err
	}

	return m.f.Close()
}

// OpenFile memory-maps path read-only and opens a Cursor over the
// mapped bytes, so navigating a large on-disk blob never copies its
// payload into the Go heap. The caller must Close the returned mapping
// once done; unmapping invalidates every Cursor derived from it.
func OpenFile(path string, ctx *registry.Context) (*Cursor, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	c, err := Open(data, ctx)
	if err != nil {
		data.Unmap()
		f.Close()
		return nil, nil, err
	}

	return c, &mapping{data: data, f: f}, nil
}

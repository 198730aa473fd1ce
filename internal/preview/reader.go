package preview

import (
	"io"
	"os"
)

// BlockSize caps how much of a file is read for classification.
const BlockSize = 4096

type FileReader interface {
	// ReadBlock returns at most max leading bytes of path. Shorter files
	// yield shorter blocks.
	ReadBlock(path string, max int) ([]byte, error)
}

// FSReader reads from the local filesystem.
type FSReader struct{}

func (FSReader) ReadBlock(path string, max int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(io.LimitReader(f, int64(max)))
}

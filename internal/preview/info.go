package preview

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/djherbis/times"
	"github.com/dustin/go-humanize"
)

// Info is what the panel shows next to a generic icon.
type Info struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	Modified  time.Time `json:"modified"`
	Directory bool      `json:"directory,omitempty"`

	// Created is nil where the filesystem doesn't record birth times.
	Created *time.Time `json:"created,omitempty"`
}

func Stat(path string) (Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}

	info := Info{
		Name:      filepath.Base(path),
		Size:      fi.Size(),
		Modified:  fi.ModTime(),
		Directory: fi.IsDir(),
	}

	if ts, err := times.Stat(path); err == nil {
		info.Modified = ts.ModTime()

		if ts.HasBirthTime() {
			bt := ts.BirthTime()
			info.Created = &bt
		}
	}

	return info, nil
}

// Summary renders a single line like
// "application/zip · 4.1 kB · modified 2026-01-02 15:04".
func (i Info) Summary(mime string) string {
	parts := []string{}

	if mime != "" {
		parts = append(parts, mime)
	}

	if !i.Directory {
		parts = append(parts, humanize.Bytes(uint64(i.Size)))
	}

	if !i.Modified.IsZero() {
		parts = append(parts, fmt.Sprintf("modified %s", i.Modified.Format("2006-01-02 15:04")))
	}

	return strings.Join(parts, " · ")
}

package util

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

const appName = "glance"

var configNames = []string{"config.toml", "config.yaml", "config.yml", "config.json"}

// ConfigFile returns the first user config file found in the XDG config
// dirs, or "" when there is none.
func ConfigFile() string {
	for _, name := range configNames {
		path, err := xdg.SearchConfigFile(filepath.Join(appName, name))
		if err == nil {
			return path
		}
	}

	return ""
}

// ThumbnailFile returns the cache path for a thumbnail key, creating the
// parent directory.
func ThumbnailFile(key string) (string, error) {
	return xdg.CacheFile(filepath.Join(appName, "thumbnails", key+".jpg"))
}

// ThumbnailKey identifies one version of a file. Any change to size or mtime
// yields a new key.
func ThumbnailKey(path string, size int64, modified time.Time, edge int) string {
	str := fmt.Sprintf("%s %d %d %d", path, size, modified.UnixNano(), edge)

	hash := md5.Sum([]byte(str))
	return hex.EncodeToString(hash[:])
}

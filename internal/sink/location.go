package sink

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Location is where the partitioned output lives: a GCS bucket prefix or a
// local directory.
type Location struct {
	// Scheme is "gs" or "file".
	Scheme string
	// Bucket is set for gs locations only.
	Bucket string
	// Path is the object prefix (gs, no leading or trailing slash) or the
	// absolute directory (file).
	Path string
}

// ParseLocation accepts gs://bucket/prefix, file:///dir and plain
// filesystem paths.
func ParseLocation(raw string) (Location, error) {
	if raw == "" {
		return Location{}, fmt.Errorf("ParseLocation: empty location")
	}

	switch {
	case strings.HasPrefix(raw, "gs://"):
		trimmed := strings.TrimPrefix(raw, "gs://")
		parts := strings.SplitN(trimmed, "/", 2)
		if parts[0] == "" {
			return Location{}, fmt.Errorf("ParseLocation: no bucket in %q", raw)
		}
		prefix := ""
		if len(parts) == 2 {
			prefix = strings.Trim(parts[1], "/")
		}
		// the whole prefix is deleted on every run, never the bucket root
		if prefix == "" {
			return Location{}, fmt.Errorf("ParseLocation: %q has no object prefix", raw)
		}
		return Location{Scheme: "gs", Bucket: parts[0], Path: prefix}, nil

	case strings.HasPrefix(raw, "file://"):
		u, err := url.Parse(raw)
		if err != nil {
			return Location{}, fmt.Errorf("ParseLocation: %w", err)
		}
		if u.Host != "" && u.Host != "localhost" {
			return Location{}, fmt.Errorf("ParseLocation: remote file host %q not supported", u.Host)
		}
		return localLocation(u.Path)

	case strings.Contains(raw, "://"):
		return Location{}, fmt.Errorf("ParseLocation: unsupported scheme in %q", raw)

	default:
		return localLocation(raw)
	}
}

func localLocation(p string) (Location, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return Location{}, fmt.Errorf("ParseLocation: %w", err)
	}
	if abs == filepath.Dir(abs) {
		return Location{}, fmt.Errorf("ParseLocation: refusing filesystem root %q", abs)
	}
	return Location{Scheme: "file", Path: abs}, nil
}

func (l Location) String() string {
	if l.Scheme == "gs" {
		return "gs://" + l.Bucket + "/" + l.Path
	}
	return "file://" + filepath.ToSlash(l.Path)
}

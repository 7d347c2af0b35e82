package scan

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Config contains configuration for a Scanner.
type Config struct {
	// FollowSymlinks makes symlink timestamps come from the link
	// target instead of the link itself.
	FollowSymlinks bool

	// TimeLayout, when non-empty, derives every entry timestamp from
	// its basename via TimeFromName instead of the stat time.
	TimeLayout string
}

// Scanner resolves path lists into entries.
type Scanner struct {
	config *Config
	logger *slog.Logger
}

// NewScanner creates a new scanner. A nil config means stat
// timestamps and unfollowed symlinks.
func NewScanner(config *Config) *Scanner {
	if config == nil {
		config = &Config{}
	}
	return &Scanner{
		config: config,
		logger: slog.Default().With("component", "scan"),
	}
}

// Paths resolves explicit paths into entries, preserving order.
// The first inaccessible path aborts the whole call.
func (s *Scanner) Paths(ctx context.Context, paths []string) ([]*Entry, error) {
	entries := make([]*Entry, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entry, err := s.resolve(path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	s.logger.Debug("resolved item paths", "item_count", len(entries))
	return entries, nil
}

// Read resolves a path list from r, one path per line. With
// nullSeparated the list is NUL separated instead, which is the safe
// form for paths containing newlines. Empty segments are skipped.
func (s *Scanner) Read(ctx context.Context, r io.Reader, nullSeparated bool) ([]*Entry, error) {
	scanner := bufio.NewScanner(r)
	if nullSeparated {
		scanner.Split(splitNull)
	}

	var entries []*Entry
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := scanner.Text()
		if !nullSeparated {
			path = strings.TrimSuffix(path, "\r")
		}
		if path == "" {
			continue
		}
		entry, err := s.resolve(path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read item list: %w", err)
	}

	s.logger.Debug("resolved item list from reader",
		"item_count", len(entries),
		"null_separated", nullSeparated,
	)
	return entries, nil
}

// resolve stats one path and applies the basename timestamp override
// when configured.
func (s *Scanner) resolve(path string) (*Entry, error) {
	entry, err := Stat(path, s.config.FollowSymlinks)
	if err != nil {
		return nil, err
	}
	if s.config.TimeLayout != "" {
		t, err := TimeFromName(path, s.config.TimeLayout)
		if err != nil {
			return nil, err
		}
		entry.modTime = t
	}
	return entry, nil
}

// splitNull is a bufio.SplitFunc for NUL separated path lists.
func splitNull(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

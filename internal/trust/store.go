package trust

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/raphi011/githooks/internal/lock"
	"github.com/raphi011/githooks/internal/log"
	"github.com/raphi011/githooks/internal/storage"
)

// StoreFile is the name of the checksum log inside the git directory.
const StoreFile = ".githooks.checksum"

const disabledMarker = "disabled>"

// Status of a trust record.
type Status string

const (
	StatusAccepted Status = "accepted"
	StatusDisabled Status = "disabled"
)

// Record is the latest decision for one hook path.
type Record struct {
	Path        string
	Fingerprint string // empty for disabled records
	Status      Status
}

// Store is the checksum log of one repository, replayed into memory.
type Store struct {
	path    string
	records map[string]Record
}

// StorePath returns the checksum log location for gitDir.
func StorePath(gitDir string) string {
	return filepath.Join(gitDir, StoreFile)
}

// OpenStore loads the checksum log of the repository whose private git
// directory is gitDir. An unreadable log is treated as empty.
func OpenStore(ctx context.Context, gitDir string) *Store {
	s := &Store{path: StorePath(gitDir), records: make(map[string]Record)}

	f, err := os.Open(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.FromContext(ctx).Warn("cannot read trust store, all hooks count as new", "path", s.path, "error", err)
		}
		return s
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	skipped := 0
	for sc.Scan() {
		rec, ok := parseRecord(sc.Text())
		if !ok {
			skipped++
			continue
		}
		s.records[rec.Path] = rec
	}
	if err := sc.Err(); err != nil {
		log.FromContext(ctx).Warn("trust store truncated while reading", "path", s.path, "error", err)
	}
	if skipped > 0 {
		log.FromContext(ctx).Debug("skipped malformed trust records", "path", s.path, "count", skipped)
	}
	return s
}

func parseRecord(line string) (Record, bool) {
	head, path, ok := strings.Cut(line, " ")
	if !ok || !filepath.IsAbs(path) {
		return Record{}, false
	}
	if head == disabledMarker {
		return Record{Path: path, Status: StatusDisabled}, true
	}
	if !isFingerprint(head) {
		return Record{}, false
	}
	return Record{Path: path, Fingerprint: head, Status: StatusAccepted}, true
}

func (r Record) line() string {
	if r.Status == StatusDisabled {
		return disabledMarker + " " + r.Path
	}
	return r.Fingerprint + " " + r.Path
}

// Lookup returns the latest record for path.
func (s *Store) Lookup(path string) (Record, bool) {
	r, ok := s.records[path]
	return r, ok
}

// Records returns the latest record of every path, sorted by path.
func (s *Store) Records() []Record {
	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Accept appends an accepted record for path with fingerprint fp.
func (s *Store) Accept(ctx context.Context, path, fp string) error {
	return s.append(ctx, Record{Path: path, Fingerprint: fp, Status: StatusAccepted})
}

// Disable appends a disabled record for path.
func (s *Store) Disable(ctx context.Context, path string) error {
	return s.append(ctx, Record{Path: path, Status: StatusDisabled})
}

func (s *Store) append(ctx context.Context, r Record) error {
	err := lock.With(ctx, s.path+".lock", func() error {
		return storage.AppendLine(s.path, r.line(), 0o644)
	})
	if err != nil {
		return err
	}
	s.records[r.Path] = r
	log.FromContext(ctx).Debug("trust record appended", "path", r.Path, "status", r.Status)
	return nil
}

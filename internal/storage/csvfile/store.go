package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	interfaces "github.com/sheikh-saqib/tea-order-assistant/internal/interfaces"
	"github.com/sheikh-saqib/tea-order-assistant/internal/models"
)

// CSVLedgerStore keeps the ledger in a single CSV file.
// The file is created on the first write and the append handle stays open
// until Close. Each row goes out in one write followed by fsync, and readers
// ignore anything after the last newline, so a reader never sees half a row.
type CSVLedgerStore struct {
	path string
	open func(path string) (ledgerFile, error)

	mu   sync.Mutex // guards f
	f    ledgerFile
	size int64 // committed bytes, 0 until the header exists
}

// ledgerFile is the part of *os.File the store writes through.
type ledgerFile interface {
	io.WriteCloser
	Stat() (os.FileInfo, error)
	Sync() error
	Truncate(size int64) error
}

func NewCSVLedgerStore(path string) *CSVLedgerStore {
	return &CSVLedgerStore{path: path, open: openAppend}
}

func openAppend(path string) (ledgerFile, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// EnsureHeader creates the file and writes the header if the file is missing or empty.
func (s *CSVLedgerStore) EnsureHeader(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureHeaderLocked()
}

func (s *CSVLedgerStore) ensureHeaderLocked() error {
	if s.f != nil && s.size > 0 {
		return nil
	}
	if s.f == nil {
		if dir := filepath.Dir(s.path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create ledger dir: %w", err)
			}
		}
		f, err := s.open(s.path)
		if err != nil {
			return fmt.Errorf("open ledger: %w", err)
		}
		s.f = f
	}

	info, err := s.f.Stat()
	if err != nil {
		return fmt.Errorf("stat ledger: %w", err)
	}
	s.size = info.Size()
	if s.size > 0 {
		return nil
	}
	return s.writeLocked(models.LedgerHeader)
}

// AppendRow writes one complete row, creating the file and header first if needed.
func (s *CSVLedgerStore) AppendRow(ctx context.Context, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureHeaderLocked(); err != nil {
		return err
	}
	return s.writeLocked(row)
}

func (s *CSVLedgerStore) writeLocked(row []string) error {
	line, err := encodeRow(row)
	if err != nil {
		return err
	}
	n, err := s.f.Write(line)
	if err == nil && n < len(line) {
		err = io.ErrShortWrite
	}
	if err != nil {
		// Cut the partial row so the next append starts on a clean line.
		if terr := s.f.Truncate(s.size); terr != nil {
			return fmt.Errorf("write ledger row: %w (truncate: %v)", err, terr)
		}
		return fmt.Errorf("write ledger row: %w", err)
	}
	s.size += int64(n)
	if err := s.f.Sync(); err != nil {
		return fmt.Errorf("sync ledger: %w", err)
	}
	return nil
}

// ReadRows returns every complete row in the file. A missing file reads as
// empty. Rows the CSV parser rejects are skipped.
func (s *CSVLedgerStore) ReadRows(ctx context.Context) ([][]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return [][]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	// Drop a trailing partial line from a write still in flight.
	if i := bytes.LastIndexByte(data, '\n'); i >= 0 {
		data = data[:i+1]
	} else {
		data = nil
	}
	return decodeRows(data), nil
}

func (s *CSVLedgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	s.size = 0
	return err
}

func encodeRow(row []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(row); err != nil {
		return nil, fmt.Errorf("encode ledger row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode ledger row: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeRows parses data as CSV. A record the parser rejects is dropped and
// parsing resumes on the line after the one where that record started, so an
// unterminated quote cannot swallow the rows behind it.
func decodeRows(data []byte) [][]string {
	rows := make([][]string, 0)
	for len(data) > 0 {
		r := csv.NewReader(bytes.NewReader(data))
		r.FieldsPerRecord = -1

		var perr *csv.ParseError
		for {
			rec, err := r.Read()
			if err == nil {
				rows = append(rows, rec)
				continue
			}
			if errors.As(err, &perr) {
				break
			}
			return rows
		}
		data = skipLines(data, perr.StartLine)
	}
	return rows
}

// skipLines drops the first n lines of data.
func skipLines(data []byte, n int) []byte {
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		j := bytes.IndexByte(data, '\n')
		if j < 0 {
			return nil
		}
		data = data[j+1:]
	}
	return data
}

// Compile-time check: ensure CSVLedgerStore implements LedgerStore interface
var _ interfaces.LedgerStore = (*CSVLedgerStore)(nil)

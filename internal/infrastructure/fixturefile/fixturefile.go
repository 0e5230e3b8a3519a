// Package fixturefile stores phone records as zstd-compressed NDJSON, one
// record per line, so fixtures can be shipped without a database.
package fixturefile

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"

	"phonefixtures/internal/domain/phone"
)

// Compile-time check that Writer implements phone.Store.
var _ phone.Store = (*Writer)(nil)

// Writer appends records to a compressed stream.
type Writer struct {
	mu      sync.Mutex
	encoder *zstd.Encoder
	json    *json.Encoder
	closer  io.Closer
	count   int64
	closed  bool
}

// NewWriter compresses records into w. Close flushes the stream but does
// not close w.
func NewWriter(w io.Writer) (*Writer, error) {
	encoder, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	return &Writer{encoder: encoder, json: json.NewEncoder(encoder)}, nil
}

// Create truncates or creates path and returns a Writer owning the file.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create fixture file: %w", err)
	}
	w, err := NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// Insert writes rec as one JSON line. Ids are not checked for uniqueness.
func (w *Writer) Insert(ctx context.Context, rec *phone.PhoneRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return errors.New("fixture writer is closed")
	}
	if err := w.json.Encode(rec); err != nil {
		return fmt.Errorf("encode record %d: %w", rec.ID, err)
	}
	w.count++
	return nil
}

// Count returns the number of records written so far.
func (w *Writer) Count() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close flushes the compressed stream and closes the file if Create opened it.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	err := w.encoder.Close()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// ReadAll decodes every record from a compressed stream.
func ReadAll(r io.Reader) ([]*phone.PhoneRecord, error) {
	var out []*phone.PhoneRecord
	err := Each(r, func(rec *phone.PhoneRecord) error {
		out = append(out, rec)
		return nil
	})
	return out, err
}

// Each calls fn for every record in order; an error from fn stops the scan.
func Each(r io.Reader, fn func(rec *phone.PhoneRecord) error) error {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return fmt.Errorf("create zstd decoder: %w", err)
	}
	defer decoder.Close()

	scanner := bufio.NewScanner(decoder)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var rec phone.PhoneRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return fmt.Errorf("decode line %d: %w", line, err)
		}
		if err := fn(&rec); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read fixture stream: %w", err)
	}
	return nil
}

// Open reads every record from the file at path.
func Open(path string) ([]*phone.PhoneRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture file: %w", err)
	}
	defer f.Close()
	return ReadAll(f)
}

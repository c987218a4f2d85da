package corpus

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/heydenberk/arithmatrix/internal/difficulty"
)

var ErrNoPuzzle = errors.New("no puzzle available")

// Writer appends records to a JSONL corpus file, one object per line.
type Writer struct {
	f   *os.File
	buf *bufio.Writer
	enc *json.Encoder
}

// NewWriter opens path for appending, creating it if missing.
func NewWriter(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("corpus: open %s: %w", path, err)
	}
	buf := bufio.NewWriter(f)
	return &Writer{f: f, buf: buf, enc: json.NewEncoder(buf)}, nil
}

// Append writes one record as a single line.
func (w *Writer) Append(r Record) error {
	if err := w.enc.Encode(r); err != nil {
		return fmt.Errorf("corpus: encode record %s: %w", r.ID, err)
	}
	return nil
}

// Close flushes buffered lines and closes the file.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

// Read decodes every well-formed record from r, skipping malformed lines
// so one corrupt entry never poisons the corpus.
func Read(r io.Reader) ([]Record, error) {
	var records []Record

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("corpus: read: %w", err)
	}

	return records, nil
}

// ReadFile loads a corpus file.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: open %s: %w", path, err)
	}
	defer f.Close()

	return Read(f)
}

// Filter returns the records matching a size and difficulty label.
func Filter(records []Record, size int, level difficulty.Level) []Record {
	var matched []Record
	for _, r := range records {
		if r.Puzzle.Size == size && r.Metadata.ActualDifficulty == level.String() {
			matched = append(matched, r)
		}
	}
	return matched
}

// Pick selects a record uniformly at random for the requested size and
// difficulty. When nothing matches it falls back to any record of that
// size, then to the corpus as a whole, before giving up.
func Pick(records []Record, size int, level difficulty.Level, rng *rand.Rand) (Record, error) {
	matched := Filter(records, size, level)
	if len(matched) == 0 {
		for _, r := range records {
			if r.Puzzle.Size == size {
				matched = append(matched, r)
			}
		}
	}
	if len(matched) == 0 {
		matched = records
	}
	if len(matched) == 0 {
		return Record{}, ErrNoPuzzle
	}
	return matched[rng.Intn(len(matched))], nil
}

// Merge concatenates shard files into dst in order. Shards are whole lines
// already, so merging is a sequential copy.
func Merge(dst string, shards []string) error {
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("corpus: open %s: %w", dst, err)
	}

	for _, shard := range shards {
		in, err := os.Open(shard)
		if err != nil {
			out.Close()
			return fmt.Errorf("corpus: open shard %s: %w", shard, err)
		}
		_, err = io.Copy(out, in)
		in.Close()
		if err != nil {
			out.Close()
			return fmt.Errorf("corpus: merge shard %s: %w", shard, err)
		}
	}

	return out.Close()
}

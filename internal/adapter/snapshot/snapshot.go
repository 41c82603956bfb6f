package snapshot

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"survivalcore/internal/app/engine"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

const Version = 1

var ErrVersion = errors.New("unsupported snapshot version")

// Header is the first line of every snapshot file, readable without
// decoding the body.
type Header struct {
	Version int    `json:"version"`
	RunID   string `json:"run_id"`
	Tick    uint64 `json:"tick"`
	Day     int64  `json:"day"`
}

// File writes and reads zstd-compressed engine snapshots at one path.
// Each process gets its own run id so successive files can be told apart.
type File struct {
	Path  string
	RunID string
}

func NewFile(path string) File {
	return File{Path: path, RunID: uuid.NewString()}
}

// Save writes snap to a temp file beside Path and renames it over Path.
func (f File) Save(snap engine.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return err
	}
	tmp := f.Path + ".tmp"
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := write(out, Header{Version: Version, RunID: f.RunID, Tick: snap.Tick, Day: snap.Day}, snap); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, f.Path)
}

func write(w io.Writer, h Header, snap engine.Snapshot) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 64*1024)

	hb, err := json.Marshal(h)
	if err != nil {
		return err
	}
	if _, err := bw.Write(append(hb, '\n')); err != nil {
		return err
	}
	if err := json.NewEncoder(bw).Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return enc.Close()
}

// Load reads the snapshot at Path. A missing file reports ok=false
// without error.
func (f File) Load() (engine.Snapshot, Header, bool, error) {
	var snap engine.Snapshot
	in, err := os.Open(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return snap, Header{}, false, nil
	}
	if err != nil {
		return snap, Header{}, false, err
	}
	defer in.Close()

	dec, err := zstd.NewReader(in)
	if err != nil {
		return snap, Header{}, false, err
	}
	defer dec.Close()
	br := bufio.NewReaderSize(dec, 64*1024)

	line, err := br.ReadBytes('\n')
	if err != nil {
		return snap, Header{}, false, fmt.Errorf("read header: %w", err)
	}
	var h Header
	if err := json.Unmarshal(line, &h); err != nil {
		return snap, Header{}, false, fmt.Errorf("decode header: %w", err)
	}
	if h.Version != Version {
		return snap, h, false, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}
	if err := json.NewDecoder(br).Decode(&snap); err != nil {
		return snap, h, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, h, true, nil
}

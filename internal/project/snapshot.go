package project

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/piwi3910/FitPrint/internal/model"
)

// SnapshotExtension is the file extension of layout snapshots.
const SnapshotExtension = ".fpl"

const snapshotVersion = 1

// Snapshot is a compact binary record of one packing run: the layout and
// the paper it was packed for. It lets a layout be reprinted without
// packing again.
type Snapshot struct {
	Version   int          `msgpack:"version"`
	CreatedAt time.Time    `msgpack:"created_at"`
	Paper     model.Paper  `msgpack:"paper"`
	Margin    float64      `msgpack:"margin"`
	Layout    model.Layout `msgpack:"layout"`
}

// NewSnapshot wraps a layout for saving.
func NewSnapshot(layout model.Layout, paper model.Paper, margin float64) Snapshot {
	return Snapshot{
		Version:   snapshotVersion,
		CreatedAt: time.Now().UTC(),
		Paper:     paper,
		Margin:    margin,
		Layout:    layout,
	}
}

// SaveSnapshot encodes the snapshot with msgpack and writes it to path.
func SaveSnapshot(path string, snap Snapshot) error {
	data, err := msgpack.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSnapshot reads a snapshot written by SaveSnapshot.
func LoadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return Snapshot{}, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	return snap, nil
}

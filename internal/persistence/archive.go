package persistence

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/ambergrove/hearthome/internal/engine"
	"github.com/ambergrove/hearthome/internal/synergy"
)

// Archive is one compressed point-in-time backup of the full simulation
// state, written alongside the live database so a save can be rolled back
// or inspected offline.
type Archive struct {
	Envelope  engine.Envelope `json:"envelope"`
	BusEvents []synergy.Event `json:"bus_events"`
	GameDay   float64         `json:"game_day"`
}

// WriteArchive writes a zstd-compressed JSON archive under dir, named by
// whole game day.
func WriteArchive(dir string, a Archive) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("day_%05d.json.zst", int(a.GameDay)))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return "", err
	}
	defer enc.Close()

	bw := bufio.NewWriter(enc)
	defer bw.Flush()

	if err := json.NewEncoder(bw).Encode(a); err != nil {
		return "", fmt.Errorf("encode archive: %w", err)
	}
	return path, nil
}

// ReadArchive loads an archive written by WriteArchive.
func ReadArchive(path string) (Archive, error) {
	var a Archive

	f, err := os.Open(path)
	if err != nil {
		return a, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return a, err
	}
	defer dec.Close()

	if err := json.NewDecoder(bufio.NewReader(dec)).Decode(&a); err != nil {
		return a, fmt.Errorf("decode archive: %w", err)
	}
	return a, nil
}

package inference

import "fmt"
import "io"
import "os"
import "path/filepath"

import gojson "github.com/goccy/go-json"
import "github.com/klauspost/compress/zstd"

// Save writes the model as zstd compressed JSON.
func (m *Model) Save(w io.Writer) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return err
	}
	if err := gojson.NewEncoder(zw).Encode(m); err != nil {
		zw.Close()
		return fmt.Errorf("failed to encode model: %w", err)
	}
	return zw.Close()
}

// Load reads a model written by Save and checks it.
func Load(r io.Reader) (*Model, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	m := new(Model)
	if err := gojson.NewDecoder(zr).Decode(m); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	if err := m.Check(); err != nil {
		return nil, err
	}
	return m, nil
}

// SaveFile writes the model to name through a temporary file in the same
// directory, so readers never see a partial model.
func (m *Model) SaveFile(name string) error {
	tmp, err := os.CreateTemp(filepath.Dir(name), filepath.Base(name)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := m.Save(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), name)
}

// LoadFile reads a model from name.
func LoadFile(name string) (*Model, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open model: %w", err)
	}
	defer f.Close()
	return Load(f)
}

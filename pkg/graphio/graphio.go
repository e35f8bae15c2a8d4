// Package graphio serializes generated complexes to and from JSON.
//
// The [Snapshot] format is shared by the CLI (--format json), the HTTP
// API, and every snapshot store backend. Round-tripping a complex through
// it preserves the edge multiset, including parallel edges.
package graphio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mwessel/phigrid/pkg/system"
)

// =============================================================================
// Snapshot Serialization API
// =============================================================================

// MarshalComplex converts a complex to indented JSON bytes.
func MarshalComplex(c *system.Complex) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeComplexTo(c, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalComplex decodes JSON bytes back to a complex.
func UnmarshalComplex(data []byte) (*system.Complex, error) {
	return readComplexFrom(bytes.NewReader(data))
}

// WriteComplex writes a complex as JSON to an io.Writer.
func WriteComplex(c *system.Complex, w io.Writer) error {
	return writeComplexTo(c, w)
}

// ReadComplex decodes a JSON snapshot from an io.Reader into a complex.
func ReadComplex(r io.Reader) (*system.Complex, error) {
	return readComplexFrom(r)
}

// WriteComplexFile writes a complex to a JSON file.
// The file is created with 0644 permissions.
func WriteComplexFile(c *system.Complex, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeComplexTo(c, f)
}

// ReadComplexFile reads a JSON snapshot file and returns the decoded complex.
func ReadComplexFile(path string) (*system.Complex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readComplexFrom(f)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeComplexTo(c *system.Complex, w io.Writer) error {
	out := FromComplex(c)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readComplexFrom(r io.Reader) (*system.Complex, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToComplex(s)
}

package persist

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tightbind/lattice"
)

// EncodeYAML writes one cell as a YAML document.
func EncodeYAML(w io.Writer, c *lattice.UnitCell) error {
	doc := toDoc(c)
	doc.Version = FormatVersion

	return writeYAML(w, "encode-yaml", doc)
}

// DecodeYAML reads one cell from a YAML document.
func DecodeYAML(r io.Reader) (*lattice.UnitCell, error) {
	var doc cellDoc
	if err := readYAML(r, &doc); err != nil {
		return nil, fail("decode-yaml", err)
	}
	c, err := fromDoc(doc)
	if err != nil {
		return nil, fail("decode-yaml", err)
	}

	return c, nil
}

// EncodeProject writes an ordered list of cells as one YAML document.
func EncodeProject(w io.Writer, cells []*lattice.UnitCell) error {
	doc := projectDoc{Version: FormatVersion, Cells: make([]cellDoc, 0, len(cells))}
	for _, c := range cells {
		doc.Cells = append(doc.Cells, toDoc(c))
	}

	return writeYAML(w, "encode-project", doc)
}

// DecodeProject reads the cells of a project document, all or nothing.
// Errors: *Error (ErrMalformed) including duplicate cell ids.
func DecodeProject(r io.Reader) ([]*lattice.UnitCell, error) {
	var doc projectDoc
	if err := readYAML(r, &doc); err != nil {
		return nil, fail("decode-project", err)
	}
	if doc.Version > FormatVersion {
		return nil, fail("decode-project", fmt.Errorf("format version %d is newer than %d", doc.Version, FormatVersion))
	}
	out := make([]*lattice.UnitCell, 0, len(doc.Cells))
	seen := make(map[lattice.ID]bool, len(doc.Cells))
	for i, cd := range doc.Cells {
		c, err := fromDoc(cd)
		if err != nil {
			return nil, fail("decode-project", fmt.Errorf("cell %d: %w", i, err))
		}
		if seen[c.ID()] {
			return nil, fail("decode-project", fmt.Errorf("cell %d: %w", i, lattice.ErrDuplicateID))
		}
		seen[c.ID()] = true
		out = append(out, c)
	}

	return out, nil
}

// MarshalBinary encodes one cell with msgpack.
func MarshalBinary(c *lattice.UnitCell) ([]byte, error) {
	doc := toDoc(c)
	doc.Version = FormatVersion
	b, err := msgpack.Marshal(&doc)
	if err != nil {
		return nil, fail("encode-binary", err)
	}

	return b, nil
}

// UnmarshalBinary decodes a cell produced by MarshalBinary.
func UnmarshalBinary(b []byte) (*lattice.UnitCell, error) {
	var doc cellDoc
	dec := msgpack.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fail("decode-binary", err)
	}
	c, err := fromDoc(doc)
	if err != nil {
		return nil, fail("decode-binary", err)
	}

	return c, nil
}

func writeYAML(w io.Writer, op string, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fail(op, err)
	}
	if err := enc.Close(); err != nil {
		return fail(op, err)
	}

	return nil
}

// readYAML decodes exactly one document, rejecting unknown fields.
func readYAML(r io.Reader, out any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty document")
		}
		return err
	}

	return nil
}

// internal/dict/file.go
//
// Dictionary loading and the binary cache format.
//
// Source selection (Open):
//   1. If a binary dictionary `<name>.dict` exists in the directory, load it.
//   2. Otherwise read the plain-text word list `<name>.txt` (one word per
//      line, ASCII), then best-effort write `<name>.dict` back so future
//      loads are faster. A failed cache write is logged as a warning and is
//      NOT a load failure.
//
// The binary format is opaque to callers: a gob-encoded word list with a
// small header. Round-trip fidelity is the only contract: a deserialized
// dictionary answers every query identically to the one serialized.
//
// Errors:
//   - Missing/unreadable sources surface as wrapped I/O errors.
//   - Malformed binary data surfaces as ErrCorrupt (errors.Is-matchable).

package dict

import (
	"bufio"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrCorrupt reports that a binary dictionary file could not be decoded.
var ErrCorrupt = errors.New("dict: corrupt binary dictionary")

// binaryMagic guards against feeding arbitrary gob streams (or text files
// renamed to .dict) into the decoder.
const binaryMagic = "QDICT1"

// binaryFile is the on-disk shape of a serialized dictionary.
type binaryFile struct {
	Magic string
	Words []string
}

// Open loads the dictionary `name` from dir, preferring the binary form.
// See the file header for the selection and cache-write rules.
func Open(dir, name string) (*Dictionary, error) {
	binPath := filepath.Join(dir, name+".dict")
	if _, err := os.Stat(binPath); err == nil {
		d, err := ReadBinaryFile(binPath)
		if err != nil {
			return nil, err
		}
		log.Trace().Str("path", binPath).Msg("read binary dictionary")
		return d, nil
	}

	txtPath := filepath.Join(dir, name+".txt")
	d, err := ReadTextFile(txtPath)
	if err != nil {
		return nil, err
	}
	log.Trace().Str("path", txtPath).Msg("read text dictionary")

	// Cache the binary form for future loads. Failure here is non-fatal: the
	// text dictionary is already in memory and fully usable.
	if err := d.WriteBinaryFile(binPath); err != nil {
		log.Warn().Err(err).Str("path", binPath).Msg("failed to write binary dictionary")
	} else {
		log.Trace().Str("path", binPath).Msg("wrote binary dictionary")
	}
	return d, nil
}

// ReadTextFile builds a dictionary from a word list, one word per line.
// Lines are trimmed and lowercased; blank lines and #-comments are skipped.
func ReadTextFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dict: open %s: %w", path, err)
	}
	defer f.Close()

	d := New()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		d.Insert(w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dict: read %s: %w", path, err)
	}
	return d, nil
}

// ReadBinaryFile loads a dictionary previously written by WriteBinaryFile.
func ReadBinaryFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dict: open %s: %w", path, err)
	}
	defer f.Close()

	var bf binaryFile
	if err := gob.NewDecoder(bufio.NewReader(f)).Decode(&bf); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	if bf.Magic != binaryMagic {
		return nil, fmt.Errorf("%w: %s: bad magic %q", ErrCorrupt, path, bf.Magic)
	}
	d := New()
	d.Populate(bf.Words)
	return d, nil
}

// WriteBinaryFile serializes the dictionary to path.
func (d *Dictionary) WriteBinaryFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dict: create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := gob.NewEncoder(w).Encode(binaryFile{Magic: binaryMagic, Words: d.Words()}); err != nil {
		_ = f.Close()
		return fmt.Errorf("dict: encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("dict: write %s: %w", path, err)
	}
	return f.Close()
}

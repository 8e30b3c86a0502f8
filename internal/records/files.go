package records

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio"
)

// FileExt is the extension of record files.
const FileExt = ".tsv"

// FileNames returns the names of the record files, in the order they are
// written.
func FileNames() []string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.name + FileExt
	}
	return names
}

// WriteFiles writes every kind of record into its own file within dir. Each
// file is replaced atomically, so readers never see a partial file.
func WriteFiles(dir string, set *Set) error {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}
	for _, k := range kinds {
		if err := writeFile(dir, k, set); err != nil {
			return fmt.Errorf("%s: %w", k.name, err)
		}
	}
	return nil
}

func writeFile(dir string, k kind, set *Set) error {
	pf, err := renameio.TempFile(dir, filepath.Join(dir, k.name+FileExt))
	if err != nil {
		return err
	}
	defer pf.Cleanup()

	bw := bufio.NewWriter(pf)
	if err := writeRecords(bw, k, set); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return pf.CloseAtomicallyReplace()
}

// writeRecords writes all records of kind k from set as tab separated lines.
func writeRecords(w io.Writer, k kind, set *Set) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	var r row
	for i, n := 0, k.len(set); i < n; i++ {
		r = r[:0]
		k.encode(set, i, &r)
		if err := cw.Write(r); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadFiles reads a record set written by WriteFiles.
func ReadFiles(dir string) (*Set, error) {
	set := &Set{}
	for _, k := range kinds {
		if err := readFile(dir, k, set); err != nil {
			return nil, fmt.Errorf("%s: %w", k.name, err)
		}
	}
	return set, nil
}

func readFile(dir string, k kind, set *Set) error {
	f, err := os.Open(filepath.Join(dir, k.name+FileExt))
	if err != nil {
		return err
	}
	defer f.Close()
	return readRecords(bufio.NewReader(f), k, set)
}

// readRecords reads tab separated records of kind k into set.
func readRecords(r io.Reader, k kind, set *Set) error {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = len(k.columns)
	cr.ReuseRecord = true
	for n := 1; ; n++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		fs := fields{f: rec}
		k.decode(set, &fs)
		if fs.err != nil {
			return fmt.Errorf("record %v: %w", n, fs.err)
		}
	}
}

package main

import (
	"bytes"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio"
)

var (
	errStoreNotExists = errors.New("file does not exist")
	errBufferClosed   = errors.New("write to closed buffer")
)

// store provides the dumps read and written by commands.
type store interface {
	open(name string) (io.ReadCloser, error)
	create(name string) (cleanupWriteCloser, error)
}

// cleanupWriteCloser is a pending file: its content replaces any prior file
// of the same name once closed, or is discarded by Cleanup.
type cleanupWriteCloser interface {
	io.WriteCloser
	Cleanup() error
}

// dumpReader reads a dump, decompressing it when its name ends in ".bz2".
type dumpReader struct {
	io.Reader
	rc  io.ReadCloser
	raw countingReader
}

func openDump(st store, name string) (*dumpReader, error) {
	rc, err := st.open(name)
	if err != nil {
		return nil, err
	}
	dr := &dumpReader{rc: rc}
	dr.raw.r = rc
	dr.Reader = &dr.raw
	if strings.HasSuffix(name, ".bz2") {
		dr.Reader = bzip2.NewReader(&dr.raw)
	}
	return dr, nil
}

// Size returns how many raw bytes have been read.
func (dr *dumpReader) Size() int64 { return dr.raw.n }

func (dr *dumpReader) Close() error { return dr.rc.Close() }

type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}

type memStore struct {
	files map[string]string
}

func (ms *memStore) open(name string) (io.ReadCloser, error) {
	content, defined := ms.files[name]
	if !defined {
		return nil, fmt.Errorf("%s: %w", name, errStoreNotExists)
	}
	return ioutil.NopCloser(strings.NewReader(content)), nil
}

func (ms *memStore) create(name string) (cleanupWriteCloser, error) {
	const minSize = 1024
	pb := &pendingBuffer{sink: func(content string) error {
		return ms.set(name, content)
	}}
	if n := len(ms.files[name]); n > minSize {
		pb.buf.Grow(n)
	} else {
		pb.buf.Grow(minSize)
	}
	return pb, nil
}

func (ms *memStore) set(name, content string) error {
	if ms.files == nil {
		ms.files = make(map[string]string)
	}
	ms.files[name] = content
	return nil
}

type pendingBuffer struct {
	buf    bytes.Buffer
	closed bool
	sink   func(string) error
}

func (pb *pendingBuffer) Write(p []byte) (int, error) {
	if pb.closed {
		return 0, errBufferClosed
	}
	return pb.buf.Write(p)
}

func (pb *pendingBuffer) WriteString(s string) (int, error) {
	if pb.closed {
		return 0, errBufferClosed
	}
	return pb.buf.WriteString(s)
}

func (pb *pendingBuffer) Close() error {
	if !pb.closed {
		pb.closed = true
		return pb.sink(pb.buf.String())
	}
	return nil
}

func (pb *pendingBuffer) Cleanup() error {
	// discarded unless closed
	pb.closed = true
	return nil
}

// fsStore resolves relative names against dir; the name "-" opens stdin.
type fsStore struct {
	dir string
}

func (fst fsStore) path(name string) string {
	if fst.dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(fst.dir, name)
}

func (fst fsStore) open(name string) (io.ReadCloser, error) {
	if name == "-" {
		return ioutil.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(fst.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, errStoreNotExists)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (fst fsStore) create(name string) (cleanupWriteCloser, error) {
	path := fst.path(name)
	pf, err := renameio.TempFile("", path)
	if err != nil {
		return nil, err
	}
	return &pendingFile{PendingFile: pf}, nil
}

// pendingFile atomically replaces its destination when closed.
type pendingFile struct {
	*renameio.PendingFile
	closed bool
}

func (pf *pendingFile) Close() error {
	if pf.closed {
		return nil
	}
	err := pf.CloseAtomicallyReplace()
	pf.closed = err == nil
	return err
}

func (pf *pendingFile) Cleanup() error {
	if pf.closed {
		return nil
	}
	pf.closed = true
	return pf.PendingFile.Cleanup()
}

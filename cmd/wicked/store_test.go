package main

import (
	"compress/bzip2"
	"errors"
	"io"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_memStore(t *testing.T) {
	storeTest{store: &memStore{}}.run(t)
}

func Test_fsStore(t *testing.T) {
	dir := t.TempDir()
	storeTest{
		store: fsStore{dir: dir},
		post: func(t *testing.T, content string) {
			b, err := ioutil.ReadFile(filepath.Join(dir, "dump.xml"))
			if assert.NoError(t, err, "unexpected read error") {
				assert.Equal(t, content, string(b), "expected file content")
			}
		},
	}.run(t)
}

type storeTest struct {
	store
	post func(t *testing.T, content string)
}

func (st storeTest) run(t *testing.T) {
	for _, step := range []struct {
		name string
		fn   func(t *testing.T)
	}{
		{"initial open fail", st.noInitOpen},
		{"init create (not)", st.writeWith("")},
		{"initial open fail (still)", st.noInitOpen},
		{"init create (actual)", st.writeWith("actual")},
		{"read back", st.expect("actual")},
		{"update", st.writeWith("actually")},
		{"read back 2", st.expect("actually")},
		{"discarded update", st.writeWith("")},
		{"read back 3", st.expect("actually")},
	} {
		if !t.Run(step.name, step.fn) {
			break
		}
	}
}

func (st storeTest) noInitOpen(t *testing.T) {
	_, err := st.open("dump.xml")
	assert.True(t, errors.Is(err, errStoreNotExists), "open should fail with errStoreNotExists, got %v", err)
}

func (st storeTest) writeWith(content string) func(t *testing.T) {
	return func(t *testing.T) {
		w, err := st.create("dump.xml")
		require.NoError(t, err, "must open for writing")
		defer func() {
			assert.NoError(t, w.Cleanup(), "cleanup should succeed")
		}()
		if content != "" {
			if _, err := io.WriteString(w, content); assert.NoError(t, err, "must write") {
				assert.NoError(t, w.Close(), "must close")
			}
		}
	}
}

func (st storeTest) expect(content string) func(t *testing.T) {
	return func(t *testing.T) {
		r, err := st.open("dump.xml")
		require.NoError(t, err, "must open")
		if b, err := ioutil.ReadAll(r); assert.NoError(t, err, "must read") {
			if assert.NoError(t, r.Close(), "must read and close") {
				assert.Equal(t, content, string(b), "expected content")
				if st.post != nil {
					t.Run("post", func(t *testing.T) { st.post(t, content) })
				}
			}
		}
	}
}

func Test_openDump(t *testing.T) {
	var ms memStore
	ms.set("dump.xml", "<page>\n</page>\n")

	dr, err := openDump(&ms, "dump.xml")
	require.NoError(t, err)
	b, err := ioutil.ReadAll(dr)
	require.NoError(t, err)
	assert.Equal(t, "<page>\n</page>\n", string(b))
	assert.Equal(t, int64(len(b)), dr.Size())
	assert.NoError(t, dr.Close())

	t.Run("bzip2", func(t *testing.T) {
		ms.set("dump.xml.bz2", "not bzip2 data")
		dr, err := openDump(&ms, "dump.xml.bz2")
		require.NoError(t, err)
		_, err = ioutil.ReadAll(dr)
		var serr bzip2.StructuralError
		assert.True(t, errors.As(err, &serr), "expected a bzip2 error, got %v", err)
	})
}

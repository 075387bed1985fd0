package pak_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/exp/mmap"

	"github.com/devodev/toy-engine/pak"
)

var (
	testString1 = "idunvovkjnreovmegihjbrqlkmfrjnb"
	testString2 = "idunvovkjnreovmsdvwrvnervnreegihjbrqlkmfrjnb"
)

func buildTestArchive(t *testing.T) []byte {
	t.Helper()
	builder := pak.NewBuilder(pak.Header{
		Author:  "devodev",
		Created: time.Now().Unix(),
		Version: 1,
	})
	if err := builder.Add("test", strings.NewReader(testString1)); err != nil {
		t.Fatal(err)
	}
	if err := builder.Add("test2", strings.NewReader(testString2)); err != nil {
		t.Fatal(err)
	}

	buf := bytes.NewBuffer([]byte{})
	if _, err := builder.WriteTo(buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestCreateAndRead(t *testing.T) {
	ar, err := pak.Open(bytes.NewReader(buildTestArchive(t)))
	if err != nil {
		t.Fatal(err)
	}

	f, err := ar.Open("test")
	if err != nil {
		t.Error(err)
	}

	result := make([]byte, len(testString1))
	if _, err := f.Read(result); err != nil {
		t.Error(err)
	}
	if strings.Compare(string(result), testString1) != 0 {
		t.Error("test string does not match up")
	}
}

func TestCreateAndReadAll(t *testing.T) {
	ar, err := pak.Open(bytes.NewReader(buildTestArchive(t)))
	if err != nil {
		t.Fatal(err)
	}

	for name, expected := range map[string]string{
		"test":  testString1,
		"test2": testString2,
	} {
		f, err := ar.ReadAll(name)
		if err != nil {
			t.Error(err)
		}
		if strings.Compare(string(f), expected) != 0 {
			t.Error("test string does not match up")
		}
	}
}

func TestEntries(t *testing.T) {
	ar, err := pak.Open(bytes.NewReader(buildTestArchive(t)))
	if err != nil {
		t.Fatal(err)
	}

	entries := ar.Entries()
	if len(entries) != 2 || entries[0] != "test" || entries[1] != "test2" {
		t.Errorf("unexpected entries: %v", entries)
	}
}

func TestOpenRejectsBadMagic(t *testing.T) {
	if _, err := pak.Open(bytes.NewReader([]byte("KAR\x00 definitely not a pak file"))); !errors.Is(err, pak.ErrBadArchive) {
		t.Errorf("expected ErrBadArchive, got %v", err)
	}
}

func TestOpenMissingEntry(t *testing.T) {
	ar, err := pak.Open(bytes.NewReader(buildTestArchive(t)))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ar.Open("nope"); !errors.Is(err, pak.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenmmap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opentest.pak")
	if err := os.WriteFile(path, buildTestArchive(t), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := mmap.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	ar, err := pak.Open(r)
	if err != nil {
		t.Fatal(err)
	}

	f, err := ar.ReadAll("test2")
	if err != nil {
		t.Error(err)
	}
	if strings.Compare(string(f), testString2) != 0 {
		t.Error("test string does not match up")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opentest.pak")
	if err := os.WriteFile(path, buildTestArchive(t), 0o644); err != nil {
		t.Fatal(err)
	}

	ar, err := pak.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer ar.Close()

	f, err := ar.ReadAll("test")
	if err != nil {
		t.Error(err)
	}
	if strings.Compare(string(f), testString1) != 0 {
		t.Error("test string does not match up")
	}
}

package reads

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
}

func TestFindIndex(t *testing.T) {
	dir := t.TempDir()

	bam := filepath.Join(dir, "a.bam")
	touch(t, bam)
	if _, found := FindIndex(bam); found {
		t.Error("should not find an index that does not exist")
	}

	touch(t, bam+".bai")
	if idx, found := FindIndex(bam); !found || idx != bam+".bai" {
		t.Error("should find file.bam.bai, got", idx)
	}

	// alternate naming: file.bai instead of file.bam.bai
	bam2 := filepath.Join(dir, "b.bam")
	touch(t, bam2)
	touch(t, filepath.Join(dir, "b.bai"))
	if idx, found := FindIndex(bam2); !found || idx != filepath.Join(dir, "b.bai") {
		t.Error("should find file.bai, got", idx)
	}
}

func TestEnsureIndexExisting(t *testing.T) {
	dir := t.TempDir()
	bam := filepath.Join(dir, "a.bam")
	touch(t, bam)
	touch(t, bam+".bai")
	if err := EnsureIndex(bam); err != nil {
		t.Error("EnsureIndex should be a no-op when the index exists, got", err)
	}
}

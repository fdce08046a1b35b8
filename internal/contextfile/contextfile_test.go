package contextfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadAcceptedExtensions(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"notes.txt", "readme.md", "doc.rst", "UPPER.MD"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("  project background  \n"), 0644); err != nil {
			t.Fatal(err)
		}
		ctx, err := Load(path)
		if err != nil {
			t.Errorf("Load(%s): %v", name, err)
			continue
		}
		if ctx.Text != "project background" {
			t.Errorf("Load(%s): expected trimmed text, got %q", name, ctx.Text)
		}
		if ctx.Name() != name {
			t.Errorf("Load(%s): expected Name %q, got %q", name, name, ctx.Name())
		}
	}
}

func TestLoadRejectsOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "binary.pdf")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "gone.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWatcherSeesRewrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ctx.md")
	if err := os.WriteFile(path, []byte("v1"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("v2"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case ctx := <-w.Updates():
		if ctx.Text != "v2" {
			t.Errorf("expected updated text 'v2', got %q", ctx.Text)
		}
	case err := <-w.Errors():
		t.Fatalf("unexpected watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for update")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ctx.md")
	if err := os.WriteFile(path, []byte("v1"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case ctx := <-w.Updates():
		t.Errorf("unexpected update for sibling write: %+v", ctx)
	case <-time.After(300 * time.Millisecond):
	}
}

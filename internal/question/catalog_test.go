package question

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.yaml")
	content := `questions:
  - "Task 1: first question"
  - "Task 2: second question"
  - "Task 3: third question"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write questions file: %v", err)
	}

	catalog, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if catalog.Count() != 3 {
		t.Fatalf("Count = %d, want 3", catalog.Count())
	}

	// 顺序必须与文件一致
	q, err := catalog.Get(1)
	if err != nil {
		t.Fatalf("Get(1) returned error: %v", err)
	}
	if q != "Task 2: second question" {
		t.Fatalf("Get(1) = %q", q)
	}

	if _, err := catalog.Get(3); err == nil {
		t.Fatalf("expected out-of-range error for index 3")
	}
	if _, err := catalog.Get(-1); err == nil {
		t.Fatalf("expected out-of-range error for index -1")
	}
}

func TestLoadCatalogEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.yaml")
	if err := os.WriteFile(path, []byte("questions: []\n"), 0o644); err != nil {
		t.Fatalf("write questions file: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for empty catalog")
	}
}

func TestCatalogAllReturnsCopy(t *testing.T) {
	catalog := NewCatalog([]string{"a", "b"})
	all := catalog.All()
	all[0] = "mutated"

	q, _ := catalog.Get(0)
	if q != "a" {
		t.Fatalf("internal state mutated via All(): %q", q)
	}
}

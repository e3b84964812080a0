package archive

import (
	"context"
	"strings"
	"testing"
)

func TestLocalFS_ImplementsStore(t *testing.T) {
	var _ Store = (*LocalFS)(nil)
	var _ Store = (*S3Store)(nil)
}

func TestLocalFS_WriteRead(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewLocalFS(dir)
	if err != nil {
		t.Fatalf("NewLocalFS: %v", err)
	}

	ctx := context.Background()
	data := []byte("Event,Event Date\nGulf War,1990-08-02\n")

	run := NewRun()
	path := run.ArtifactPath("results.csv")

	if err := fs.Write(ctx, path, data); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := fs.Read(ctx, path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if string(got) != string(data) {
		t.Errorf("got %q, want %q", got, data)
	}
}

func TestLocalFS_List(t *testing.T) {
	dir := t.TempDir()
	fs, _ := NewLocalFS(dir)
	ctx := context.Background()

	run := NewRun()
	fs.Write(ctx, run.ArtifactPath("results.csv"), []byte("a"))
	fs.Write(ctx, run.ArtifactPath("report.pdf"), []byte("b"))

	paths, err := fs.List(ctx, "runs")
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(paths) != 2 {
		t.Errorf("expected 2 paths, got %d", len(paths))
	}
}

func TestLocalFS_List_MissingPrefix(t *testing.T) {
	dir := t.TempDir()
	fs, _ := NewLocalFS(dir)

	paths, err := fs.List(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("expected no paths, got %v", paths)
	}
}

func TestRun_ArtifactPath(t *testing.T) {
	run := NewRun()
	path := run.ArtifactPath("results.csv")

	if !strings.HasPrefix(path, "runs/") {
		t.Errorf("path should live under runs/, got %q", path)
	}
	if !strings.Contains(path, run.ID) {
		t.Errorf("path should contain run ID, got %q", path)
	}
	if !strings.HasSuffix(path, "/results.csv") {
		t.Errorf("path should end with artifact name, got %q", path)
	}
}

func TestNewRun_UniqueIDs(t *testing.T) {
	if NewRun().ID == NewRun().ID {
		t.Error("run IDs should be unique")
	}
}

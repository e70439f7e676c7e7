package ffmetadata_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chapterize/internal/media/ffmetadata"
	"chapterize/internal/proc"
	"chapterize/internal/services"
	"chapterize/internal/testsupport"
)

func TestAlbumFromTagsUsesAlbumForTitle(t *testing.T) {
	album := ffmetadata.AlbumFromTags([]string{
		";FFMETADATA1",
		"title=Track One",
		"album=Dune",
		"artist=Frank Herbert",
	})
	want := ffmetadata.Album{Title: "Dune", Album: "Dune", Artist: "Frank Herbert"}
	if album != want {
		t.Fatalf("album = %+v, want %+v", album, want)
	}
}

func TestBuildDefaultsMissingAlbumTagsToUnknown(t *testing.T) {
	album := ffmetadata.AlbumFromTags([]string{";FFMETADATA1", "title=Track One"})
	doc := ffmetadata.Build(album, nil)
	want := ";FFMETADATA1\ntitle=unknown\nalbum=unknown\nartist=unknown\n"
	if doc != want {
		t.Fatalf("doc = %q, want %q", doc, want)
	}
}

func TestBuildRendersChaptersInOrder(t *testing.T) {
	album := ffmetadata.Album{Title: "Dune", Album: "Dune", Artist: "Frank Herbert"}
	entries := []ffmetadata.Entry{
		{Start: 0, End: 61 * time.Second, Title: "Prologue"},
		{Start: 61 * time.Second, End: 122 * time.Second, Title: "Chapter 2"},
	}
	doc := ffmetadata.Build(album, entries)
	want := strings.Join([]string{
		";FFMETADATA1",
		"title=Dune",
		"album=Dune",
		"artist=Frank Herbert",
		"[CHAPTER]",
		"START=0",
		"END=61000000000",
		"title=Prologue",
		"[CHAPTER]",
		"START=61000000000",
		"END=122000000000",
		"title=Chapter 2",
	}, "\n") + "\n"
	if doc != want {
		t.Fatalf("doc mismatch\n got: %q\nwant: %q", doc, want)
	}
	if again := ffmetadata.Build(album, entries); again != doc {
		t.Fatal("expected identical inputs to produce identical documents")
	}
}

func TestBuildEscapesSpecialCharacters(t *testing.T) {
	doc := ffmetadata.Build(ffmetadata.Album{Title: "A=B", Album: "A=B", Artist: "X;Y"}, []ffmetadata.Entry{
		{Start: 0, End: time.Second, Title: "#1"},
	})
	for _, want := range []string{`title=A\=B`, `artist=X\;Y`, `title=\#1`} {
		if !strings.Contains(doc, want+"\n") {
			t.Fatalf("expected %q in document:\n%s", want, doc)
		}
	}
}

func TestWriteTempUsesUniqueNames(t *testing.T) {
	dir := t.TempDir()
	first, err := ffmetadata.WriteTemp(dir, "doc-a")
	if err != nil {
		t.Fatalf("WriteTemp returned error: %v", err)
	}
	second, err := ffmetadata.WriteTemp(dir, "doc-b")
	if err != nil {
		t.Fatalf("WriteTemp returned error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct paths, got %q twice", first)
	}
	if filepath.Dir(first) != dir {
		t.Fatalf("expected document in %s, got %s", dir, first)
	}
	base := filepath.Base(first)
	if !strings.HasPrefix(base, "metadata-") || !strings.HasSuffix(base, ".txt") {
		t.Fatalf("unexpected document name %q", base)
	}
	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	if string(data) != "doc-a" {
		t.Fatalf("unexpected document content %q", data)
	}
}

func TestDumpTags(t *testing.T) {
	runner := &testsupport.FakeRunner{OutputFunc: func(cmd proc.Command) (string, int, error) {
		return ";FFMETADATA1\nalbum=Dune\nartist=Frank Herbert\n", 0, nil
	}}
	lines, err := ffmetadata.DumpTags(context.Background(), runner, "ffmpeg", "01 - intro.mp3")
	if err != nil {
		t.Fatalf("DumpTags returned error: %v", err)
	}
	if len(lines) != 3 || lines[1] != "album=Dune" {
		t.Fatalf("unexpected lines %q", lines)
	}
	calls := runner.Calls()
	want := "ffmpeg -i '01 - intro.mp3' -f ffmetadata -v quiet -"
	if len(calls) != 1 || calls[0].String() != want {
		t.Fatalf("unexpected command: %v", calls)
	}
}

func TestDumpTagsFailsOnNonZeroExit(t *testing.T) {
	runner := &testsupport.FakeRunner{OutputFunc: func(cmd proc.Command) (string, int, error) {
		return "", 1, nil
	}}
	_, err := ffmetadata.DumpTags(context.Background(), runner, "ffmpeg", "broken.mp3")
	if !errors.Is(err, services.ErrProbeFailure) {
		t.Fatalf("expected probe failure, got %v", err)
	}
}

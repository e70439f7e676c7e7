package ffmetadata

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Header is the first line of every ffmetadata document.
const Header = ";FFMETADATA1"

// Unknown fills album fields that the first track does not carry.
const Unknown = "unknown"

// Album holds the container-level tags of the merged book.
type Album struct {
	Title  string
	Album  string
	Artist string
}

// Entry is one chapter block. Start and End are offsets from the beginning of
// the merged stream.
type Entry struct {
	Start time.Duration
	End   time.Duration
	Title string
}

// AlbumFromTags derives the book tags from the first track's tag dump. The
// book title comes from the track's album tag; a per-track title names a
// chapter, not the book.
func AlbumFromTags(lines []string) Album {
	album := Album{Title: Unknown, Album: Unknown, Artist: Unknown}
	if value, ok := LookupTag("album", lines); ok {
		album.Title = value
		album.Album = value
	}
	if value, ok := LookupTag("artist", lines); ok {
		album.Artist = value
	}
	return album
}

// Build renders the metadata document. No timebase is written, so ffmpeg
// reads START and END as nanoseconds.
func Build(album Album, entries []Entry) string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteByte('\n')
	writeField(&b, "title", orUnknown(album.Title))
	writeField(&b, "album", orUnknown(album.Album))
	writeField(&b, "artist", orUnknown(album.Artist))
	for _, entry := range entries {
		b.WriteString("[CHAPTER]\n")
		b.WriteString("START=" + strconv.FormatInt(entry.Start.Nanoseconds(), 10) + "\n")
		b.WriteString("END=" + strconv.FormatInt(entry.End.Nanoseconds(), 10) + "\n")
		writeField(&b, "title", entry.Title)
	}
	return b.String()
}

// WriteTemp writes doc to a uniquely named file in dir and returns its path.
func WriteTemp(dir, doc string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create metadata dir: %w", err)
	}
	path := filepath.Join(dir, "metadata-"+uuid.NewString()+".txt")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("write metadata document: %w", err)
	}
	return path, nil
}

func writeField(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(Escape(value))
	b.WriteByte('\n')
}

func orUnknown(value string) string {
	if strings.TrimSpace(value) == "" {
		return Unknown
	}
	return value
}

package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

type tarEntry struct {
	name    string
	content string
	mode    int64
	link    string
	dir     bool
}

func writeTar(t *testing.T, path string, compress string, entries []tarEntry) {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, entry := range entries {
		switch {
		case entry.dir:
			if err := tw.WriteHeader(&tar.Header{Name: entry.name, Typeflag: tar.TypeDir, Mode: 0755}); err != nil {
				t.Fatalf("write dir header: %v", err)
			}
		case entry.link != "":
			if err := tw.WriteHeader(&tar.Header{Name: entry.name, Typeflag: tar.TypeSymlink, Linkname: entry.link, Mode: 0777}); err != nil {
				t.Fatalf("write symlink header: %v", err)
			}
		default:
			mode := entry.mode
			if mode == 0 {
				mode = 0644
			}
			header := &tar.Header{Name: entry.name, Typeflag: tar.TypeReg, Mode: mode, Size: int64(len(entry.content))}
			if err := tw.WriteHeader(header); err != nil {
				t.Fatalf("write file header: %v", err)
			}
			if _, err := tw.Write([]byte(entry.content)); err != nil {
				t.Fatalf("write file content: %v", err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar writer: %v", err)
	}

	var out bytes.Buffer
	switch compress {
	case "":
		out = buf
	case "gzip":
		gz := gzip.NewWriter(&out)
		if _, err := gz.Write(buf.Bytes()); err != nil {
			t.Fatalf("gzip write: %v", err)
		}
		if err := gz.Close(); err != nil {
			t.Fatalf("gzip close: %v", err)
		}
	case "xz":
		xw, err := xz.NewWriter(&out)
		if err != nil {
			t.Fatalf("xz writer: %v", err)
		}
		if _, err := xw.Write(buf.Bytes()); err != nil {
			t.Fatalf("xz write: %v", err)
		}
		if err := xw.Close(); err != nil {
			t.Fatalf("xz close: %v", err)
		}
	case "zstd":
		zw, err := zstd.NewWriter(&out)
		if err != nil {
			t.Fatalf("zstd writer: %v", err)
		}
		if _, err := zw.Write(buf.Bytes()); err != nil {
			t.Fatalf("zstd write: %v", err)
		}
		if err := zw.Close(); err != nil {
			t.Fatalf("zstd close: %v", err)
		}
	default:
		t.Fatalf("unknown compression %q", compress)
	}

	if err := os.WriteFile(path, out.Bytes(), 0644); err != nil {
		t.Fatalf("write archive file: %v", err)
	}
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write archive file: %v", err)
	}
}

func TestExtractTarCompressionVariants(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		compress string
	}{
		{"plain", "tool.tar", ""},
		{"gzip", "tool.tar.gz", "gzip"},
		{"xz", "tool.tar.xz", "xz"},
		{"zstd", "tool.tar.zst", "zstd"},
		{"gzip_under_tgz_name", "tool.tgz", "gzip"},
		// The name lies about the compression; only the magic bytes decide.
		{"xz_under_gz_name", "tool.tar.gz", "xz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			archivePath := filepath.Join(tmpDir, tt.filename)
			writeTar(t, archivePath, tt.compress, []tarEntry{
				{name: "tool-1.0", dir: true},
				{name: "tool-1.0/bin", dir: true},
				{name: "tool-1.0/bin/tool", content: "#!/bin/sh\necho tool\n", mode: 0755},
				{name: "tool-1.0/README", content: "readme"},
			})

			destDir := filepath.Join(tmpDir, "out")
			if err := NewExtractor().Extract(archivePath, destDir); err != nil {
				t.Fatalf("Extract() error = %v", err)
			}

			content, err := os.ReadFile(filepath.Join(destDir, "tool-1.0", "bin", "tool"))
			if err != nil {
				t.Fatalf("read extracted file: %v", err)
			}
			if string(content) != "#!/bin/sh\necho tool\n" {
				t.Errorf("extracted content = %q", content)
			}
		})
	}
}

func TestExtractTarSymlink(t *testing.T) {
	tmpDir := t.TempDir()
	archivePath := filepath.Join(tmpDir, "tool.tar.gz")
	writeTar(t, archivePath, "gzip", []tarEntry{
		{name: "tool.real", content: "binary", mode: 0755},
		{name: "tool", link: "tool.real"},
	})

	destDir := filepath.Join(tmpDir, "out")
	if err := NewExtractor().Extract(archivePath, destDir); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	target, err := os.Readlink(filepath.Join(destDir, "tool"))
	if err != nil {
		t.Fatalf("readlink: %v", err)
	}
	if target != "tool.real" {
		t.Errorf("symlink target = %q, want tool.real", target)
	}
}

func TestExtractZip(t *testing.T) {
	tmpDir := t.TempDir()
	archivePath := filepath.Join(tmpDir, "tool.zip")
	writeZip(t, archivePath, map[string]string{
		"tool/tool":      "binary content",
		"tool/README.md": "docs",
	})

	destDir := filepath.Join(tmpDir, "out")
	if err := NewExtractor().Extract(archivePath, destDir); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	content, err := os.ReadFile(filepath.Join(destDir, "tool", "tool"))
	if err != nil {
		t.Fatalf("read extracted file: %v", err)
	}
	if string(content) != "binary content" {
		t.Errorf("extracted content = %q", content)
	}
}

func TestExtractRejectsTraversal(t *testing.T) {
	tmpDir := t.TempDir()
	archivePath := filepath.Join(tmpDir, "evil.tar")
	writeTar(t, archivePath, "", []tarEntry{
		{name: "../escape", content: "nope"},
	})

	destDir := filepath.Join(tmpDir, "out")
	if err := NewExtractor().Extract(archivePath, destDir); err == nil {
		t.Fatal("Extract() succeeded on traversal entry, want error")
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "escape")); !os.IsNotExist(err) {
		t.Error("traversal entry was written outside dest dir")
	}
}

func TestExtractGarbageReportsUnsupported(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"garbage_tar", "junk.tar.gz"},
		{"garbage_zip", "junk.zip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			archivePath := filepath.Join(tmpDir, tt.filename)
			if err := os.WriteFile(archivePath, []byte("this is not an archive"), 0644); err != nil {
				t.Fatal(err)
			}

			err := NewExtractor().Extract(archivePath, filepath.Join(tmpDir, "out"))
			var unsupported *UnsupportedError
			if !errors.As(err, &unsupported) {
				t.Fatalf("Extract() error = %v, want *UnsupportedError", err)
			}
			if unsupported.Path != archivePath {
				t.Errorf("UnsupportedError.Path = %q, want %q", unsupported.Path, archivePath)
			}
		})
	}
}

func TestExtractNonArchive(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "tool-linux-amd64")
	if err := os.WriteFile(path, []byte("binary"), 0755); err != nil {
		t.Fatal(err)
	}

	err := NewExtractor().Extract(path, filepath.Join(tmpDir, "out"))
	var unsupported *UnsupportedError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Extract() error = %v, want *UnsupportedError", err)
	}
}

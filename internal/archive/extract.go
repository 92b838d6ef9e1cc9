package archive

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// UnsupportedError reports an archive that could not be opened: corrupt
// data or a format the classifier misidentified.
type UnsupportedError struct {
	Path string
	Err  error
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported archive %s: %v", e.Path, e.Err)
}

func (e *UnsupportedError) Unwrap() error { return e.Err }

// Compression magic numbers, checked against the leading bytes of a
// tar-family file so the compression never has to be guessed from the name.
var (
	magicGzip  = []byte{0x1f, 0x8b}
	magicBzip2 = []byte{'B', 'Z', 'h'}
	magicXZ    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	magicZstd  = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Extractor unpacks archives into destination directories.
type Extractor struct{}

// NewExtractor creates a new extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract unpacks the archive at archivePath into destDir, dispatching on
// the classified kind. KindNone is a caller error and is reported as an
// UnsupportedError.
func (e *Extractor) Extract(archivePath, destDir string) error {
	switch Classify(filepath.Base(archivePath)) {
	case KindZip:
		return e.extractZip(archivePath, destDir)
	case KindTar:
		return e.extractTar(archivePath, destDir)
	default:
		return &UnsupportedError{Path: archivePath, Err: fmt.Errorf("not an archive")}
	}
}

// extractZip extracts a .zip archive to destDir.
func (e *Extractor) extractZip(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return &UnsupportedError{Path: archivePath, Err: err}
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	for _, file := range reader.File {
		target, err := safeJoin(destDir, file.Name)
		if err != nil {
			return err
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("create parent dir for %s: %w", target, err)
		}

		src, err := file.Open()
		if err != nil {
			return fmt.Errorf("open zip entry %s: %w", file.Name, err)
		}

		if file.Mode()&os.ModeSymlink != 0 {
			linkTarget, err := io.ReadAll(src)
			src.Close()
			if err != nil {
				return fmt.Errorf("read symlink target %s: %w", file.Name, err)
			}
			if err := os.Symlink(string(linkTarget), target); err != nil {
				return fmt.Errorf("create symlink %s: %w", target, err)
			}
			continue
		}

		mode := file.Mode().Perm()
		if mode == 0 {
			mode = 0644
		}
		out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
		if err != nil {
			src.Close()
			return fmt.Errorf("create file %s: %w", target, err)
		}
		if _, err := io.Copy(out, src); err != nil {
			out.Close()
			src.Close()
			return fmt.Errorf("write file %s: %w", target, err)
		}
		out.Close()
		src.Close()
	}

	return nil
}

// extractTar extracts a tar-family archive to destDir, self-detecting
// gzip, bzip2, xz, or zstd compression from the stream.
func (e *Extractor) extractTar(archivePath, destDir string) error {
	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer archiveFile.Close()

	stream, closeStream, err := decompress(archivePath, archiveFile)
	if err != nil {
		return err
	}
	if closeStream != nil {
		defer closeStream()
	}

	tarReader := tar.NewReader(stream)

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	sawEntry := false
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if !sawEntry {
				return &UnsupportedError{Path: archivePath, Err: err}
			}
			return fmt.Errorf("read tar header: %w", err)
		}
		sawEntry = true

		target, err := safeJoin(destDir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}

		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("create parent dir for %s: %w", target, err)
			}
			outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode).Perm())
			if err != nil {
				return fmt.Errorf("create file %s: %w", target, err)
			}
			if _, err := io.Copy(outFile, tarReader); err != nil {
				outFile.Close()
				return fmt.Errorf("write file %s: %w", target, err)
			}
			outFile.Close()

		case tar.TypeSymlink:
			if err := os.Symlink(header.Linkname, target); err != nil {
				return fmt.Errorf("create symlink %s: %w", target, err)
			}

		default:
			// Skip other entry types (devices, fifos, etc.)
			continue
		}
	}

	if !sawEntry {
		return &UnsupportedError{Path: archivePath, Err: fmt.Errorf("empty or unreadable tar stream")}
	}

	return nil
}

// decompress wraps the raw archive stream in the decompressor indicated by
// its leading magic bytes. Plain tar passes through unchanged. The second
// return value, when non-nil, must be called after the stream is consumed.
func decompress(archivePath string, raw io.Reader) (io.Reader, func(), error) {
	buffered := bufio.NewReader(raw)
	magic, err := buffered.Peek(6)
	if err != nil && len(magic) == 0 {
		return nil, nil, &UnsupportedError{Path: archivePath, Err: fmt.Errorf("read magic bytes: %w", err)}
	}

	switch {
	case bytes.HasPrefix(magic, magicGzip):
		gz, err := gzip.NewReader(buffered)
		if err != nil {
			return nil, nil, &UnsupportedError{Path: archivePath, Err: err}
		}
		return gz, func() { gz.Close() }, nil

	case bytes.HasPrefix(magic, magicBzip2):
		return bzip2.NewReader(buffered), nil, nil

	case bytes.HasPrefix(magic, magicXZ):
		xzReader, err := xz.NewReader(buffered)
		if err != nil {
			return nil, nil, &UnsupportedError{Path: archivePath, Err: err}
		}
		return xzReader, nil, nil

	case bytes.HasPrefix(magic, magicZstd):
		zr, err := zstd.NewReader(buffered)
		if err != nil {
			return nil, nil, &UnsupportedError{Path: archivePath, Err: err}
		}
		return zr.IOReadCloser(), func() { zr.Close() }, nil

	default:
		return buffered, nil, nil
	}
}

// safeJoin joins name under destDir and rejects path traversal.
func safeJoin(destDir, name string) (string, error) {
	target := filepath.Join(destDir, name)
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("illegal file path: %s", name)
	}
	return target, nil
}

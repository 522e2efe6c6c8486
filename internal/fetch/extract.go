package fetch

import (
	"archive/tar"
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alnah/go-tex2speech/internal/fileutil"
)

// Sentinel errors for extraction.
var (
	ErrExtract  = errors.New("extracting source bundle failed")
	ErrNoSource = errors.New("article has no LaTeX source (PDF only)")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// tarMagicOffset is where POSIX and GNU tar headers store "ustar".
const tarMagicOffset = 257

var (
	gzipMagic = []byte{0x1f, 0x8b}
	tarMagic  = []byte("ustar")
	pdfMagic  = []byte("%PDF")
)

// Extract unpacks a source bundle read from r into dest.
// Tar archives (gzipped or not) are expanded member by member; any other
// payload is written to dest/fallbackName. PDF payloads return ErrNoSource.
func Extract(r io.Reader, dest, fallbackName string) error {
	if err := os.MkdirAll(dest, dirPermissions); err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrExtract, dest, err)
	}

	br := bufio.NewReader(r)
	magic, _ := br.Peek(len(gzipMagic))

	var src io.Reader = br
	if bytes.Equal(magic, gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrExtract, err)
		}
		defer gz.Close()
		src = gz
	}

	payload := bufio.NewReaderSize(src, 1024)
	head, _ := payload.Peek(tarMagicOffset + len(tarMagic))

	switch {
	case isTar(head):
		return extractTar(payload, dest)
	case bytes.HasPrefix(head, pdfMagic):
		return ErrNoSource
	default:
		return writeMember(filepath.Join(dest, fallbackName), payload)
	}
}

func isTar(head []byte) bool {
	end := tarMagicOffset + len(tarMagic)
	return len(head) >= end && bytes.Equal(head[tarMagicOffset:end], tarMagic)
}

// extractTar writes regular files and directories; links and devices are skipped.
func extractTar(r io.Reader, dest string) error {
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExtract, err)
		}

		target, err := fileutil.SafeJoin(dest, hdr.Name)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrExtract, err)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, dirPermissions); err != nil {
				return fmt.Errorf("%w: %v", ErrExtract, err)
			}
		case tar.TypeReg:
			if err := writeMember(target, tr); err != nil {
				return err
			}
		}
	}
}

func writeMember(path string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrExtract, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermissions) // #nosec G304 -- path checked by SafeJoin
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExtract, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: writing %s: %w", ErrExtract, filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrExtract, err)
	}
	return nil
}

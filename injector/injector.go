package injector

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/Gbsyi/swagger-codegen-bin/apperr"
	"github.com/Gbsyi/swagger-codegen-bin/logger"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// Result summarizes an extraction
type Result struct {
	Folder string
	Files  int
	Dirs   int
	Bytes  int64
}

// Clear removes folder if it is a directory. A file or symlink at that
// path is left untouched and reported as apperr.OutputPathIsFile.
func Clear(folder string) error {
	info, err := os.Lstat(folder)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("output folder absent", "folder", folder)
		return nil
	}
	if err != nil {
		return apperr.New(apperr.OutputRemoveFailed, err)
	}

	if !info.IsDir() {
		logger.Debug("output path is not a folder", "folder", folder, "mode", info.Mode().String())
		return apperr.New(apperr.OutputPathIsFile, nil)
	}

	logger.Debug("removing output folder", "folder", folder)
	if err := os.RemoveAll(folder); err != nil {
		return apperr.New(apperr.OutputRemoveFailed, err)
	}
	return nil
}

// Install replaces folder with the contents of the zip archive
func Install(archive []byte, folder string) (*Result, error) {
	if err := Clear(folder); err != nil {
		return nil, err
	}

	if err := os.Mkdir(folder, dirPerm); err != nil {
		logger.Debug("failed to create output folder", "folder", folder, "error", err)
		return nil, apperr.New(apperr.OutputCreateFailed, err)
	}

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		logger.Debug("failed to open archive", "bytes", len(archive), "error", err)
		return nil, apperr.New(apperr.ArchiveReadFailed, err)
	}

	result, err := Extract(zr, folder)
	if err != nil {
		return nil, apperr.New(apperr.ArchiveExtractFailed, err)
	}

	logger.Debug("extracted archive", "folder", folder, "files", result.Files, "dirs", result.Dirs, "bytes", result.Bytes)
	return result, nil
}

// Extract writes every entry of zr below folder, which must already exist.
// Entries resolving outside folder and symlinks are rejected.
func Extract(zr *zip.Reader, folder string) (*Result, error) {
	result := &Result{Folder: folder}

	for _, f := range zr.File {
		target, err := entryPath(folder, f.Name)
		if err != nil {
			return nil, err
		}

		mode := f.Mode()
		switch {
		case mode.IsDir() || strings.HasSuffix(f.Name, "/"):
			if err := os.MkdirAll(target, dirPerm); err != nil {
				return nil, fmt.Errorf("failed to create %s: %w", f.Name, err)
			}
			result.Dirs++
		case mode&fs.ModeSymlink != 0:
			return nil, fmt.Errorf("unsupported symlink entry %s", f.Name)
		default:
			n, err := extractFile(f, target)
			if err != nil {
				return nil, err
			}
			result.Files++
			result.Bytes += n
		}
	}

	return result, nil
}

// entryPath resolves an archive entry name below folder
func entryPath(folder, name string) (string, error) {
	rel := filepath.FromSlash(name)
	if strings.Contains(name, `\`) || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("illegal entry path %q", name)
	}
	return filepath.Join(folder, rel), nil
}

func extractFile(f *zip.File, target string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
		return 0, fmt.Errorf("failed to create parent of %s: %w", f.Name, err)
	}

	perm := f.Mode().Perm()
	if perm == 0 {
		perm = filePerm
	}

	rc, err := f.Open()
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", f.Name, err)
	}

	n, err := io.Copy(out, rc)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return n, fmt.Errorf("failed to write %s: %w", f.Name, err)
	}
	return n, nil
}

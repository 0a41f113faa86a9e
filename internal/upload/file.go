package upload

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// FileHandle is a file read fully into memory, ready to be sent once
type FileHandle struct {
	Path     string // absolute, cleaned path the file was read from
	Filename string // base name, no directory component
	Data     []byte
}

// Request is a single upload, built by the orchestrator and not modified afterwards
type Request struct {
	File        *FileHandle
	MimeType    string
	ExpireAfter int64 // seconds
}

// Acquire resolves path and reads the regular file it names.
// Failures are classified by kind; the file is never modified.
func Acquire(path string) (*FileHandle, error) {
	if path == "" {
		return nil, InvalidArgument("file path cannot be empty")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &Error{Kind: KindIOError, Path: path, Err: err}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, classifyOSError(abs, err)
	}

	switch {
	case info.IsDir():
		return nil, &Error{Kind: KindIsDirectory, Path: abs}
	case !info.Mode().IsRegular():
		return nil, &Error{Kind: KindNotARegularFile, Path: abs}
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, classifyOSError(abs, err)
	}

	return &FileHandle{
		Path:     abs,
		Filename: filepath.Base(abs),
		Data:     data,
	}, nil
}

// classifyOSError maps a stat/read failure to an error kind.
// EPERM is checked before EACCES since both match fs.ErrPermission.
func classifyOSError(path string, err error) *Error {
	kind := KindIOError
	switch {
	case errors.Is(err, syscall.EPERM):
		kind = KindOperationNotPermitted
	case errors.Is(err, syscall.EACCES), errors.Is(err, fs.ErrPermission):
		kind = KindPermissionDenied
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		kind = KindNotFound
	case errors.Is(err, syscall.EMFILE), errors.Is(err, syscall.ENFILE):
		kind = KindResourceExhausted
	case errors.Is(err, syscall.ENAMETOOLONG):
		kind = KindPathTooLong
	}

	e := &Error{Kind: kind, Path: path}
	if kind == KindIOError {
		e.Err = err
	}
	return e
}

// Package mounts provides template mounts as fs.FS filesystems. A mount is
// either an embedded filesystem, re-rooted at the mount name, or a
// directory on disk that overrides it.
package mounts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileMount is an fs.FS mounted from either an embedded fs.FS or a
// directory.
type FileMount struct {
	MountName string
	fs.FS
}

// ErrInvalidPath reports a mount name that is not a valid fs.ValidPath.
type ErrInvalidPath struct {
	mountName string
}

// Error fulfills the Error interface requirement for ErrInvalidPath.
func (e ErrInvalidPath) Error() string {
	return fmt.Sprintf("mount name %q is not a valid fs.ValidPath path", e.mountName)
}

// NewFileMount mounts dirPath if it is not empty, otherwise the mountName
// subdirectory of embeddedFS. Given
//
//	//go:embed templates
//	var TemplatesFS embed.FS
//
// NewFileMount("templates", TemplatesFS, "") serves "templates/memory.go.tmpl"
// as "memory.go.tmpl", the same path a directory mount of an override
// directory serves it under.
func NewFileMount(mountName string, embeddedFS fs.FS, dirPath string) (*FileMount, error) {
	if mountName == "" {
		return nil, errors.New("no mount name provided for new file mount")
	}
	if !fs.ValidPath(mountName) {
		return nil, ErrInvalidPath{mountName}
	}

	if dirPath == "" {
		subFS, err := fs.Sub(embeddedFS, mountName)
		if err != nil {
			return nil, fmt.Errorf("could not sub-mount embedded fs at %q: %w", mountName, err)
		}
		return &FileMount{mountName, subFS}, nil
	}

	s, err := os.Stat(dirPath)
	if err != nil {
		return nil, fmt.Errorf("new mount at %q error: %w", dirPath, err)
	}
	if !s.IsDir() {
		return nil, fmt.Errorf("new mount at %q is not a directory", dirPath)
	}
	return &FileMount{mountName, os.DirFS(dirPath)}, nil
}

// Materialize writes the mount's files under root, which must be an
// existing directory. Existing files are not overwritten.
func (fm *FileMount) Materialize(root string) error {
	s, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("materialize root %q invalid: %w", root, err)
	}
	if !s.IsDir() {
		return fmt.Errorf("materialize root %q is not a directory", root)
	}

	return fs.WalkDir(fm.FS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		fullPath := filepath.Join(root, filepath.FromSlash(path))
		if d.IsDir() {
			if err := os.MkdirAll(fullPath, 0755); err != nil {
				return fmt.Errorf("could not make dir %q: %w", fullPath, err)
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		data, err := fs.ReadFile(fm.FS, path)
		if err != nil {
			return fmt.Errorf("could not read %q from mount %s: %w", path, fm.MountName, err)
		}
		f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err != nil {
			return fmt.Errorf("could not create %q: %w", fullPath, err)
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not write %q: %w", fullPath, err)
		}
		return f.Close()
	})
}

// Files lists the regular files in the mount in lexical order.
func (fm *FileMount) Files() ([]string, error) {
	var files []string
	err := fs.WalkDir(fm.FS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

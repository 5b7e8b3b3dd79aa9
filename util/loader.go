package util

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ImageFile represents an encoded image file.
type ImageFile struct {
	// Path is the path to the image file.
	Path string
	// Data is the raw bytes of the image file.
	Data []byte
}

// FileUnreadableError is returned when a file or directory cannot be read.
type FileUnreadableError struct {
	Path string
	Err  error
}

func (e *FileUnreadableError) Error() string {
	return fmt.Sprintf("unable to read %s: %v", e.Path, e.Err)
}

func (e *FileUnreadableError) Unwrap() error {
	return e.Err
}

// LoadImageFile reads a whole image file into memory.
//
// Arguments:
// - path: Path of the file.
//
// Returns:
// - ImageFile: The file path and its raw bytes.
// - error: A *FileUnreadableError if the file cannot be read.
func LoadImageFile(path string) (ImageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImageFile{}, &FileUnreadableError{Path: path, Err: err}
	}
	return ImageFile{Path: path, Data: data}, nil
}

// LoadDirectoryImageFiles reads all PNG files from a directory.
//
// Arguments:
// - dir: Directory path containing image files.
//
// Returns:
// - []ImageFile: The files sorted by name, each containing its raw bytes.
// - error: A *FileUnreadableError if the directory or any file cannot be read.
func LoadDirectoryImageFiles(dir string) ([]ImageFile, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, &FileUnreadableError{Path: dir, Err: err}
	}

	var images []ImageFile
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(file.Name()), ".png") {
			continue
		}

		image, err := LoadImageFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return nil, err
		}
		images = append(images, image)
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].Path < images[j].Path
	})

	return images, nil
}

// Package storage keeps uploaded images and videos on local disk, one
// subdirectory per content type.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
	"wonders-cms/internal/logger"

	"github.com/gabriel-vasile/mimetype"
)

// Upload subdirectories, relative to the store root.
const (
	DirHomeVideos        = "home/videos"
	DirHomeImages        = "home/images"
	DirJelajahi          = "jelajahi/images"
	DirWisataHero        = "wisata/hero"
	DirWisataCards       = "wisata/cards"
	DirWisataPages       = "wisata/pages"
	DirKulinerKategori   = "kuliner/kategori"
	DirKulinerItems      = "kuliner/items"
	DirKulinerItemVideos = "kuliner/items/video"
	DirKulinerPages      = "kuliner/pages"
	DirEvent             = "event"
	DirAdmin             = "admin"
	DirThingsToDo        = "things-to-do"
	DirHero              = "hero"
	DirEditor            = "editor"
)

// Dirs lists every upload subdirectory.
var Dirs = []string{
	DirHomeVideos, DirHomeImages, DirJelajahi,
	DirWisataHero, DirWisataCards, DirWisataPages,
	DirKulinerKategori, DirKulinerItems, DirKulinerItemVideos, DirKulinerPages,
	DirEvent, DirAdmin, DirThingsToDo, DirHero, DirEditor,
}

// Kind restricts what an upload may contain.
type Kind int

const (
	KindAny Kind = iota
	KindImage
	KindVideo
)

// sniffLen is how much of an upload is read to detect its type.
const sniffLen = 3072

// ErrUnsupportedType is returned when an upload's content does not match its Kind.
var ErrUnsupportedType = errors.New("unsupported file type")

// File identifies a stored upload.
type File struct {
	Dir  string
	Name string
}

// Store writes uploads below a root directory.
type Store struct {
	root string
	log  logger.Logger
	now  func() time.Time
}

// New creates a Store rooted at root.
func New(root string, log logger.Logger) *Store {
	return &Store{root: root, log: log, now: time.Now}
}

// Root returns the directory the store writes below.
func (s *Store) Root() string {
	return s.root
}

// EnsureDirs creates every upload subdirectory.
func (s *Store) EnsureDirs() error {
	for _, dir := range Dirs {
		if err := os.MkdirAll(filepath.Join(s.root, filepath.FromSlash(dir)), 0o755); err != nil {
			return fmt.Errorf("failed to create upload dir %s: %w", dir, err)
		}
	}
	return nil
}

// Save stores a multipart upload in dir and returns the generated filename.
func (s *Store) Save(fh *multipart.FileHeader, dir string, kind Kind) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()
	return s.Put(src, fh.Filename, dir, kind)
}

// Put stores the content of r in dir. The generated name keeps the
// extension of originalName, falling back to the detected type's extension.
func (s *Store) Put(r io.Reader, originalName, dir string, kind Kind) (string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	if !allowed(kind, mt.String()) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = mt.Extension()
	}
	name := s.newName(ext)

	target := s.Path(dir, name)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	if _, err := io.Copy(dst, io.MultiReader(bytes.NewReader(head), r)); err != nil {
		dst.Close()
		os.Remove(target)
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return name, nil
}

// Remove deletes a stored file. An empty name or a missing file is not an error.
func (s *Store) Remove(dir, name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(s.Path(dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s/%s: %w", dir, name, err)
	}
	return nil
}

// RemoveAll deletes every file, logging failures instead of returning them.
func (s *Store) RemoveAll(files []File) {
	for _, f := range files {
		if err := s.Remove(f.Dir, f.Name); err != nil {
			s.log.Error(err, "failed to remove upload")
			continue
		}
		if f.Name != "" {
			s.log.Debug(fmt.Sprintf("removed upload %s/%s", f.Dir, f.Name))
		}
	}
}

// Exists reports whether a stored file is present.
func (s *Store) Exists(dir, name string) bool {
	if name == "" {
		return false
	}
	info, err := os.Stat(s.Path(dir, name))
	return err == nil && info.Mode().IsRegular()
}

// Path returns the on-disk location of a stored file. Only the base of
// name is used so a stored value can never point outside dir.
func (s *Store) Path(dir, name string) string {
	return filepath.Join(s.root, filepath.FromSlash(dir), filepath.Base(name))
}

// URL returns the public path a stored file is served from.
func URL(dir, name string) string {
	return path.Join("/uploads", dir, name)
}

func (s *Store) newName(ext string) string {
	return fmt.Sprintf("%d-%d%s", s.now().UnixMilli(), rand.IntN(1e9), ext)
}

func allowed(kind Kind, mime string) bool {
	switch kind {
	case KindImage:
		return strings.HasPrefix(mime, "image/")
	case KindVideo:
		return strings.HasPrefix(mime, "video/")
	default:
		return true
	}
}

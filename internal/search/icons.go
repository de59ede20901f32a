package search

import (
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash"

	"betterfinder/internal/cache"
)

// Icon is the per-path decoration the presentation layer renders next to a
// result row.
type Icon struct {
	Glyph string
	Kind  string
}

const iconCacheCapacity = 512

// iconStore memoizes derived icons behind the bounded FIFO cache. A miss is
// recomputed transparently, so the cache policy affects only latency.
type iconStore struct {
	cache *cache.Cache[uint64, Icon]
}

func newIconStore() *iconStore {
	return &iconStore{cache: cache.New[uint64, Icon](iconCacheCapacity)}
}

// iconKey derives the cache key from the path and a variant tag, so the same
// path can carry differently rendered variants without colliding.
func iconKey(path, variant string) uint64 {
	h := xxhash.New()
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write([]byte(variant))
	return h.Sum64()
}

func (s *iconStore) get(path, variant string) Icon {
	key := iconKey(path, variant)
	if icon, ok := s.cache.TryGet(key); ok {
		return icon
	}
	icon := deriveIcon(path)
	s.cache.Put(key, icon)
	return icon
}

var iconKinds = map[string]Icon{
	"document":   {Glyph: "[=]", Kind: "document"},
	"image":      {Glyph: "[~]", Kind: "image"},
	"audio":      {Glyph: "[o]", Kind: "audio"},
	"video":      {Glyph: "[>]", Kind: "video"},
	"archive":    {Glyph: "[#]", Kind: "archive"},
	"code":       {Glyph: "[<]", Kind: "code"},
	"executable": {Glyph: "[!]", Kind: "executable"},
	"other":      {Glyph: "[ ]", Kind: "other"},
}

var extensionKinds = map[string]string{
	".txt": "document", ".md": "document", ".pdf": "document",
	".doc": "document", ".docx": "document", ".odt": "document",
	".xls": "document", ".xlsx": "document", ".csv": "document",

	".png": "image", ".jpg": "image", ".jpeg": "image", ".gif": "image",
	".bmp": "image", ".webp": "image", ".svg": "image", ".ico": "image",

	".mp3": "audio", ".flac": "audio", ".wav": "audio", ".ogg": "audio",

	".mp4": "video", ".mkv": "video", ".avi": "video", ".mov": "video",

	".zip": "archive", ".tar": "archive", ".gz": "archive", ".7z": "archive",
	".rar": "archive", ".xz": "archive",

	".go": "code", ".py": "code", ".js": "code", ".ts": "code",
	".c": "code", ".h": "code", ".cpp": "code", ".rs": "code",
	".java": "code", ".sh": "code", ".html": "code", ".css": "code",

	".exe": "executable", ".msi": "executable", ".dll": "executable",
	".so": "executable", ".dylib": "executable", ".app": "executable",
}

func deriveIcon(path string) Icon {
	ext := strings.ToLower(filepath.Ext(path))
	if kind, ok := extensionKinds[ext]; ok {
		return iconKinds[kind]
	}
	return iconKinds["other"]
}

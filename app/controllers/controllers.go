// Package controllers holds the HTTP handlers. Controllers bind and
// validate input, call a service or repository, and write the JSON
// envelope; no business rules live here.
package controllers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tyabelawras/api/pkg/storage"
)

// maxUploadBytes caps a single multipart upload (20 MB).
const maxUploadBytes = 20 << 20

// urlID extracts the {id} route parameter.
func urlID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}

// saveUpload stores one multipart file under dir on the default disk and
// returns its public URL. The stored name is timestamped to avoid
// collisions.
func saveUpload(fh *multipart.FileHeader, dir string) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("upload: open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return "", fmt.Errorf("upload: read %s: %w", fh.Filename, err)
	}

	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), sanitizeFilename(fh.Filename))
	path := dir + "/" + name

	if err := storage.Put(path, data); err != nil {
		return "", err
	}
	return storage.URL(path), nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '_', r == '-':
			return r
		}
		return -1
	}, base)
}

// isMultipart reports whether the request carries a multipart form.
func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder

	"hackerthink/internal/middleware"
	"hackerthink/internal/models"
	"hackerthink/internal/store"
)

const (
	// maxUploadSize is the maximum allowed file upload size (50 MB).
	maxUploadSize = 50 << 20

	// thumbMaxWidth is the maximum thumbnail width in pixels.
	thumbMaxWidth = 400

	// thumbQuality is the JPEG quality for generated thumbnails.
	thumbQuality = 80

	// maxImagePixels caps the number of pixels to prevent memory bombs.
	// 10000x10000 = 100 million pixels, ~400 MB decoded in RGBA.
	maxImagePixels = 100_000_000
)

// thumbableTypes are image types that support thumbnail generation.
// GIF is excluded to preserve animation; SVG is vector.
var thumbableTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// MediaList returns stored media metadata, newest first, paginated with
// ?limit= and ?offset=.
func (a *API) MediaList(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	items, err := a.media.List(limit, offset)
	if err != nil {
		slog.Error("media list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if items == nil {
		items = []models.Media{}
	}
	total, err := a.media.Count()
	if err != nil {
		slog.Error("media count failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
}

// MediaUpload accepts a multipart upload, classifies it by sniffed MIME
// type into a kind folder under the media root, generates a thumbnail for
// raster images, and records the metadata. When S3 replication is
// configured the original is mirrored best-effort.
func (a *API) MediaUpload(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large, maximum size is 50 MB")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large, maximum size is 50 MB")
		return
	}

	// Detect content type by sniffing the first 512 bytes.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}
	contentType := http.DetectContentType(sniffBuf[:n])

	// SVG detection: DetectContentType returns text/xml or application/xml for SVGs.
	if strings.HasSuffix(strings.ToLower(header.Filename), ".svg") &&
		(strings.Contains(contentType, "xml") || strings.Contains(contentType, "text/plain")) {
		contentType = "image/svg+xml"
	}

	kind, ok := models.KindForMIME(contentType)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("file type %q is not allowed", contentType))
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to process file")
		return
	}
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	// Collision-resistant generated name; the original name is metadata only.
	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = extensionFromType(contentType)
	}
	fileID := uuid.New().String()
	filename := fileID + ext
	relPath := filepath.Join("uploads", string(kind), filename)

	absPath := filepath.Join(a.cfg.MediaRoot, relPath)
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		slog.Error("media dir create failed", "error", err, "path", absPath)
		writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}
	if err := os.WriteFile(absPath, fileBytes, 0o644); err != nil {
		slog.Error("media write failed", "error", err, "path", absPath)
		writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	// Thumbnail for supported raster images; failure never blocks the upload.
	var thumbPath *string
	if thumbableTypes[contentType] {
		thumbData, err := generateThumbnail(bytes.NewReader(fileBytes), thumbMaxWidth)
		if err != nil {
			slog.Warn("thumbnail generation failed", "error", err, "file", relPath)
		} else if thumbData != nil {
			tp := filepath.Join("uploads", string(kind), fileID+"_thumb.jpg")
			if err := os.WriteFile(filepath.Join(a.cfg.MediaRoot, tp), thumbData, 0o644); err != nil {
				slog.Warn("thumbnail write failed", "error", err, "path", tp)
			} else {
				thumbPath = &tp
			}
		}
	}

	// Mirror to S3 when configured. The disk copy is authoritative, so a
	// replication failure is logged and the request continues.
	var replicatedURL string
	if a.storageClient != nil {
		key := filepath.ToSlash(relPath)
		if err := a.storageClient.Upload(r.Context(), key, contentType, bytes.NewReader(fileBytes), int64(len(fileBytes))); err != nil {
			slog.Warn("s3 replication failed", "error", err, "key", key)
		} else {
			replicatedURL = a.storageClient.FileURL(key)
		}
	}

	media := &models.Media{
		Filename:     filename,
		OriginalName: header.Filename,
		Filepath:     relPath,
		Kind:         kind,
		MimeType:     contentType,
		SizeBytes:    int64(len(fileBytes)),
		ThumbPath:    thumbPath,
		UploadedBy:   &sess.UserID,
	}
	if alt := r.FormValue("alt_text"); alt != "" {
		media.AltText = &alt
	}

	resp := map[string]any{
		"filepath":  media.Filepath,
		"thumb":     media.ThumbPath,
		"filename":  media.OriginalName,
		"size":      media.HumanSize(),
		"mime_type": media.MimeType,
	}
	if replicatedURL != "" {
		resp["replicated_url"] = replicatedURL
	}

	created, err := a.media.Create(media)
	if err != nil {
		// The file is already on disk and servable; the cleanup command
		// reconciles the missing row later.
		slog.Error("media db insert failed", "error", err, "file", relPath)
		writeJSON(w, http.StatusCreated, resp)
		return
	}

	resp["id"] = created.ID
	writeJSON(w, http.StatusCreated, resp)
}

// MediaUpdate edits the descriptive metadata of one media item.
func (a *API) MediaUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid media id")
		return
	}
	var upd store.MediaUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := a.media.UpdatePartial(id, &upd)
	if err != nil {
		slog.Error("media update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "media not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"item": updated})
}

// MediaDelete removes one media item: row first, then the files, then the
// S3 mirror, each best-effort after the row is gone.
func (a *API) MediaDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid media id")
		return
	}

	deleted, err := a.media.Delete(id)
	if err != nil {
		slog.Error("media delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if deleted == nil {
		writeError(w, http.StatusNotFound, "media not found")
		return
	}

	a.removeMediaFiles(r, deleted)
	writeJSON(w, http.StatusOK, map[string]string{"message": "media deleted"})
}

// MediaBulkDelete removes a set of media items in one transaction and
// cleans up their files.
func (a *API) MediaBulkDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []uuid.UUID `json:"ids"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "ids is required")
		return
	}

	deleted, err := a.media.DeleteMany(req.IDs)
	if err != nil {
		slog.Error("media bulk delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	for i := range deleted {
		a.removeMediaFiles(r, &deleted[i])
	}

	writeJSON(w, http.StatusOK, map[string]any{"deleted": len(deleted)})
}

// removeMediaFiles deletes the disk files and S3 mirror of a removed row.
// Failures are logged; the cleanup command catches anything left behind.
func (a *API) removeMediaFiles(r *http.Request, m *models.Media) {
	if err := os.Remove(filepath.Join(a.cfg.MediaRoot, m.Filepath)); err != nil && !os.IsNotExist(err) {
		slog.Warn("media file delete failed", "error", err, "path", m.Filepath)
	}
	if m.ThumbPath != nil {
		if err := os.Remove(filepath.Join(a.cfg.MediaRoot, *m.ThumbPath)); err != nil && !os.IsNotExist(err) {
			slog.Warn("media thumb delete failed", "error", err, "path", *m.ThumbPath)
		}
	}
	if a.storageClient != nil {
		if err := a.storageClient.Delete(r.Context(), filepath.ToSlash(m.Filepath)); err != nil {
			slog.Warn("s3 mirror delete failed", "error", err, "key", m.Filepath)
		}
	}
}

// generateThumbnail creates a JPEG thumbnail from an image, constrained
// to maxWidth while preserving aspect ratio. Returns nil if the image is
// already smaller than maxWidth.
func generateThumbnail(src io.Reader, maxWidth int) ([]byte, error) {
	// Decode config first to check dimensions without full decode.
	imgCfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// Check for image bombs.
	if int64(imgCfg.Width)*int64(imgCfg.Height) > maxImagePixels {
		return nil, fmt.Errorf("image too large: %dx%d exceeds %d pixels", imgCfg.Width, imgCfg.Height, maxImagePixels)
	}

	// Skip thumbnail if image is already small enough.
	if imgCfg.Width <= maxWidth {
		return nil, nil
	}

	// Seek back to start for full decode.
	if seeker, ok := src.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek: %w", err)
		}
	} else {
		return nil, fmt.Errorf("source does not support seeking")
	}

	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	// Calculate thumbnail dimensions preserving aspect ratio.
	bounds := img.Bounds()
	ratio := float64(maxWidth) / float64(bounds.Dx())
	newWidth := maxWidth
	newHeight := int(float64(bounds.Dy()) * ratio)

	// Resize using CatmullRom (high quality).
	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbQuality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}

	return buf.Bytes(), nil
}

// extensionFromType returns a file extension for known MIME types.
func extensionFromType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	case "application/pdf":
		return ".pdf"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	case "audio/mpeg":
		return ".mp3"
	default:
		return ""
	}
}

// queryInt reads an integer query parameter with a fallback.
func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

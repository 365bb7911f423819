package http_

import (
	"mime"
	"path/filepath"
	"strings"
)

var typesByExtension = map[string]string{
	".css":  "text/css",
	".gif":  "image/gif",
	".htm":  "text/html",
	".html": "text/html",
	".ico":  "image/x-icon",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".js":   "application/javascript",
	".json": "application/json",
	".png":  "image/png",
	".svg":  "image/svg+xml",
	".txt":  "text/plain",
}

var extensionsByType = map[string]string{
	"application/javascript": "js",
	"application/json":       "json",
	"image/jpeg":             "jpg",
	"image/svg+xml":          "svg",
	"image/x-icon":           "ico",
	"text/html":              "html",
	"text/javascript":        "js",
	"text/plain":             "txt",
}

const defaultContentType = "application/octet-stream"

// MediaType strips parameters such as charset from a Content-Type value.
func MediaType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

// ContentTypeOf probes the content type of a file from its name.
func ContentTypeOf(name string) string {
	extension := strings.ToLower(filepath.Ext(name))
	if contentType, ok := typesByExtension[extension]; ok {
		return contentType
	}
	if contentType := mime.TypeByExtension(extension); contentType != "" {
		return MediaType(contentType)
	}
	return defaultContentType
}

// Extension maps a Content-Type to the file extension used when saving a body.
func Extension(contentType string) string {
	mediaType := MediaType(contentType)
	if extension, ok := extensionsByType[mediaType]; ok {
		return extension
	}
	if i := strings.IndexByte(mediaType, '/'); i >= 0 && i < len(mediaType)-1 {
		return mediaType[i+1:]
	}
	return "bin"
}

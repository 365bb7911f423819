package server

import (
	"github.com/pkg/errors"
	"io/fs"
	"my_http/internal/errors_"
	"my_http/internal/http_"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const indexFile = "index.html"

func (h *handler) serveFile(request *http_.Request) (*http_.Response, error) {
	filePath := resolvePath(h.config.Root, request.Target)
	info, err := osStat(filePath)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.Mode().IsRegular()) {
		return nil, errors_.NotFound(request.Target)
	}
	if err != nil {
		return nil, errors_.Internal(err)
	}

	header := http_.Header{"Content-Type": http_.ContentTypeOf(filePath)}
	if request.Header.Has("If-Modified-Since") {
		modified, err := isModifiedSince(info.ModTime(), request.Header.Get("If-Modified-Since"))
		if err != nil {
			return nil, err
		}
		if !modified {
			header.Set("Content-Length", strconv.FormatInt(info.Size(), 10))
			return http_.NewResponse(request.Version, 304, header, nil), nil
		}
	}
	if request.Method == http_.HEAD {
		header.Set("Content-Length", strconv.FormatInt(info.Size(), 10))
		return http_.NewResponse(request.Version, 200, header, nil), nil
	}

	data, err := osReadFile(filePath)
	if err != nil {
		return nil, errors_.Internal(err)
	}
	return http_.NewResponse(request.Version, 200, header, data), nil
}

// resolvePath maps a request target to a file under root. The target is
// cleaned as an absolute path first, so ".." never climbs above root.
func resolvePath(root, target string) string {
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		target = target[:i]
	}
	if target == "" || strings.HasSuffix(target, "/") {
		target += indexFile
	}
	return filepath.Join(root, filepath.FromSlash(path.Clean("/"+target)))
}

// isModifiedSince compares at the one-second resolution of HTTP dates.
func isModifiedSince(modTime time.Time, value string) (bool, error) {
	since, err := http_.ParseDate(value)
	if err != nil {
		return false, errors_.BadRequest(err.Error())
	}
	return modTime.Truncate(time.Second).After(since), nil
}

package client

import (
	"io"
	"my_http/internal/errors_"
	"my_http/internal/http_"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrNoBody = errors_.New("response has no body")

// Save writes the response body under dir, at the request path. A path ending
// in "/" is saved as index.<extension of the Content-Type>. Existing files are
// never overwritten.
func Save(dir string, request *Request, response *http_.Response) (string, error) {
	if response.Body == nil {
		return "", ErrNoBody
	}
	name := request.Address.Path
	if i := strings.IndexByte(name, '?'); i >= 0 {
		name = name[:i]
	}
	if strings.HasSuffix(name, "/") {
		name += "index." + http_.Extension(response.Header.Get("Content-Type"))
	}
	filePath := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+name)))
	if err := osMkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", errors_.Format(Save, err)
	}
	// If O_CREAT and O_EXCL are set, open() shall fail if the file exists
	file, err := osOpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		return "", errors_.Format(Save, err)
	}
	defer closeFile(file)
	if _, err := file.Write(response.Body); err != nil {
		return "", errors_.Format(Save, err)
	}
	return filePath, nil
}

func closeFile(f io.Closer) {
	if err := f.Close(); err != nil {
		errors_.Log(closeFile, err)
	}
}

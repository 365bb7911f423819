package server

import (
	"bytes"
	"encoding/json"
	"github.com/pkg/errors"
	"io/fs"
	"my_http/internal/errors_"
	"my_http/internal/http_"
	"path/filepath"
	"strconv"
)

const (
	recordFileName    = "request_message.json"
	maxRecordAttempts = 1000
)

type record struct {
	Method  string `json:"method"`
	Version string `json:"version"`
	File    string `json:"file"`
	Message string `json:"message"`
}

func (h *handler) storeRecord(request *http_.Request) (*http_.Response, error) {
	document, err := encodeRecord(request)
	if err != nil {
		return nil, errors_.Internal(err)
	}
	dir, err := createRecordDir(h.config.OutputDir)
	if err != nil {
		return nil, errors_.Internal(err)
	}
	name := filepath.Join(dir, recordFileName)
	if err := osWriteFile(name, document, 0644); err != nil {
		return nil, errors_.Internal(errors_.Format(h.storeRecord, err))
	}
	errors_.Info(h.storeRecord, "request message written to "+name)
	header := http_.Header{"Content-Type": "application/json"}
	return http_.NewResponse(request.Version, 200, header, document), nil
}

func encodeRecord(request *http_.Request) ([]byte, error) {
	buffer := bytes.Buffer{}
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	err := encoder.Encode(record{
		Method:  string(request.Method),
		Version: request.Version,
		File:    request.Target,
		Message: string(request.Body),
	})
	if err != nil {
		return nil, errors_.Format(encodeRecord, err)
	}
	return bytes.TrimSuffix(buffer.Bytes(), []byte("\n")), nil
}

// createRecordDir makes a new directory named after the current time in
// milliseconds, moving to the next millisecond while the name is taken.
func createRecordDir(outputDir string) (string, error) {
	if err := osMkdirAll(outputDir, 0755); err != nil {
		return "", errors_.Format(createRecordDir, err)
	}
	millis := timeDotNow().UnixMilli()
	for attempt := int64(0); attempt < maxRecordAttempts; attempt++ {
		dir := filepath.Join(outputDir, strconv.FormatInt(millis+attempt, 10))
		err := osMkdir(dir, 0755)
		if err == nil {
			return dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", errors_.Format(createRecordDir, err)
		}
	}
	return "", errors.Errorf("no free record directory in %s after %d attempts", outputDir, maxRecordAttempts)
}

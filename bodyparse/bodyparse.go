// File: bodyparse/bodyparse.go
// Package bodyparse is the body-parsing collaborator spec §6 treats as an
// external interface: RequestCtx.Payload() dispatches on Content-Type and
// calls Parse.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package bodyparse

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// FileUpload carries one multipart/form-data file part.
type FileUpload struct {
	Name              string
	MimeType          string
	TransferEncoding  string
	Bytes             []byte
}

// Parse reads and decodes req's body according to its Content-Type.
// Unknown content types return (nil, false, nil) — "absent" per spec §6.
// application/x-www-form-urlencoded yields map[string]string.
// multipart/form-data yields map[string]any, each value either []byte or
// FileUpload. application/json yields the decoded JSON value (any).
func Parse(req *http.Request) (value any, ok bool, err error) {
	contentType := req.Header.Get("Content-Type")
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, false, nil
	}

	switch {
	case mediaType == "application/x-www-form-urlencoded":
		return parseURLEncoded(req)
	case strings.HasPrefix(mediaType, "multipart/form-data"):
		return parseMultipart(req, params["boundary"])
	case mediaType == "application/json":
		return parseJSON(req)
	default:
		return nil, false, nil
	}
}

func parseURLEncoded(req *http.Request) (any, bool, error) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, false, err
	}
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, false, err
	}
	out := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out, true, nil
}

func parseMultipart(req *http.Request, boundary string) (any, bool, error) {
	if boundary == "" {
		return nil, false, fmt.Errorf("bodyparse: missing multipart boundary")
	}
	reader := multipart.NewReader(req.Body, boundary)
	out := make(map[string]any)

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, false, err
		}
		data, err := io.ReadAll(part)
		if err != nil {
			return nil, false, err
		}
		name := part.FormName()
		if filename := part.FileName(); filename != "" {
			out[name] = FileUpload{
				Name:             filename,
				MimeType:         part.Header.Get("Content-Type"),
				TransferEncoding: part.Header.Get("Content-Transfer-Encoding"),
				Bytes:            data,
			}
			continue
		}
		out[name] = data
	}
	return out, true, nil
}

func parseJSON(req *http.Request) (any, bool, error) {
	var v any
	dec := json.NewDecoder(req.Body)
	if err := dec.Decode(&v); err != nil {
		return nil, false, err
	}
	return v, true, nil
}

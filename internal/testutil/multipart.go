// internal/testutil/multipart.go
package testutil

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
)

// File is one part of the "images" field in a multipart request body.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// MultipartBody encodes fields and files the way the admin frontend submits a product form.
// It returns the body and the Content-Type header to send with it.
func MultipartBody(fields map[string]string, files ...File) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="%s"`, f.Name))
		h.Set("Content-Type", f.ContentType)
		part, _ := w.CreatePart(h)
		_, _ = part.Write(f.Data)
	}
	_ = w.Close()

	return body, w.FormDataContentType()
}

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

type form struct {
	fields []formField
	files  []formFile
}

type formField struct {
	name, value string
}

type formFile struct {
	field, path string
}

func (f *form) set(name, value string) {
	if value != "" {
		f.fields = append(f.fields, formField{name, value})
	}
}

func (f *form) attach(field, path string) {
	if path != "" {
		f.files = append(f.files, formFile{field, path})
	}
}

func (f *form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, fl := range f.fields {
		if err := w.WriteField(fl.name, fl.value); err != nil {
			return nil, "", fmt.Errorf("encode: error writing field %s: %w", fl.name, err)
		}
	}
	for _, ff := range f.files {
		if err := copyFile(w, ff); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("encode: error closing form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func copyFile(w *multipart.Writer, ff formFile) error {
	src, err := os.Open(ff.path)
	if err != nil {
		return fmt.Errorf("encode: error opening %s: %w", ff.path, err)
	}
	defer src.Close()

	part, err := w.CreateFormFile(ff.field, filepath.Base(ff.path))
	if err != nil {
		return fmt.Errorf("encode: error creating file part %s: %w", ff.field, err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("encode: error copying %s: %w", ff.path, err)
	}
	return nil
}

func (cl *Client) sendForm(ctx context.Context, method, route, path string, f *form, out interface{}, invalidate ...string) error {
	body, ctype, err := f.encode()
	if err != nil {
		return validationError(err)
	}
	return cl.send(ctx, request{method: method, route: route, path: path, body: body, ctype: ctype}, out, invalidate)
}

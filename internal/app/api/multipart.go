package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// File is a binary attachment in a multipart submission.
type File struct {
	Field       string
	Name        string
	ContentType string
	Reader      io.Reader
}

// Multipart submits mixed scalar and binary fields as multipart/form-data.
// Object and array values are JSON-stringified before insertion, matching
// the backend's form contract.
func (c *Client) Multipart(ctx context.Context, method, path string, fields map[string]any, files []File, creds Credentials) (*Envelope, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value, err := formValue(fields[name])
		if err != nil {
			return nil, fmt.Errorf("api.Client.Multipart: field %s: %w", name, err)
		}
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("api.Client.Multipart: field %s: %w", name, err)
		}
	}

	for _, file := range files {
		part, err := createFilePart(writer, file)
		if err != nil {
			return nil, fmt.Errorf("api.Client.Multipart: file %s: %w", file.Field, err)
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			return nil, fmt.Errorf("api.Client.Multipart: file %s: %w", file.Field, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("api.Client.Multipart: %w", err)
	}

	req, err := c.newRequest(ctx, method, path, &buf, nil, creds)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req, path, creds)
}

func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]any, files []File, creds Credentials) (*Envelope, error) {
	return c.Multipart(ctx, http.MethodPost, path, fields, files, creds)
}

// formValue renders a field for the multipart body: scalars as plain text,
// everything structured as JSON.
func formValue(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.RawMessage:
		return string(v), nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(v), nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func createFilePart(writer *multipart.Writer, file File) (io.Writer, error) {
	if file.ContentType == "" {
		return writer.CreateFormFile(file.Field, file.Name)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(file.Field), quoteEscaper.Replace(file.Name)))
	header.Set("Content-Type", file.ContentType)

	return writer.CreatePart(header)
}

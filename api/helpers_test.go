package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// multipartBody builds a multipart form from string fields and in-memory files.
type multipartFile struct {
	field    string
	filename string
	content  []byte
}

func multipartBody(t *testing.T, fields map[string]string, files ...multipartFile) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for field, value := range fields {
		require.NoError(t, writer.WriteField(field, value))
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func jsonBody(t *testing.T, payload any) *bytes.Buffer {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewBuffer(data)
}

func (env *testEnv) do(t *testing.T, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func (env *testEnv) blobExists(t *testing.T, name string) bool {
	t.Helper()
	ok, err := env.blobStore.Exists(context.Background(), name)
	require.NoError(t, err)
	return ok
}

package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	data := []byte("Python and AWS")
	require.NoError(t, store.Put(ctx, &Object{Key: "resumes/a.txt", ContentType: "text/plain", Data: data}))
	data[0] = 'X'

	obj, err := store.Get(ctx, "resumes/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "Python and AWS", string(obj.Data))
	assert.Equal(t, "text/plain", obj.ContentType)

	require.NoError(t, store.Delete(ctx, "resumes/a.txt"))
	_, err = store.Get(ctx, "resumes/a.txt")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, store.Delete(ctx, "resumes/a.txt"))
}

func newS3TestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/resumes/alice.txt":
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("Kubernetes and Terraform"))
		default:
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`))
		}
	}))
}

func newTestS3Store(t *testing.T, endpoint string) *S3Store {
	t.Helper()
	store, err := NewS3Store(context.Background(), S3Config{
		Bucket:       "resumes",
		Region:       "us-east-1",
		Endpoint:     endpoint,
		AccessKey:    "test",
		SecretKey:    "test",
		UsePathStyle: true,
	})
	require.NoError(t, err)
	return store
}

func TestS3Store_Get(t *testing.T) {
	server := newS3TestServer(t)
	defer server.Close()

	obj, err := newTestS3Store(t, server.URL).Get(context.Background(), "alice.txt")
	require.NoError(t, err)
	assert.Equal(t, "alice.txt", obj.Key)
	assert.Equal(t, "text/plain", obj.ContentType)
	assert.Equal(t, "Kubernetes and Terraform", string(obj.Data))
}

func TestS3Store_GetMissing(t *testing.T) {
	server := newS3TestServer(t)
	defer server.Close()

	_, err := newTestS3Store(t, server.URL).Get(context.Background(), "nobody.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var storeErr *Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "get", storeErr.Op)
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Config{})
	assert.Error(t, err)
}

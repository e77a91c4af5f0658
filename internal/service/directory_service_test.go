package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapovan/attendance-api/pkg/config"
)

func newDirectory(baseURL string) *DirectoryService {
	return NewDirectoryService(config.DirectoryConfig{BaseURL: baseURL, Timeout: time.Second}, nil, nil)
}

func TestDirectoryServiceFetchBatch(t *testing.T) {
	var gotIDs string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/students/batch", r.URL.Path)
		gotIDs = r.URL.Query().Get("ids")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Alice","rollNo":"12","currentStandard":"10","currentClass":"A"},{"id":2,"name":"Bob","rollNo":"7","currentStandard":"9","currentClass":"B"}]`))
	}))
	defer server.Close()

	students := newDirectory(server.URL).FetchBatch(context.Background(), []int64{1, 2})
	require.Len(t, students, 2)
	assert.Equal(t, "1,2", gotIDs)
	assert.Equal(t, "Alice", students[1].Name)
	assert.Equal(t, "7", students[2].RollNo)
}

func TestDirectoryServiceEmptyInput(t *testing.T) {
	students := newDirectory("http://localhost:0").FetchBatch(context.Background(), nil)
	assert.Empty(t, students)
}

func TestDirectoryServiceDegradesOnBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	students := newDirectory(server.URL).FetchBatch(context.Background(), []int64{1})
	assert.Empty(t, students)
}

func TestDirectoryServiceDegradesOnMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer server.Close()

	students := newDirectory(server.URL).FetchBatch(context.Background(), []int64{1})
	assert.Empty(t, students)
}

func TestDirectoryServiceDegradesOnUnreachableHost(t *testing.T) {
	students := newDirectory("http://127.0.0.1:1").FetchBatch(context.Background(), []int64{1})
	assert.Empty(t, students)
}

package jobtracker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, zap.NewNop())
}

func TestListJobs(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/jobs/all", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": "a1", "jobTitle": "Backend Engineer", "company": "Globex", "status": "Applied", "applicationDate": "2026-03-01", "notes": "from notes"},
			{"_id": "b2", "jobTitle": "SRE", "company": "Acme", "status": "interviewing", "applicationDate": "2026-03-02", "note": "from note"}
		]`))
	})

	records, err := client.ListJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	// both historical id and notes spellings resolve
	assert.Equal(t, "a1", records[0].Identifier())
	assert.Equal(t, "from notes", records[0].NotesText())
	assert.Equal(t, "b2", records[1].Identifier())
	assert.Equal(t, "from note", records[1].NotesText())
}

func TestCreateJob(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/jobs/add", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req CreateJobRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Frontend Developer", req.JobTitle)
		assert.Equal(t, "Applied", req.Status)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "new1", "jobTitle": "Frontend Developer", "company": "Acme", "status": "Applied", "applicationDate": "2026-03-05"}`))
	})

	record, err := client.CreateJob(context.Background(), CreateJobRequest{
		JobTitle:        "Frontend Developer",
		Company:         "Acme",
		Status:          "Applied",
		ApplicationDate: "2026-03-05",
	})
	require.NoError(t, err)
	assert.Equal(t, "new1", record.Identifier())
}

func TestCreateJob_ValidationError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors": {"jobTitle": "Job title is required", "applicationDate": "Invalid date"}}`))
	})

	_, err := client.CreateJob(context.Background(), CreateJobRequest{Company: "Acme"})
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "Job title is required", vErr.Fields["jobTitle"])
	assert.Equal(t, "Invalid date", vErr.Fields["applicationDate"])
}

func TestUpdateJobStatus(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/jobs/a1", r.URL.Path)

		var req StatusUpdateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Offer", req.Status)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "a1", "jobTitle": "Backend Engineer", "company": "Globex", "status": "Offer", "applicationDate": "2026-03-01"}`))
	})

	record, err := client.UpdateJobStatus(context.Background(), "a1", "Offer")
	require.NoError(t, err)
	assert.Equal(t, "Offer", record.Status)
}

func TestDeleteJob_NotFound(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.DeleteJob(context.Background(), "gone")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDoRequest_RetriesOnServerError(t *testing.T) {
	attempts := 0
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	records, err := client.ListJobs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 3, attempts)
}

func TestDoRequest_NoRetryOnValidationError(t *testing.T) {
	attempts := 0
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "bad payload"}`))
	})

	_, err := client.CreateJob(context.Background(), CreateJobRequest{})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

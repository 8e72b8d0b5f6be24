package jobtracker

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// ListJobs fetches every application record. GET /jobs/all
func (c *Client) ListJobs(ctx context.Context) ([]JobRecord, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/jobs/all", nil)
	if err != nil {
		c.logger.Error("failed to list jobs", zap.Error(err))
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	var records []JobRecord
	if err := c.parseResponse(data, &records); err != nil {
		c.logger.Error("failed to parse job list", zap.Error(err))
		return nil, err
	}

	c.logger.Debug("jobs fetched", zap.Int("count", len(records)))

	return records, nil
}

// CreateJob submits a new application. POST /jobs/add
// The backend assigns the id; we never invent one.
func (c *Client) CreateJob(ctx context.Context, req CreateJobRequest) (*JobRecord, error) {
	data, err := c.doRequest(ctx, http.MethodPost, "/jobs/add", req)
	if err != nil {
		c.logger.Error("failed to create job",
			zap.String("company", req.Company),
			zap.Error(err),
		)
		return nil, fmt.Errorf("create job: %w", err)
	}

	var record JobRecord
	if err := c.parseResponse(data, &record); err != nil {
		c.logger.Error("failed to parse created job", zap.Error(err))
		return nil, err
	}

	c.logger.Info("job created",
		zap.String("job_id", record.Identifier()),
		zap.String("company", record.Company),
	)

	return &record, nil
}

// UpdateJob replaces a record in full. PUT /jobs/{id}
func (c *Client) UpdateJob(ctx context.Context, jobID string, req CreateJobRequest) (*JobRecord, error) {
	path := fmt.Sprintf("/jobs/%s", url.PathEscape(jobID))

	data, err := c.doRequest(ctx, http.MethodPut, path, req)
	if err != nil {
		c.logger.Error("failed to update job",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("update job: %w", err)
	}

	var record JobRecord
	if err := c.parseResponse(data, &record); err != nil {
		c.logger.Error("failed to parse updated job", zap.Error(err))
		return nil, err
	}

	return &record, nil
}

// UpdateJobStatus changes only the status. PATCH /jobs/{id}
func (c *Client) UpdateJobStatus(ctx context.Context, jobID, status string) (*JobRecord, error) {
	path := fmt.Sprintf("/jobs/%s", url.PathEscape(jobID))

	data, err := c.doRequest(ctx, http.MethodPatch, path, StatusUpdateRequest{Status: status})
	if err != nil {
		c.logger.Error("failed to update job status",
			zap.String("job_id", jobID),
			zap.String("status", status),
			zap.Error(err),
		)
		return nil, fmt.Errorf("update job status: %w", err)
	}

	var record JobRecord
	if err := c.parseResponse(data, &record); err != nil {
		c.logger.Error("failed to parse patched job", zap.Error(err))
		return nil, err
	}

	c.logger.Info("job status updated",
		zap.String("job_id", jobID),
		zap.String("status", status),
	)

	return &record, nil
}

// DeleteJob removes a record. DELETE /jobs/{id}
func (c *Client) DeleteJob(ctx context.Context, jobID string) error {
	path := fmt.Sprintf("/jobs/%s", url.PathEscape(jobID))

	if _, err := c.doRequest(ctx, http.MethodDelete, path, nil); err != nil {
		c.logger.Error("failed to delete job",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return fmt.Errorf("delete job: %w", err)
	}

	c.logger.Info("job deleted", zap.String("job_id", jobID))

	return nil
}

package jobtracker

// JobRecord is the backend wire shape. Key presence and casing drift across
// historical versions of the backend, so everything here is loose: both id
// spellings are accepted, notes may arrive under "notes" or "note", and
// status carries whatever casing the record was written with.
// jobs.Normalize turns this into the canonical models.Job.
type JobRecord struct {
	ID       string `json:"id,omitempty"`
	MongoID  string `json:"_id,omitempty"`
	JobTitle string `json:"jobTitle"`
	Company  string `json:"company"`
	Position string `json:"position,omitempty"`
	Location string `json:"location,omitempty"`
	Status   string `json:"status"`

	ApplicationDate string `json:"applicationDate"`
	JobLink         string `json:"jobLink,omitempty"`
	Notes           string `json:"notes,omitempty"`
	Note            string `json:"note,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Identifier returns whichever id field the backend populated.
func (r *JobRecord) Identifier() string {
	if r.ID != "" {
		return r.ID
	}
	return r.MongoID
}

// NotesText resolves the two historical notes field names.
func (r *JobRecord) NotesText() string {
	if r.Notes != "" {
		return r.Notes
	}
	return r.Note
}

// CreateJobRequest is the body for POST /jobs/add.
type CreateJobRequest struct {
	JobTitle        string `json:"jobTitle"`
	Company         string `json:"company"`
	Position        string `json:"position,omitempty"`
	Status          string `json:"status"`
	ApplicationDate string `json:"applicationDate"`
	Notes           string `json:"notes,omitempty"`
	JobLink         string `json:"jobLink,omitempty"`
	Location        string `json:"location,omitempty"`
}

// StatusUpdateRequest is the body for PATCH /jobs/{id}.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

type DeleteResponse struct {
	Message string `json:"message,omitempty"`
}

// errorResponse covers the two error payload shapes the backend emits:
// a plain message, or a field->message map for validation failures.
type errorResponse struct {
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

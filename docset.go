package anydocs

import (
	"context"
	"regexp"
	"time"
)

var docSetNameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// DocSet represents a named documentation set stored on disk and
// registered for indexing.
type DocSet struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SourceURL   string    `json:"sourceUrl"`
	LocalPath   string    `json:"localPath"`
	Fingerprint string    `json:"fingerprint"`
	Pages       int       `json:"pages"`
	Sections    int       `json:"sections"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the doc set contains invalid fields.
func (d *DocSet) Validate() error {
	if d.Name == "" {
		return Errorf(EINVALID, "doc set name required")
	}
	if !docSetNameRe.MatchString(d.Name) {
		return Errorf(EINVALID, "invalid doc set name %q: only letters, digits, hyphens and underscores allowed", d.Name)
	}
	if d.LocalPath == "" {
		return Errorf(EINVALID, "doc set local path required")
	}
	return nil
}

// DocSetService represents a service for managing registered doc sets.
type DocSetService interface {
	// CreateDocSet registers a new doc set.
	// Returns ECONFLICT if the name is already taken.
	CreateDocSet(ctx context.Context, set *DocSet) error

	// FindDocSetByID retrieves a doc set by ID.
	// Returns ENOTFOUND if the doc set does not exist.
	FindDocSetByID(ctx context.Context, id string) (*DocSet, error)

	// FindDocSets retrieves doc sets matching the filter.
	FindDocSets(ctx context.Context, filter DocSetFilter) ([]*DocSet, error)

	// UpdateDocSet updates an existing doc set.
	// Returns ENOTFOUND if the doc set does not exist.
	UpdateDocSet(ctx context.Context, id string, upd DocSetUpdate) (*DocSet, error)

	// DeleteDocSet removes a doc set registration.
	// Returns ENOTFOUND if the doc set does not exist.
	DeleteDocSet(ctx context.Context, id string) error
}

// DocSetFilter represents a filter for FindDocSets.
type DocSetFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// DocSetUpdate represents fields that can be updated on a doc set.
type DocSetUpdate struct {
	SourceURL   *string `json:"sourceUrl"`
	LocalPath   *string `json:"localPath"`
	Fingerprint *string `json:"fingerprint"`
	Pages       *int    `json:"pages"`
	Sections    *int    `json:"sections"`
}

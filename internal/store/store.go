// Package store owns the single persisted document that holds the projects
// and contacts collections.
//
// Every mutation reads the whole document, changes it in memory and writes
// it back. Store.Update serialises those windows inside the process so two
// concurrent writers cannot silently drop each other's changes.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/technova/portfolio-api/internal/contact"
	"github.com/technova/portfolio-api/internal/project"
	"github.com/technova/portfolio-api/pkg/logger"
	"github.com/technova/portfolio-api/pkg/metrics"
)

var (
	// ErrUnavailable wraps every failure of the durable medium.
	ErrUnavailable = errors.New("storage unavailable")
	// ErrNoDocument is returned by a Backend that has nothing persisted yet.
	ErrNoDocument = errors.New("no document")
)

// Document is the collection root.
type Document struct {
	Projects []project.Project `json:"projects" bson:"projects"`
	Contacts []contact.Contact `json:"contacts" bson:"contacts"`
}

// Empty returns a document with both collections initialised.
func Empty() *Document {
	return &Document{Projects: []project.Project{}, Contacts: []contact.Contact{}}
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	out := &Document{
		Projects: make([]project.Project, 0, len(d.Projects)),
		Contacts: make([]contact.Contact, 0, len(d.Contacts)),
	}
	for _, p := range d.Projects {
		out.Projects = append(out.Projects, p.Clone())
	}
	out.Contacts = append(out.Contacts, d.Contacts...)
	return out
}

// normalize replaces nil collections so they serialise as [] rather than null.
func (d *Document) normalize() {
	if d.Projects == nil {
		d.Projects = []project.Project{}
	}
	if d.Contacts == nil {
		d.Contacts = []contact.Contact{}
	}
	for i := range d.Projects {
		if d.Projects[i].Tags == nil {
			d.Projects[i].Tags = []string{}
		}
	}
}

// Backend is the durable medium behind a Store. Write must replace the
// previous document as a whole; readers never observe a partial write.
type Backend interface {
	Read(ctx context.Context) (*Document, error)
	Write(ctx context.Context, doc *Document) error
	Name() string
}

// Store provides load/save over a Backend plus the serialised
// read-modify-write primitive used by the services.
type Store struct {
	backend Backend
	writeMu sync.Mutex
}

func New(b Backend) *Store {
	return &Store{backend: b}
}

// Backend returns the name of the underlying medium.
func (s *Store) Backend() string { return s.backend.Name() }

// Load reads the document. When nothing is persisted yet it creates the
// empty document and persists it first.
func (s *Store) Load(ctx context.Context) (*Document, error) {
	doc, err := s.backend.Read(ctx)
	switch {
	case errors.Is(err, ErrNoDocument):
		logger.Infof("store[%s]: no document found, initializing empty collections", s.backend.Name())
		doc = Empty()
		if err := s.Save(ctx, doc); err != nil {
			return nil, err
		}
		return doc, nil
	case err != nil:
		metrics.StoreOperations.WithLabelValues(s.backend.Name(), "read", "error").Inc()
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, s.backend.Name(), err)
	}
	metrics.StoreOperations.WithLabelValues(s.backend.Name(), "read", "ok").Inc()
	doc.normalize()
	return doc, nil
}

// Save persists doc, replacing the previous contents.
func (s *Store) Save(ctx context.Context, doc *Document) error {
	doc.normalize()
	if err := s.backend.Write(ctx, doc); err != nil {
		metrics.StoreOperations.WithLabelValues(s.backend.Name(), "write", "error").Inc()
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, s.backend.Name(), err)
	}
	metrics.StoreOperations.WithLabelValues(s.backend.Name(), "write", "ok").Inc()
	return nil
}

// Update loads the document, applies fn and saves the result. Calls are
// serialised: only one Update is between its load and its save at a time.
// If fn returns an error nothing is written. The save itself is detached
// from ctx cancellation so a disconnecting client cannot abort it midway.
func (s *Store) Update(ctx context.Context, fn func(doc *Document) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	doc, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.Save(context.WithoutCancel(ctx), doc)
}

// Init makes sure the document exists. Called once at boot.
func (s *Store) Init(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_, err := s.Load(ctx)
	return err
}

// Ping reports whether the backend can currently be read.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.backend.Read(ctx)
	if err != nil && !errors.Is(err, ErrNoDocument) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

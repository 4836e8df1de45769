package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/technova/portfolio-api/internal/apperr"
	"github.com/technova/portfolio-api/internal/project"
	"github.com/technova/portfolio-api/internal/store"
)

// Service defines the project operations used by the handler layer.
// Mutations are expected to be admin-gated by the caller.
type Service interface {
	List(ctx context.Context) ([]project.Project, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	Create(ctx context.Context, in project.Input) (*project.Project, error)
	Update(ctx context.Context, id string, patch project.Patch) (*project.Project, error)
	Delete(ctx context.Context, id string) error
}

const msgTitleRequired = "Title required"

// New returns a Service backed by the document store.
func New(st *store.Store) Service {
	return &storeService{store: st, newID: uuid.NewString}
}

type storeService struct {
	store *store.Store
	newID func() string
}

func (s *storeService) List(ctx context.Context) ([]project.Project, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Projects, nil
}

func (s *storeService) Get(ctx context.Context, id string) (*project.Project, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range doc.Projects {
		if doc.Projects[i].ID == id {
			p := doc.Projects[i]
			return &p, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (s *storeService) Create(ctx context.Context, in project.Input) (*project.Project, error) {
	if in.Title == "" {
		return nil, apperr.Invalid(msgTitleRequired)
	}
	p := project.Project{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		URL:         in.URL,
		Tags:        append([]string{}, in.Tags...),
	}
	err := s.store.Update(ctx, func(doc *store.Document) error {
		doc.Projects = append(doc.Projects, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *storeService) Update(ctx context.Context, id string, patch project.Patch) (*project.Project, error) {
	var updated project.Project
	err := s.store.Update(ctx, func(doc *store.Document) error {
		for i := range doc.Projects {
			if doc.Projects[i].ID == id {
				// an unknown id is reported before the body is judged
				if patch.Title != nil && *patch.Title == "" {
					return apperr.Invalid(msgTitleRequired)
				}
				updated = patch.Apply(doc.Projects[i])
				doc.Projects[i] = updated
				return nil
			}
		}
		return apperr.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes every project with the given id. Deleting an unknown id
// succeeds and still rewrites the document.
func (s *storeService) Delete(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(doc *store.Document) error {
		kept := doc.Projects[:0]
		for _, p := range doc.Projects {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		doc.Projects = kept
		return nil
	})
}

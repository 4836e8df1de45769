package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/technova/portfolio-api/internal/apperr"
	"github.com/technova/portfolio-api/internal/contact"
	"github.com/technova/portfolio-api/internal/store"
	"github.com/technova/portfolio-api/pkg/metrics"
)

// Service defines the contact operations used by the handler layer.
type Service interface {
	List(ctx context.Context) ([]contact.Contact, error)
	Create(ctx context.Context, in contact.Input) (*contact.Contact, error)
}

// Notifier is told about every contact after it has been stored. It must
// not block; its outcome is never observed here.
type Notifier interface {
	Dispatch(c contact.Contact)
}

const msgContactInvalid = "Provide at least message and one contact field (name or email)"

// New returns a Service backed by the document store. notifier may be nil.
func New(st *store.Store, notifier Notifier) Service {
	return &storeService{store: st, notifier: notifier, newID: uuid.NewString, now: time.Now}
}

type storeService struct {
	store    *store.Store
	notifier Notifier
	newID    func() string
	now      func() time.Time
}

func (s *storeService) List(ctx context.Context) ([]contact.Contact, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Contacts, nil
}

func (s *storeService) Create(ctx context.Context, in contact.Input) (*contact.Contact, error) {
	if in.Message == "" || (in.Name == "" && in.Email == "") {
		return nil, apperr.Invalid(msgContactInvalid)
	}
	c := contact.Contact{
		ID:        s.newID(),
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: s.now().UTC(),
	}
	err := s.store.Update(ctx, func(doc *store.Document) error {
		doc.Contacts = append(doc.Contacts, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.ContactsCreated.Inc()

	if s.notifier != nil {
		s.notifier.Dispatch(c)
	}
	return &c, nil
}

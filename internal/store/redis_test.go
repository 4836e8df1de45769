package store

import (
	"context"
	"testing"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/technova/portfolio-api/internal/project"
)

func TestRedisBackend_InitAndUpdate(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	s := New(NewRedisBackend(client, "test:db"))
	ctx := context.Background()

	require.NoError(t, s.Init(ctx))
	raw, err := m.Get("test:db")
	require.NoError(t, err)
	require.JSONEq(t, `{"projects":[],"contacts":[]}`, raw)

	require.NoError(t, s.Update(ctx, func(doc *Document) error {
		doc.Projects = append(doc.Projects, project.Project{ID: "p1", Title: "A"})
		return nil
	}))
	doc, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Projects, 1)
	require.Equal(t, "A", doc.Projects[0].Title)
}

func TestRedisBackend_Unavailable(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: m.Addr(), MaxRetries: -1})
	s := New(NewRedisBackend(client, ""))
	m.Close()

	_, err = s.Load(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

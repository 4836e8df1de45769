package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/technova/portfolio-api/internal/config"
	"github.com/technova/portfolio-api/internal/database"
	"github.com/technova/portfolio-api/internal/project"
)

// Runs only against a real server, e.g. MONGODB_TEST_URI=mongodb://localhost:27017
func TestMongoBackend_Integration(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}
	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, config.MongoDBConfig{URI: uri, Timeout: 5 * time.Second}, database.Retry{Attempts: 1})
	require.NoError(t, err)
	defer client.Disconnect(ctx)

	col := client.Database("portfolio_test").Collection(fmt.Sprintf("db_%d", time.Now().UnixNano()))
	defer col.Drop(ctx)

	s := New(NewMongoBackend(col))
	require.NoError(t, s.Init(ctx))
	require.NoError(t, s.Update(ctx, func(doc *Document) error {
		doc.Projects = append(doc.Projects, project.Project{ID: "p1", Title: "A", Tags: []string{"x"}})
		return nil
	}))

	doc, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Projects, 1)
	require.Equal(t, []string{"x"}, doc.Projects[0].Tags)
	require.Empty(t, doc.Contacts)
}

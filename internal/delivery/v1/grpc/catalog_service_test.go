package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/DRSN-tech/pharmacy-storefront/internal/catalog"
	"github.com/DRSN-tech/pharmacy-storefront/internal/cfg"
	"github.com/DRSN-tech/pharmacy-storefront/internal/session"
	"github.com/DRSN-tech/pharmacy-storefront/internal/usecase"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type nopPublisher struct{}

func (nopPublisher) PublishCheckout(context.Context, *usecase.CheckoutEvent) error { return nil }

func newTestClient(t *testing.T) *CatalogServiceClient {
	t.Helper()

	idx, err := catalog.LoadDefault()
	require.NoError(t, err)

	log := logger.NewNopLogger()
	uc := usecase.NewStorefrontUC(idx, session.NewStore(time.Hour, log), nopPublisher{}, log)

	srv := NewGRPCServer(&cfg.GRPCConfig{}, log)
	srv.RegisterServices(uc)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(func() { _ = srv.Stop(context.Background()) })

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewCatalogServiceClient(conn)
}

func productIDs(t *testing.T, products []any) []float64 {
	t.Helper()

	ids := make([]float64, len(products))
	for i, p := range products {
		m, ok := p.(map[string]any)
		require.True(t, ok)
		ids[i] = m["id"].(float64)
	}

	return ids
}

func TestListCategories(t *testing.T) {
	client := newTestClient(t)

	res, err := client.ListCategories(context.Background())
	require.NoError(t, err)

	cats := res.AsSlice()
	require.Len(t, cats, 8)
	assert.Equal(t, "Todos", cats[0])
}

func TestFilterByCategory(t *testing.T) {
	client := newTestClient(t)

	res, err := client.FilterByCategory(context.Background(), "Analgésicos")
	require.NoError(t, err)
	m := res.AsMap()
	assert.Equal(t, []float64{1, 7}, productIDs(t, m["products"].([]any)))

	res, err = client.FilterByCategory(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Todos", res.AsMap()["category"])
	assert.Len(t, res.AsMap()["products"], 8)
}

func TestSearch(t *testing.T) {
	client := newTestClient(t)

	res, err := client.Search(context.Background(), "farma")
	require.NoError(t, err)
	m := res.AsMap()
	assert.Equal(t, []float64{1, 4}, productIDs(t, m["products"].([]any)))
	assert.Len(t, m["sections"], 2)

	res, err = client.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, res.AsMap()["products"])
}

func TestGetProduct(t *testing.T) {
	client := newTestClient(t)

	res, err := client.GetProduct(context.Background(), 3)
	require.NoError(t, err)
	m := res.AsMap()
	assert.Equal(t, "Omeprazol 20mg", m["name"])
	assert.Equal(t, "25.30", m["price"])
	assert.Equal(t, float64(0), m["stock"])

	_, err = client.GetProduct(context.Background(), 99)
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.GetProduct(context.Background(), 0)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

package grpc

import (
	"context"

	"github.com/DRSN-tech/pharmacy-storefront/internal/catalog"
	"github.com/DRSN-tech/pharmacy-storefront/internal/domain"
	"github.com/DRSN-tech/pharmacy-storefront/internal/usecase"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/e"
	"github.com/DRSN-tech/pharmacy-storefront/pkg/logger"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// CatalogService — каталог только для чтения.
type CatalogService struct {
	catalogUC usecase.CatalogUC
	logger    logger.Logger
}

func NewCatalogService(catalogUC usecase.CatalogUC, logger logger.Logger) *CatalogService {
	return &CatalogService{catalogUC: catalogUC, logger: logger}
}

func (g *CatalogService) ListCategories(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	const op = "grpc.ListCategories"

	categories := g.catalogUC.ListCategories(ctx)
	values := make([]any, len(categories))
	for i, c := range categories {
		values[i] = c
	}

	res, err := structpb.NewList(values)
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return res, nil
}

func (g *CatalogService) FilterByCategory(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	const op = "grpc.FilterByCategory"

	category := req.GetValue()
	if category == "" {
		category = domain.AllCategories
	}

	res, err := structpb.NewStruct(map[string]any{
		"category": category,
		"products": toGRPCProducts(g.catalogUC.ListProducts(ctx, category)),
	})
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return res, nil
}

func (g *CatalogService) Search(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	const op = "grpc.Search"

	found := g.catalogUC.Search(ctx, req.GetValue())

	res, err := structpb.NewStruct(map[string]any{
		"query":    found.Query,
		"products": toGRPCProducts(found.Products),
		"sections": toGRPCSections(found.Sections),
	})
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return res, nil
}

// GetProduct возвращает товар и при нулевом остатке: вызывающий сервис сам решает, что показывать.
func (g *CatalogService) GetProduct(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	const op = "grpc.GetProduct"

	if req.GetValue() <= 0 {
		return nil, GRPCErrorResponse(e.ErrInvalidProductID)
	}

	p, err := g.catalogUC.GetProduct(ctx, req.GetValue())
	if err != nil {
		g.logger.Debugf("%s: %v", op, err)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	res, err := structpb.NewStruct(toGRPCProduct(p))
	if err != nil {
		g.logger.Errorf(e.Wrap(op, err), "%s", op)
		return nil, GRPCErrorResponse(e.Wrap(op, err))
	}

	return res, nil
}

func toGRPCProduct(p domain.Product) map[string]any {
	return map[string]any{
		"id":                    p.ID,
		"name":                  p.Name,
		"category":              p.Category,
		"price":                 p.Price.String(),
		"price_cents":           p.Price.Cents(),
		"image":                 p.Image,
		"description":           p.Description,
		"prescription_required": p.PrescriptionRequired,
		"stock":                 p.Stock,
		"manufacturer":          p.Manufacturer,
	}
}

func toGRPCProducts(products []domain.Product) []any {
	res := make([]any, len(products))
	for i, p := range products {
		res[i] = toGRPCProduct(p)
	}

	return res
}

func toGRPCSections(sections []catalog.Section) []any {
	res := make([]any, len(sections))
	for i, s := range sections {
		res[i] = map[string]any{
			"category": s.Category,
			"products": toGRPCProducts(s.Products),
		}
	}

	return res
}

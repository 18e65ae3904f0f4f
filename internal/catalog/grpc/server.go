package grpc

import (
	"context"
	"errors"

	"github.com/dwikikusuma/shoping-assistant/internal/catalog/app"
	"github.com/dwikikusuma/shoping-assistant/internal/catalog/domain"
	"github.com/dwikikusuma/shoping-assistant/pkg/grpcjson"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "shopassist.v1.CatalogService"

type SearchRequest struct {
	Query    string   `json:"q"`
	Category string   `json:"category"`
	MinPrice *float64 `json:"minPrice,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty"`
}

type SearchResponse struct {
	Products []domain.Product `json:"products"`
}

type GetProductRequest struct {
	ID string `json:"id"`
}

type GetProductResponse struct {
	Product domain.Product `json:"product"`
}

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []string `json:"categories"`
}

type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

// Register attaches the catalog service to gs.
func Register(gs *grpc.Server, srv *Server) {
	gs.RegisterService(&serviceDesc, srv)
}

func (s *Server) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	products, err := s.svc.Search(ctx, domain.SearchQuery{
		Text:     req.Query,
		Category: req.Category,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return &SearchResponse{Products: products}, nil
}

func (s *Server) GetProduct(ctx context.Context, req *GetProductRequest) (*GetProductResponse, error) {
	p, err := s.svc.FindByID(ctx, req.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &GetProductResponse{Product: p}, nil
}

func (s *Server) ListCategories(ctx context.Context, _ *ListCategoriesRequest) (*ListCategoriesResponse, error) {
	categories, err := s.svc.Categories(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	return &ListCategoriesResponse{Categories: categories}, nil
}

func mapErr(err error) error {
	if errors.Is(err, app.ErrInvalidInput) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if errors.Is(err, app.ErrNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}

type catalogServer interface {
	Search(context.Context, *SearchRequest) (*SearchResponse, error)
	GetProduct(context.Context, *GetProductRequest) (*GetProductResponse, error)
	ListCategories(context.Context, *ListCategoriesRequest) (*ListCategoriesResponse, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*catalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Search", Handler: grpcjson.Unary("/"+ServiceName+"/Search", catalogServer.Search)},
		{MethodName: "GetProduct", Handler: grpcjson.Unary("/"+ServiceName+"/GetProduct", catalogServer.GetProduct)},
		{MethodName: "ListCategories", Handler: grpcjson.Unary("/"+ServiceName+"/ListCategories", catalogServer.ListCategories)},
	},
}

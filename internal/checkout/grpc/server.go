package grpc

import (
	"context"
	"errors"

	cartapp "github.com/dwikikusuma/shoping-assistant/internal/cart/app"
	catalogapp "github.com/dwikikusuma/shoping-assistant/internal/catalog/app"
	"github.com/dwikikusuma/shoping-assistant/internal/checkout/app"
	"github.com/dwikikusuma/shoping-assistant/internal/checkout/domain"
	"github.com/dwikikusuma/shoping-assistant/pkg/grpcjson"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "shopassist.v1.CheckoutService"

type QuoteRequest struct {
	SessionID string `json:"sessionId"`
}

type QuoteResponse struct {
	Quote domain.Quote `json:"quote"`
}

type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func Register(gs *grpc.Server, srv *Server) {
	gs.RegisterService(&serviceDesc, srv)
}

func (s *Server) Quote(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error) {
	if req.SessionID == "" {
		return nil, status.Error(codes.InvalidArgument, "session_id is required")
	}

	q, err := s.svc.Quote(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, app.ErrEmptyCart) {
			return nil, status.Error(codes.NotFound, "cart is empty")
		}
		if errors.Is(err, cartapp.ErrSessionNotFound) || errors.Is(err, catalogapp.ErrNotFound) {
			return nil, status.Error(codes.NotFound, err.Error())
		}
		return nil, status.Errorf(codes.Internal, "quote failed: %v", err)
	}

	return &QuoteResponse{Quote: q}, nil
}

type checkoutServer interface {
	Quote(context.Context, *QuoteRequest) (*QuoteResponse, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*checkoutServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Quote", Handler: grpcjson.Unary("/"+ServiceName+"/Quote", checkoutServer.Quote)},
	},
}

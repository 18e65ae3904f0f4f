package grpc

import (
	"context"
	"errors"

	"github.com/dwikikusuma/shoping-assistant/internal/cart/app"
	"github.com/dwikikusuma/shoping-assistant/pkg/grpcjson"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "shopassist.v1.CartService"

type SessionID struct {
	SessionID string `json:"sessionId"`
}

type UpdateCartItemRequest struct {
	SessionID string `json:"sessionId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type RemoveCartItemRequest struct {
	SessionID string `json:"sessionId"`
	ProductID string `json:"productId"`
}

type CartResponse struct {
	Cart app.View `json:"cart"`
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

func (s *Server) GetCart(ctx context.Context, req *SessionID) (*CartResponse, error) {
	if req.SessionID == "" {
		return nil, status.Error(codes.InvalidArgument, "session_id is required")
	}
	return respond(s.svc.Get(ctx, req.SessionID))
}

func (s *Server) AddItem(ctx context.Context, req *UpdateCartItemRequest) (*CartResponse, error) {
	if req.SessionID == "" {
		return nil, status.Error(codes.InvalidArgument, "session_id is required")
	}
	return respond(s.svc.Add(ctx, req.SessionID, req.ProductID, req.Quantity))
}

func (s *Server) UpdateItem(ctx context.Context, req *UpdateCartItemRequest) (*CartResponse, error) {
	if req.SessionID == "" {
		return nil, status.Error(codes.InvalidArgument, "session_id is required")
	}
	return respond(s.svc.Update(ctx, req.SessionID, req.ProductID, req.Quantity))
}

func (s *Server) RemoveItem(ctx context.Context, req *RemoveCartItemRequest) (*CartResponse, error) {
	if req.SessionID == "" {
		return nil, status.Error(codes.InvalidArgument, "session_id is required")
	}
	return respond(s.svc.Remove(ctx, req.SessionID, req.ProductID))
}

func (s *Server) ClearCart(ctx context.Context, req *SessionID) (*CartResponse, error) {
	if req.SessionID == "" {
		return nil, status.Error(codes.InvalidArgument, "session_id is required")
	}
	return respond(s.svc.Clear(ctx, req.SessionID))
}

func respond(v app.View, err error) (*CartResponse, error) {
	if err != nil {
		return nil, mapErr(err)
	}
	return &CartResponse{Cart: v}, nil
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrSessionNotFound),
		errors.Is(err, app.ErrProductNotFound),
		errors.Is(err, app.ErrItemNotFound):
		return status.Error(codes.NotFound, err.Error())
	}
	return status.Errorf(codes.Internal, "cart operation failed: %v", err)
}

type cartServer interface {
	GetCart(context.Context, *SessionID) (*CartResponse, error)
	AddItem(context.Context, *UpdateCartItemRequest) (*CartResponse, error)
	UpdateItem(context.Context, *UpdateCartItemRequest) (*CartResponse, error)
	RemoveItem(context.Context, *RemoveCartItemRequest) (*CartResponse, error)
	ClearCart(context.Context, *SessionID) (*CartResponse, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*cartServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetCart", Handler: grpcjson.Unary("/"+ServiceName+"/GetCart", cartServer.GetCart)},
		{MethodName: "AddItem", Handler: grpcjson.Unary("/"+ServiceName+"/AddItem", cartServer.AddItem)},
		{MethodName: "UpdateItem", Handler: grpcjson.Unary("/"+ServiceName+"/UpdateItem", cartServer.UpdateItem)},
		{MethodName: "RemoveItem", Handler: grpcjson.Unary("/"+ServiceName+"/RemoveItem", cartServer.RemoveItem)},
		{MethodName: "ClearCart", Handler: grpcjson.Unary("/"+ServiceName+"/ClearCart", cartServer.ClearCart)},
	},
}

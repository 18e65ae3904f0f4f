package grpc

import (
	"context"
	"errors"

	"github.com/dwikikusuma/shoping-assistant/internal/chat/app"
	session "github.com/dwikikusuma/shoping-assistant/internal/session/domain"
	"github.com/dwikikusuma/shoping-assistant/pkg/grpcjson"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "shopassist.v1.ChatService"

type CreateSessionRequest struct {
	UserID string `json:"userId"`
}

type GetSessionRequest struct {
	SessionID string `json:"sessionId"`
}

type SessionResponse struct {
	Session session.Session `json:"session"`
}

type SendMessageRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
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

func (s *Server) CreateSession(ctx context.Context, req *CreateSessionRequest) (*SessionResponse, error) {
	sess, err := s.svc.StartSession(ctx, req.UserID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &SessionResponse{Session: sess}, nil
}

func (s *Server) GetSession(ctx context.Context, req *GetSessionRequest) (*SessionResponse, error) {
	sess, err := s.svc.Session(ctx, req.SessionID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &SessionResponse{Session: sess}, nil
}

func (s *Server) SendMessage(ctx context.Context, req *SendMessageRequest) (*app.Exchange, error) {
	ex, err := s.svc.Send(ctx, req.SessionID, req.Message)
	if err != nil {
		return nil, mapErr(err)
	}
	return &ex, nil
}

func mapErr(err error) error {
	if errors.Is(err, app.ErrInvalidInput) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if errors.Is(err, app.ErrSessionNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}
	return status.Errorf(codes.Internal, "chat operation failed: %v", err)
}

type chatServer interface {
	CreateSession(context.Context, *CreateSessionRequest) (*SessionResponse, error)
	GetSession(context.Context, *GetSessionRequest) (*SessionResponse, error)
	SendMessage(context.Context, *SendMessageRequest) (*app.Exchange, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*chatServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateSession", Handler: grpcjson.Unary("/"+ServiceName+"/CreateSession", chatServer.CreateSession)},
		{MethodName: "GetSession", Handler: grpcjson.Unary("/"+ServiceName+"/GetSession", chatServer.GetSession)},
		{MethodName: "SendMessage", Handler: grpcjson.Unary("/"+ServiceName+"/SendMessage", chatServer.SendMessage)},
	},
}

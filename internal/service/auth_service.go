package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/leaderboard/internal/auth"
)

// AuthService implements the leaderboard.v1.AuthService RPCs.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// Login checks the admin password and returns a signed admin token. A nil
// jwtManager means admin login is disabled.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	s.logger.Info("Login request")

	if s.jwtManager == nil {
		s.logger.Warn("Login refused, no token signing secret configured")
		return nil, connect.NewError(connect.CodeFailedPrecondition, auth.ErrNotConfigured)
	}
	if req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	subject, err := s.authenticator.Authenticate(ctx, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "error", err)
		if errors.Is(err, auth.ErrNotConfigured) {
			return nil, connect.NewError(connect.CodeFailedPrecondition, err)
		}
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, expires, err := s.jwtManager.Generate(subject)
	if err != nil {
		s.logger.Error("Failed to generate token", "subject", subject, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Admin logged in", "expires_at", expires)
	return connect.NewResponse(&LoginResponse{Token: token, ExpiresAt: expires}), nil
}

// NewAuthServiceHandler builds an HTTP handler for AuthService and returns
// the path to mount it on.
func NewAuthServiceHandler(svc *AuthService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)

	mux := http.NewServeMux()
	mux.Handle(ProcedureLogin, connect.NewUnaryHandler(ProcedureLogin, svc.Login, opts...))
	return "/" + AuthServiceName + "/", mux
}

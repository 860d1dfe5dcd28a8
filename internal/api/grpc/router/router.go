package router

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"

	"github.com/Innovatorone/InnoBOOKweb/internal/api/grpc/bookbitespb"
	"github.com/Innovatorone/InnoBOOKweb/internal/api/grpc/handler"
	"github.com/Innovatorone/InnoBOOKweb/internal/api/grpc/middleware"
	"github.com/Innovatorone/InnoBOOKweb/internal/logger"
	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// Router registers the BookBites gRPC services and their interceptors.
type Router struct {
	authService       handler.AuthService
	membershipService handler.MembershipService
	catalogService    handler.CatalogService
	tokenService      middleware.TokenService
	contextManager    model.ContextManager
	logger            *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	authService handler.AuthService,
	membershipService handler.MembershipService,
	catalogService handler.CatalogService,
	tokenService middleware.TokenService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:       authService,
		membershipService: membershipService,
		catalogService:    catalogService,
		tokenService:      tokenService,
		contextManager:    contextManager,
		logger:            logger,
	}
}

// authSkip selects the methods that require a bearer token.
func authSkip(_ context.Context, c interceptors.CallMeta) bool {
	return !strings.HasPrefix(c.FullMethod(), "/"+bookbitespb.AuthServiceName+"/")
}

// Register sets up the gRPC server with request logging and authentication
// interceptors and registers every service on it.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authSkip),
			),
		),
	)
	r.registerAuthRoutes(s)
	r.registerCollectionRoutes(s)
	r.registerBookRoutes(s)

	return s
}

func (r *Router) registerAuthRoutes(server *grpc.Server) {
	bookbitespb.RegisterAuthServer(server, handler.NewAuth(r.authService, r.logger))
}

func (r *Router) registerCollectionRoutes(server *grpc.Server) {
	bookbitespb.RegisterCollectionsServer(server, handler.NewCollections(r.membershipService, r.contextManager, r.logger))
}

func (r *Router) registerBookRoutes(server *grpc.Server) {
	bookbitespb.RegisterBooksServer(server, handler.NewBooks(r.catalogService, r.logger))
}

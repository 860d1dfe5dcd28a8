package main

import (
	"context"
	"fmt"
	"log"
	"maps"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	grpcctx "github.com/Innovatorone/InnoBOOKweb/internal/api/grpc/context"
	"github.com/Innovatorone/InnoBOOKweb/internal/api/grpc/router"
	grpcServer "github.com/Innovatorone/InnoBOOKweb/internal/api/grpc/server"
	"github.com/Innovatorone/InnoBOOKweb/internal/config"
	"github.com/Innovatorone/InnoBOOKweb/internal/logger"
	"github.com/Innovatorone/InnoBOOKweb/internal/model"
	"github.com/Innovatorone/InnoBOOKweb/internal/repository/dynamo"
	"github.com/Innovatorone/InnoBOOKweb/internal/repository/postgres"
	"github.com/Innovatorone/InnoBOOKweb/internal/server"
	"github.com/Innovatorone/InnoBOOKweb/internal/service"
	storage "github.com/Innovatorone/InnoBOOKweb/internal/storage/minio"
	"github.com/Innovatorone/InnoBOOKweb/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	memberships, err := membershipStores(ctx, cfg, db)
	if err != nil {
		logger.Fatal("failed to initialize membership backend", "backend", cfg.Backend, "error", err)
	}
	logger.Info("membership backend ready", "backend", cfg.Backend)

	covers, err := storage.Connect(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to initialize cover storage", "error", err)
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	tokenService := service.NewTokenService(tokenManager, logger)
	authService := service.NewAuth(postgres.NewUserRepository(db), tokenService, logger)
	membershipService := service.NewMembership(memberships, logger)
	catalogService := service.NewCatalog(postgres.NewBookRepository(db), covers, cfg.Storage.URLTTL, logger)
	ctxMgr := grpcctx.NewManager()

	r := router.New(authService, membershipService, catalogService, tokenService, ctxMgr, logger)
	grpcServer := grpcServer.NewGRPCServer(r.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))

	var sl model.SecurityLayer

	if cfg.GRPC.EnableHTTPS {
		sl = server.NewTLSListener(cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(ctx, sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(grpcServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := grpcServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", grpcServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// membershipStores builds one store per collection kind. Users, books and
// review likes always live in postgres; the dynamodb backend only takes
// over bookmarks, since a like must move reviews.likes in the same
// transaction.
func membershipStores(ctx context.Context, cfg *config.Config, db *postgres.Connection) (map[model.Kind]model.MembershipStore, error) {
	stores := map[model.Kind]model.MembershipStore{
		model.KindBookmarks:   postgres.NewBookmarkRepository(db),
		model.KindReviewLikes: postgres.NewReviewLikeRepository(db),
	}
	if cfg.Backend != config.BackendDynamoDB {
		return stores, nil
	}

	client, err := dynamo.NewClient(ctx, cfg.DynamoDB)
	if err != nil {
		return nil, err
	}
	return withDynamoBookmarks(stores, client, cfg.DynamoDB.TableName, postgres.NewBookRepository(db)), nil
}

type bookLookup interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Book, error)
}

func withDynamoBookmarks(stores map[model.Kind]model.MembershipStore, client dynamo.API, tableName string, books bookLookup) map[model.Kind]model.MembershipStore {
	out := maps.Clone(stores)
	out[model.KindBookmarks] = dynamo.NewMembershipStore(client, tableName, model.KindBookmarks,
		dynamo.WithMemberCheck(func(ctx context.Context, id uuid.UUID) (bool, error) {
			found, err := books.GetByIDs(ctx, []uuid.UUID{id})
			if err != nil {
				return false, err
			}
			return len(found) > 0, nil
		}),
	)
	return out
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/devenkumar1/Portfolio-app/internal/audit"
	"github.com/devenkumar1/Portfolio-app/internal/auth"
	"github.com/devenkumar1/Portfolio-app/internal/portfolio"
	"github.com/devenkumar1/Portfolio-app/internal/storage"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"
)

type Server struct {
	cfg Config

	mux     *http.ServeMux
	handler http.Handler // guard-wrapped mux

	signer  *auth.Signer
	issuer  *auth.Issuer
	guard   *auth.Guard
	users   auth.UserStore
	content portfolio.Store
	uploads storage.ObjectStore
	mail    mailer
	trail   *audit.Log
	logger  *log.Logger

	mongoClient *mongo.Client

	rlLoginIP    *keyedLimiter
	rlLoginEmail *keyedLimiter
}

// New wires the production server: one mongo connection for the whole
// process, shared by the user store and the content store.
func New(ctx context.Context, cfg Config) (*Server, error) {
	cfg.setDefaults()
	if cfg.MongoURI == "" {
		return nil, errors.New("server: MongoURI required")
	}
	if cfg.MongoDB == "" {
		return nil, errors.New("server: MongoDB required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("server: JWTSecret required")
	}

	cli, err := storage.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}

	users, err := auth.NewMongoUserStore(ctx, cli, cfg.MongoDB, cfg.UsersCollection)
	if err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, err
	}
	content, err := portfolio.NewMongoStore(cli, cfg.MongoDB)
	if err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, err
	}
	uploads, err := storage.NewS3Store(ctx, cfg.S3)
	if err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, err
	}

	s := newServer(cfg, users, content, uploads)
	s.mongoClient = cli
	s.mail = newSMTPMailer(cfg.SMTP, cfg.OwnerEmail, s.logger)
	return s, nil
}

// newServer assembles everything above the storage layer; tests call it
// directly with memory stores.
func newServer(cfg Config, users auth.UserStore, content portfolio.Store, uploads storage.ObjectStore) *Server {
	cfg.setDefaults()

	s := &Server{
		cfg:     cfg,
		mux:     http.NewServeMux(),
		signer:  auth.NewSigner([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.TokenTTL),
		guard:   auth.NewGuard(),
		users:   users,
		content: content,
		uploads: uploads,
		mail:    &noopMailer{},
		trail:   audit.New(),
		logger:  log.New(os.Stdout, "[portfoliod] ", log.LstdFlags|log.Lshortfile),
	}
	s.issuer = auth.NewIssuer(users, s.signer)

	perWindow := func(n int, window time.Duration) float64 { return float64(n) / window.Seconds() }
	s.rlLoginIP = newKeyedLimiter(rate.Limit(perWindow(10, time.Minute)), 10, time.Hour)
	s.rlLoginEmail = newKeyedLimiter(rate.Limit(perWindow(5, time.Minute)), 5, time.Hour)

	s.routes()
	s.handler = s.guard.Middleware(s.signer, writeErr)(s.mux)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Printf("panic: %v", rec)
			writeErr(w, http.StatusInternalServerError, "internal error")
		}
	}()

	s.addDefaultHeaders(w, r)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.handler.ServeHTTP(w, r)
}

func (s *Server) Handler() http.Handler { return s }

// Close releases the shared mongo connection.
func (s *Server) Close(ctx context.Context) error {
	if s.mongoClient == nil {
		return nil
	}
	return s.mongoClient.Disconnect(ctx)
}

func (s *Server) addDefaultHeaders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
	if strings.HasPrefix(r.URL.Path, "/api/") {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	}
}

// Package httpserver manages server creation and api routing.
package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/twothirdshuman/minecraft-banking/internal/accountdelivery"
	"github.com/twothirdshuman/minecraft-banking/internal/accountrepo"
	"github.com/twothirdshuman/minecraft-banking/internal/accountservice"
	"github.com/twothirdshuman/minecraft-banking/internal/middleware"
	"github.com/twothirdshuman/minecraft-banking/internal/transferdelivery"
	"github.com/twothirdshuman/minecraft-banking/internal/transferrepo"
	"github.com/twothirdshuman/minecraft-banking/internal/transferservice"
	"github.com/twothirdshuman/minecraft-banking/pkg/configpkg"
	"github.com/twothirdshuman/minecraft-banking/pkg/kvpkg"
)

// Server holds the ledger store, the handlers router and configuration.
type Server struct {
	Store  kvpkg.Store
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(store kvpkg.Store, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountRepo := accountrepo.New(store)
	transferRepo := transferrepo.New(store)

	accountService := accountservice.New(accountRepo, config)
	transferService := transferservice.New(transferRepo, accountService, config)

	accountHandler := accountdelivery.NewHandler(accountService)
	transferHandler := transferdelivery.NewHandler(transferService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.GET("/api/getAccounts", accountHandler.List)
	engine.GET("/api/getBalance", accountHandler.Balance)
	engine.POST("/api/createAccount", accountHandler.Create)
	engine.POST("/api/makeTransaction", transferHandler.Create)
	engine.POST("/api/printMoney", transferHandler.Mint)

	server := &Server{
		Store:  store,
		Engine: engine,
		Config: config,
	}

	return server, nil
}

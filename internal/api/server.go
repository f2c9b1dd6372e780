package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/tourneyhq/pokernights-api/docs"
	v1 "github.com/tourneyhq/pokernights-api/internal/api/handler/v1"
	"github.com/tourneyhq/pokernights-api/internal/api/middleware"
	"github.com/tourneyhq/pokernights-api/internal/config"
	"github.com/tourneyhq/pokernights-api/internal/repository"
	"github.com/tourneyhq/pokernights-api/internal/repository/dao"
	"github.com/tourneyhq/pokernights-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	SeasonSvc *service.SeasonService
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	playerHandler := s.initPlayerHandler(db)
	seasonHandler := s.initSeasonHandler(db)
	eventHandler := s.initEventHandler(db)
	liveHandler := s.initLiveHandler(db)
	s.MountHandlers(authHandler, playerHandler, seasonHandler, eventHandler, liveHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initPlayerHandler(db *gorm.DB) *v1.PlayerHandler {
	playerDAO := dao.NewPlayerDAO(db)
	repo := repository.NewPlayerRepository(playerDAO)
	svc := service.NewPlayerService(repo)
	handler := v1.NewPlayerHandler(svc)

	return handler
}

func (s *Server) initSeasonHandler(db *gorm.DB) *v1.SeasonHandler {
	seasonDAO := dao.NewSeasonDAO(db)
	repo := repository.NewSeasonRepository(seasonDAO)
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	playerRepo := repository.NewPlayerRepository(dao.NewPlayerDAO(db))
	svc := service.NewSeasonService(repo, eventRepo, playerRepo)
	handler := v1.NewSeasonHandler(svc)

	s.SeasonSvc = svc

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB) *v1.EventHandler {
	eventDAO := dao.NewEventDAO(db)
	repo := repository.NewEventRepository(eventDAO)
	seasonRepo := repository.NewSeasonRepository(dao.NewSeasonDAO(db))
	svc := service.NewEventService(repo, seasonRepo)
	handler := v1.NewEventHandler(svc)

	return handler
}

func (s *Server) initLiveHandler(db *gorm.DB) *v1.LiveHandler {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	playerRepo := repository.NewPlayerRepository(dao.NewPlayerDAO(db))
	svc := service.NewLiveService(eventRepo, playerRepo)
	handler := v1.NewLiveHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	playerHandler *v1.PlayerHandler,
	seasonHandler *v1.SeasonHandler,
	eventHandler *v1.EventHandler,
	liveHandler *v1.LiveHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	// The watch feed is open so spectators can follow along without an
	// account. Everything that mutates state stays behind JWT.
	public := s.Router.Group(basePath)
	{
		public.GET("/events/:eventID/live/watch", liveHandler.HandleWatch)
	}

	protected := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		protected.GET("/players", playerHandler.HandleListPlayers)
		protected.GET("/players/:playerID", playerHandler.HandleGetPlayer)
		protected.POST("/players", playerHandler.HandleCreatePlayer)
		protected.PUT("/players/:playerID", playerHandler.HandleUpdatePlayer)
		protected.DELETE("/players/:playerID", playerHandler.HandleDeletePlayer)

		protected.GET("/seasons", seasonHandler.HandleListSeasons)
		protected.GET("/seasons/:seasonID", seasonHandler.HandleGetSeason)
		protected.GET("/seasons/:seasonID/standings", seasonHandler.HandleGetStandings)
		protected.POST("/seasons", seasonHandler.HandleCreateSeason)
		protected.PUT("/seasons/:seasonID", seasonHandler.HandleUpdateSeason)
		protected.DELETE("/seasons/:seasonID", seasonHandler.HandleDeleteSeason)

		protected.GET("/events", eventHandler.HandleListEvents)
		protected.GET("/events/:eventID", eventHandler.HandleGetEvent)
		protected.POST("/events", eventHandler.HandleCreateEvent)
		protected.PUT("/events/:eventID", eventHandler.HandleUpdateEvent)
		protected.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)

		protected.POST("/events/:eventID/live/start", liveHandler.HandleStartSession)
		protected.GET("/events/:eventID/live", liveHandler.HandleGetLiveState)
		protected.POST("/events/:eventID/live/participants", liveHandler.HandleAddParticipant)
		protected.DELETE("/events/:eventID/live/participants/:playerID", liveHandler.HandleRemoveParticipant)
		protected.POST("/events/:eventID/live/participants/:playerID/rebuys", liveHandler.HandleChangeRebuys)
		protected.POST("/events/:eventID/live/participants/:playerID/eliminate", liveHandler.HandleEliminate)
		protected.POST("/events/:eventID/live/undo", liveHandler.HandleUndoElimination)
		protected.GET("/events/:eventID/live/snapshot", liveHandler.HandleSnapshot)
		protected.POST("/events/:eventID/live/restore", liveHandler.HandleRestoreSession)
		protected.POST("/events/:eventID/live/finalize", liveHandler.HandleFinalize)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Poker Nights API"
	docs.SwaggerInfo.Description = "Tournament management for recreational poker leagues."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

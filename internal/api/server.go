package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"gorm.io/gorm"

	"github.com/estadio/stadium-api/docs"
	v1 "github.com/estadio/stadium-api/internal/api/handler/v1"
	"github.com/estadio/stadium-api/internal/api/middleware"
	"github.com/estadio/stadium-api/internal/config"
	"github.com/estadio/stadium-api/internal/domain"
	"github.com/estadio/stadium-api/internal/notify"
	"github.com/estadio/stadium-api/internal/repository"
	"github.com/estadio/stadium-api/internal/repository/dao"
	"github.com/estadio/stadium-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

type handlers struct {
	auth          *v1.AuthHandler
	user          *v1.UserHandler
	memberRequest *v1.MemberRequestHandler
	stadium       *v1.StadiumHandler
	game          *v1.GameHandler
	ticket        *v1.TicketHandler
	events        *v1.EventsHandler
}

// NewServer wires every layer on top of db. Domain events go to notifier;
// stream serves them to websocket subscribers.
func NewServer(conf *config.AppConfig, db *gorm.DB, notifier notify.Notifier, stream v1.EventStream) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	v1.SetMaxPageLimit(conf.Pagination.MaxLimit)

	s.MountMiddlewares()
	s.MountHandlers(s.initHandlers(db, notifier, stream))

	return s
}

func (s *Server) initHandlers(db *gorm.DB, notifier notify.Notifier, stream v1.EventStream) handlers {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db), dao.NewMemberDAO(db))
	requestRepo := repository.NewMemberRequestRepository(dao.NewMemberRequestDAO(db))
	catalogRepo := repository.NewCatalogRepository(dao.NewStadiumDAO(db), dao.NewGameDAO(db))
	ticketRepo := repository.NewTicketRepository(dao.NewTicketDAO(db))

	authSvc := service.NewAuthService(userRepo)
	userSvc := service.NewUserService(userRepo, notifier)
	membershipSvc := service.NewMembershipService(requestRepo, notifier)
	catalogSvc := service.NewCatalogService(catalogRepo, notifier)
	ticketSvc := service.NewTicketService(ticketRepo, catalogRepo, userRepo)

	return handlers{
		auth:          v1.NewAuthHandler(s.Config.API, authSvc),
		user:          v1.NewUserHandler(userSvc, authSvc),
		memberRequest: v1.NewMemberRequestHandler(membershipSvc),
		stadium:       v1.NewStadiumHandler(catalogSvc),
		game:          v1.NewGameHandler(catalogSvc),
		ticket:        v1.NewTicketHandler(ticketSvc),
		events:        v1.NewEventsHandler(s.Config.API, stream),
	}
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API))

	p := ginprometheus.NewPrometheus("gin")
	// Label by route pattern so ids in the path don't explode cardinality.
	p.ReqCntURLLabelMappingFn = func(ctx *gin.Context) string {
		if path := ctx.FullPath(); path != "" {
			return path
		}
		return "unmatched"
	}
	p.Use(s.Router)
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	var (
		admin         = middleware.Authorize(domain.ScopeAdmin)
		customer      = middleware.Authorize(domain.ScopeMember, domain.ScopeNotMember)
		anyRole       = middleware.Authorize(domain.ScopeAdmin, domain.ScopeMember, domain.ScopeNotMember)
		requester     = middleware.Authorize(domain.ScopeNotMember)
		requesterSelf = middleware.Authorize(domain.ScopeNotMember, domain.ScopeMember)
	)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/register", h.auth.HandleRegister)
		public.POST("/auth/login", h.auth.HandleLogin)
		public.GET("/games/public", h.game.HandleListPublicGames)
		public.GET("/games/public/:gameID", h.game.HandleGetPublicGame)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API).VerifyJWT())
	{
		authed.GET("/auth/logout", h.auth.HandleLogout)
		authed.GET("/auth/me", h.auth.HandleMe)

		authed.GET("/users", admin, h.user.HandleListUsers)
		authed.POST("/users", admin, h.user.HandleCreateUser)
		authed.PUT("/users/:userID", admin, h.user.HandleUpdateUser)
		authed.POST("/users/:userID/member", admin, h.user.HandleAttachMember)
		authed.PUT("/users/:userID/member", admin, h.user.HandleUpdateMemberOfUser)
		authed.GET("/users/member", anyRole, h.user.HandleListMembers)
		authed.GET("/users/member/:memberID", anyRole, h.user.HandleGetMember)
		authed.GET("/users/member/tax/:taxNumber", anyRole, h.user.HandleGetMemberByTaxNumber)

		authed.POST("/member-requests", requester, h.memberRequest.HandleSubmit)
		authed.GET("/member-requests", admin, h.memberRequest.HandleListRequests)
		authed.GET("/member-requests/my-requests", requesterSelf, h.memberRequest.HandleMyRequests)
		authed.PUT("/member-requests/:requestID/approve", admin, h.memberRequest.HandleApprove)
		authed.PUT("/member-requests/:requestID/reject", admin, h.memberRequest.HandleReject)

		authed.POST("/stadiums", admin, h.stadium.HandleCreateStadium)
		authed.GET("/stadiums", anyRole, h.stadium.HandleListStadiums)
		authed.GET("/stadiums/:stadiumID", h.stadium.HandleGetStadium)
		authed.PUT("/stadiums/:stadiumID", admin, h.stadium.HandleUpdateStadium)

		authed.POST("/games", admin, h.game.HandleCreateGame)
		authed.GET("/games", anyRole, h.game.HandleListGames)
		authed.GET("/games/:gameID", anyRole, h.game.HandleGetGame)
		authed.PUT("/games/:gameID", admin, h.game.HandleUpdateGame)

		authed.POST("/tickets/purchase", customer, h.ticket.HandlePurchase)
		authed.POST("/tickets/user", admin, h.ticket.HandleCreateForUser)
		authed.GET("/tickets", anyRole, h.ticket.HandleListTickets)
		authed.GET("/tickets/game/:gameID", h.ticket.HandleListByGame)
		authed.GET("/tickets/:ticketID", h.ticket.HandleGetTicket)
		authed.PUT("/tickets/:ticketID", admin, h.ticket.HandleUpdateTicket)
	}

	s.Router.GET("/ws", h.events.HandleEvents)
	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Stadium API"
	docs.SwaggerInfo.Description = "Tickets, games, stadiums and club membership."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

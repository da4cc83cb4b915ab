package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shilo-maker/solupresenter-sub003/internal/bible"
	"github.com/shilo-maker/solupresenter-sub003/internal/config"
	database "github.com/shilo-maker/solupresenter-sub003/internal/db"
	"github.com/shilo-maker/solupresenter-sub003/internal/hub"
	"github.com/shilo-maker/solupresenter-sub003/internal/storage"

	"github.com/shilo-maker/solupresenter-sub003/internal/api/handlers"
	"github.com/shilo-maker/solupresenter-sub003/internal/api/middleware"
)

type Server struct {
	cfg     *config.Config
	db      *database.Client
	storage *storage.Client
	hub     *hub.Hub
	router  *gin.Engine
}

func New(cfg *config.Config, db *database.Client, st *storage.Client, h *hub.Hub) *Server {
	gin.SetMode(gin.ReleaseMode)

	middleware.JwtSecret = []byte(cfg.Auth.JWTSecret)

	s := &Server{
		cfg:     cfg,
		db:      db,
		storage: st,
		hub:     h,
		router:  gin.New(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.SilentLogger())
	s.router.Use(gin.Recovery())

	// CORS Configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}

	// "Authorization" must be allowed so the console can send the JWT
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}

	s.router.Use(cors.New(corsConfig))
}

func (s *Server) setupRoutes() {
	// 1. Initialize Modular Handlers
	authHandler := handlers.NewAuthHandler(s.db.DB, s.cfg.Auth.TokenHours)
	songHandler := handlers.NewSongHandler(s.db.DB)
	setlistHandler := handlers.NewSetlistHandler(s.db.DB)
	mediaHandler := handlers.NewMediaHandler(s.db.DB, s.storage)
	bibleHandler := handlers.NewBibleHandler(
		bible.NewClient(s.cfg.Bible.APIBaseURL, s.cfg.Bible.Language))
	presetHandler := handlers.NewPresetHandler()
	roomHandler := handlers.NewRoomHandler(s.hub, database.NewSetlistStore(s.db.DB))

	// Health Check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "solupresenter"})
	})

	// API Group
	v1 := s.router.Group("/api/v1")
	{
		// ==========================================
		// PUBLIC ROUTES (No Token Required)
		// ==========================================
		v1.POST("/auth/login", authHandler.Login)

		// Viewers join with nothing but the room pin
		v1.GET("/join/:pin", roomHandler.JoinByPin)

		// ==========================================
		// PROTECTED ROUTES (JWT Token Required)
		// ==========================================
		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth())
		{
			// --- ADMIN ONLY ---
			protected.POST("/auth/register", middleware.RequireRole("admin"), authHandler.Register)

			op := middleware.RequireRole("operator")

			// --- SONG LIBRARY ---
			protected.GET("/songs", op, songHandler.GetSongs)
			protected.GET("/songs/:id", op, songHandler.GetSong)
			protected.GET("/songs/:id/item", op, songHandler.GetSongItem)
			protected.POST("/songs", op, songHandler.CreateSong)
			protected.PUT("/songs/:id", op, songHandler.UpdateSong)
			protected.DELETE("/songs/:id", op, songHandler.DeleteSong)

			// --- SAVED SETLISTS ---
			protected.GET("/setlists", op, setlistHandler.GetSetlists)
			protected.GET("/setlists/:id", op, setlistHandler.GetSetlist)
			protected.DELETE("/setlists/:id", op, setlistHandler.DeleteSetlist)

			// --- MEDIA ---
			protected.GET("/media", op, mediaHandler.GetFiles)
			protected.GET("/media/:id", op, mediaHandler.DownloadFile)
			protected.POST("/media/analyze", op, mediaHandler.PreAnalyzeFile)
			protected.POST("/media", op, mediaHandler.UploadFile)
			protected.DELETE("/media/:id", op, mediaHandler.DeleteFile)

			// --- BIBLE & PRESETS ---
			protected.GET("/bible", op, bibleHandler.Lookup)
			protected.GET("/presets/countdowns/:name", op, presetHandler.GetCountdownPreset)
			protected.GET("/presets/messages/:name", op, presetHandler.GetMessagesPreset)

			// --- ROOMS ---
			protected.POST("/rooms", op, roomHandler.CreateRoom)
			protected.GET("/rooms/:id", op, roomHandler.GetRoom)
			protected.DELETE("/rooms/:id", op, roomHandler.CloseRoom)

			// --- LIVE CONTROL ---
			room := protected.Group("/rooms/:id", op)
			{
				room.POST("/select-item", roomHandler.SelectItem)
				room.POST("/select-slide", roomHandler.SelectSlide)
				room.POST("/select-combined", roomHandler.SelectCombined)
				room.POST("/next-slide", roomHandler.NextSlide)
				room.POST("/prev-slide", roomHandler.PrevSlide)
				room.POST("/next-item", roomHandler.NextItem)
				room.POST("/prev-item", roomHandler.PrevItem)

				room.POST("/blank", roomHandler.ToggleBlank)
				room.POST("/display-mode", roomHandler.SetDisplayMode)
				room.POST("/background", roomHandler.SetBackground)
				room.POST("/quick-slide", roomHandler.QuickSlide)
				room.POST("/transient-item", roomHandler.ShowTransientItem)
				room.POST("/local-media", roomHandler.ShowLocalMedia)

				room.POST("/countdown/start", roomHandler.StartCountdown)
				room.POST("/countdown/stop", roomHandler.StopCountdown)
				room.POST("/messages/start", roomHandler.StartMessages)
				room.POST("/messages/stop", roomHandler.StopMessages)
				room.POST("/announcement/show", roomHandler.ShowAnnouncement)
				room.POST("/announcement/hide", roomHandler.HideAnnouncement)

				room.POST("/setlist/items", roomHandler.AppendItem)
				room.POST("/setlist/insert", roomHandler.InsertItem)
				room.DELETE("/setlist/items/:index", roomHandler.RemoveItem)
				room.POST("/setlist/move", roomHandler.MoveItem)
				room.POST("/setlist/load", roomHandler.LoadSetlist)
				room.POST("/setlist/save", roomHandler.SaveSetlist)
			}
		}
	}
}

// Start runs the server on the configured port
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}

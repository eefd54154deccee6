package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"teamtask/internal/config"
	"teamtask/internal/handler"
	"teamtask/internal/notify"
	"teamtask/internal/state"
	"teamtask/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Server struct {
	Engine *gin.Engine
	State  *state.AppState
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	storeClient := store.NewClient(cfg.StoreURL)
	appState := state.New(storeClient, pickSender(cfg))

	// First sync with the store. A failure is not fatal: the error phase
	// is surfaced through the snapshot and a reload can recover.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	if err := appState.Load(ctx); err != nil {
		log.Printf("⚠️  Initial load from task store failed: %v", err)
	} else {
		log.Println("✅ Loaded tasks and assignees from the task store")
	}

	// Setup Gin
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.FrontendOrigin},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders: []string{"Content-Type"},
	}))

	taskHandler := handler.NewTaskHandler(appState)
	assigneeHandler := handler.NewAssigneeHandler(appState)
	viewHandler := handler.NewViewHandler(appState)

	// Task routes
	r.GET("/tasks", taskHandler.List)
	r.POST("/tasks", taskHandler.Create)
	r.PUT("/tasks/:id", taskHandler.Update)
	r.DELETE("/tasks/:id", taskHandler.Delete)
	r.POST("/tasks/:id/complete", taskHandler.Complete)
	r.POST("/tasks/:id/notify", taskHandler.Notify)
	r.POST("/reload", taskHandler.Reload)

	// Assignee routes
	r.GET("/assignees", assigneeHandler.List)
	r.POST("/assignees", assigneeHandler.Create)
	r.PUT("/assignees/:id", assigneeHandler.Update)
	r.DELETE("/assignees/:id", assigneeHandler.Delete)

	// View routes
	r.GET("/dashboard", viewHandler.Dashboard)
	r.GET("/state", viewHandler.Snapshot)
	r.PUT("/view", viewHandler.SetView)
	r.GET("/form/new", viewHandler.NewForm)
	r.GET("/form/end-times", viewHandler.EndTimeOptions)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &Server{
		Engine: r,
		State:  appState,
		Config: cfg,
	}, nil
}

// pickSender chooses the delivery path: the local proxy when configured,
// direct Telegram otherwise, direct LINE as the last option. With no
// credentials at all, notifications are disabled.
func pickSender(cfg *config.Config) notify.Sender {
	switch {
	case cfg.NotifyProxyURL != "":
		log.Printf("✅ Notifications relayed through proxy at %s", cfg.NotifyProxyURL)
		return notify.NewProxyClient(cfg.NotifyProxyURL)
	case cfg.TelegramBotToken != "" && cfg.TelegramChatID != "":
		log.Println("✅ Notifications sent directly to Telegram")
		return notify.NewTelegramClient(cfg.TelegramBotToken, cfg.TelegramChatID)
	case cfg.LineChannelToken != "" && cfg.LineGroupID != "":
		log.Println("✅ Notifications sent directly to LINE")
		return notify.NewLineClient(cfg.LineChannelToken, cfg.LineGroupID)
	default:
		log.Println("⚠️  No notification credentials configured, chat notifications are disabled")
		return nil
	}
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}

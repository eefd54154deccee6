package notifier

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"teamtask/internal/config"
	"teamtask/internal/notify"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Server is the local notification forwarder: it relays {message} posts to
// the chat-bot APIs so the bot tokens never reach the browser, and it
// receives webhook callbacks to discover chat and group ids.
type Server struct {
	Engine   *gin.Engine
	Config   *config.Config
	telegram *notify.TelegramClient
	line     *notify.LineClient
	registry Registry
}

func Init(cfg *config.Config, registry Registry) *Server {
	s := &Server{
		Config:   cfg,
		registry: registry,
	}

	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		s.telegram = notify.NewTelegramClient(cfg.TelegramBotToken, cfg.TelegramChatID)
	}
	if cfg.LineChannelToken != "" && cfg.LineGroupID != "" {
		s.line = notify.NewLineClient(cfg.LineChannelToken, cfg.LineGroupID)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.FrontendOrigin},
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Content-Type"},
	}))

	r.POST("/api/send-telegram-notification", s.SendTelegram)
	r.POST("/api/send-line-notification", s.SendLine)
	r.POST("/webhook", s.Webhook)
	r.GET("/api/chats", s.Chats)

	s.Engine = r
	return s
}

type sendRequest struct {
	Message string `json:"message" binding:"required"`
}

func (s *Server) SendTelegram(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing message"})
		return
	}

	if s.telegram == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID is not set."})
		return
	}

	if err := s.telegram.Send(c.Request.Context(), req.Message); err != nil {
		log.Printf("⚠️  Failed to send Telegram notification: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send Telegram notification"})
		return
	}

	log.Println("✅ Telegram notification sent successfully")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) SendLine(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing message"})
		return
	}

	if s.line == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "LINE_CHANNEL_ACCESS_TOKEN or LINE_GROUP_ID is not set."})
		return
	}

	if err := s.line.Send(c.Request.Context(), req.Message); err != nil {
		log.Printf("⚠️  Failed to send LINE notification: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send LINE notification"})
		return
	}

	log.Println("✅ LINE notification sent successfully")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// webhookPayload covers both provider shapes: Telegram wraps the chat id
// in message.chat.id, LINE carries group ids in events[].source.
type webhookPayload struct {
	Message *struct {
		Chat *struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
	Events []struct {
		Source struct {
			Type    string `json:"type"`
			GroupID string `json:"groupId"`
		} `json:"source"`
	} `json:"events"`
}

// Webhook records any chat or group id found in the pushed event. It
// always acknowledges with 200 regardless of the payload shape.
func (s *Server) Webhook(c *gin.Context) {
	var payload webhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Println("Received a webhook request, but could not parse the body.")
		c.Status(http.StatusOK)
		return
	}

	found := false
	if payload.Message != nil && payload.Message.Chat != nil {
		chatID := strconv.FormatInt(payload.Message.Chat.ID, 10)
		s.record("telegram", chatID)
		found = true
	}
	for _, event := range payload.Events {
		if event.Source.Type == "group" && event.Source.GroupID != "" {
			s.record("line", event.Source.GroupID)
			found = true
		}
	}

	if !found {
		log.Println("Received a webhook request, but could not find a chat id.")
	}
	c.Status(http.StatusOK)
}

// Chats lists every discovered chat id.
func (s *Server) Chats(c *gin.Context) {
	chats, err := s.registry.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list chats"})
		return
	}
	if chats == nil {
		chats = []Chat{}
	}
	c.JSON(http.StatusOK, chats)
}

func (s *Server) record(provider, chatID string) {
	log.Println("-------------------------------------------")
	log.Printf("Found %s chat id: %s", provider, chatID)
	log.Println("-------------------------------------------")
	if err := s.registry.Save(provider, chatID); err != nil {
		log.Printf("⚠️  Failed to record chat id: %v", err)
	}
}

// Run starts the forwarder: checks the port is free, registers the
// Telegram webhook when configured, then serves until interrupted.
func (s *Server) Run() error {
	addr := ":" + s.Config.NotifierPort

	// The original deployments kept colliding on this port, hence the
	// explicit probe with a readable error.
	probe, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %s is already in use, close the other application or pick a different port", s.Config.NotifierPort)
	}
	probe.Close()

	s.registerWebhook()

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Notification forwarder listening on port %s\n", s.Config.NotifierPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down notification forwarder...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Println("✅ Notification forwarder exited properly")
	return nil
}

func (s *Server) registerWebhook() {
	if s.telegram == nil || s.Config.WebhookURL == "" {
		log.Println("⚠️  TELEGRAM_BOT_TOKEN or WEBHOOK_URL is not set. Skipping webhook setup.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.telegram.SetWebhook(ctx, s.Config.WebhookURL); err != nil {
		log.Printf("⚠️  Failed to set Telegram webhook: %v", err)
		return
	}
	log.Printf("✅ Telegram webhook set to %s", s.Config.WebhookURL)
}

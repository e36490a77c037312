// Package server provides the REST API: recommendations, reactions, notifications, user preferences,
// admin operations and the telegram webhook.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/umputun/newsdrop/pkg/domain"
	"github.com/umputun/newsdrop/pkg/feed"
	"github.com/umputun/newsdrop/pkg/recommend"
	"github.com/umputun/newsdrop/pkg/scheduler"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/recommender.go -pkg mocks -skip-ensure -fmt goimports . Recommender
//go:generate moq -out mocks/preferences.go -pkg mocks -skip-ensure -fmt goimports . Preferences
//go:generate moq -out mocks/notification_store.go -pkg mocks -skip-ensure -fmt goimports . NotificationStore
//go:generate moq -out mocks/user_store.go -pkg mocks -skip-ensure -fmt goimports . UserStore
//go:generate moq -out mocks/sender.go -pkg mocks -skip-ensure -fmt goimports . Sender
//go:generate moq -out mocks/category_lister.go -pkg mocks -skip-ensure -fmt goimports . CategoryLister
//go:generate moq -out mocks/article_counter.go -pkg mocks -skip-ensure -fmt goimports . ArticleCounter
//go:generate moq -out mocks/scraper.go -pkg mocks -skip-ensure -fmt goimports . Scraper
//go:generate moq -out mocks/telegram_bot.go -pkg mocks -skip-ensure -fmt goimports . TelegramBot

const defaultListLimit = 100

// Server represents HTTP server instance
type Server struct {
	config         ConfigProvider
	recommender    Recommender
	preferences    Preferences
	notifications  NotificationStore
	users          UserStore
	sender         Sender
	categories     CategoryLister
	articles       ArticleCounter
	scraper        Scraper
	telegram       TelegramBot
	tgSecret       string
	retention      time.Duration
	defaultCats    []string
	recommendLimit int
	version        string
	debug          bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// Recommender ranks articles for a user
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) ([]recommend.ScoredArticle, error)
}

// Preferences records reactions and reports on preference profiles
type Preferences interface {
	RecordReaction(ctx context.Context, r domain.Reaction) (domain.ReactionResult, error)
	ApplyDecay(ctx context.Context) (int, error)
	Summary(ctx context.Context, userID string) (*domain.ProfileSummary, error)
}

// NotificationStore reads, aggregates and removes delivery records
type NotificationStore interface {
	GetDelivery(ctx context.Context, id string) (*domain.DeliveryRecord, error)
	ListDeliveries(ctx context.Context, limit int) ([]domain.DeliveryRecord, error)
	ListUserDeliveries(ctx context.Context, userID string, limit int) ([]domain.DeliveryRecord, error)
	DeleteDelivery(ctx context.Context, id string) error
	DeliveryStats(ctx context.Context, now time.Time) (*domain.DeliveryStats, error)
}

// UserStore manages user channel configs
type UserStore interface {
	GetAll(ctx context.Context) ([]domain.UserChannelConfig, error)
	GetUser(ctx context.Context, userID string) (*domain.UserChannelConfig, error)
	GetUserByTelegramChat(ctx context.Context, chatID string) (*domain.UserChannelConfig, error)
	SaveUser(ctx context.Context, cfg *domain.UserChannelConfig) error
}

// Sender delivers manual notifications to one or many users
type Sender interface {
	Send(ctx context.Context, msg scheduler.ManualMessage) (*domain.DeliveryRecord, error)
	Broadcast(ctx context.Context, msg scheduler.BroadcastMessage) (scheduler.BroadcastResult, error)
}

// CategoryLister returns categories that have stored articles
type CategoryLister interface {
	Categories(ctx context.Context) ([]string, error)
}

// ArticleCounter counts stored articles of a category
type ArticleCounter interface {
	CountByCategory(ctx context.Context, category string) (int, error)
}

// Scraper runs feed collection and article cleanup on demand
type Scraper interface {
	Collect(ctx context.Context) (feed.CollectStats, error)
	CollectCategory(ctx context.Context, category string) (feed.CollectStats, error)
	Cleanup(ctx context.Context, retention time.Duration) (int64, error)
	Categories() []string
}

// TelegramBot answers reaction button presses
type TelegramBot interface {
	AnswerCallback(ctx context.Context, callbackID, text string) error
}

// Params holds server dependencies
type Params struct {
	Config            ConfigProvider
	Recommender       Recommender
	Preferences       Preferences
	Notifications     NotificationStore
	Users             UserStore
	Sender            Sender
	Categories        CategoryLister
	Articles          ArticleCounter
	Scraper           Scraper
	Telegram          TelegramBot   // optional, reaction callbacks are not answered without it
	TelegramSecret    string        // optional, checked against X-Telegram-Bot-Api-Secret-Token
	Retention         time.Duration // article age removed by the cleanup endpoint
	DefaultCategories []string      // used when the article store has no categories yet
	RecommendLimit    int
	Version           string
	Debug             bool
}

// New initializes a new server instance
func New(p Params) *Server {
	if p.RecommendLimit <= 0 {
		p.RecommendLimit = recommend.DefaultLimit
	}
	s := &Server{
		config:         p.Config,
		recommender:    p.Recommender,
		preferences:    p.Preferences,
		notifications:  p.Notifications,
		users:          p.Users,
		sender:         p.Sender,
		categories:     p.Categories,
		articles:       p.Articles,
		scraper:        p.Scraper,
		telegram:       p.Telegram,
		tgSecret:       p.TelegramSecret,
		retention:      p.Retention,
		defaultCats:    p.DefaultCategories,
		recommendLimit: p.RecommendLimit,
		version:        p.Version,
		debug:          p.Debug,
		router:         routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("newsdrop", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024))
}

func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("POST /recommendations/admin/apply-decay", s.applyDecayHandler)
		r.HandleFunc("GET /recommendations/{userId}", s.recommendationsHandler)
		r.HandleFunc("GET /recommendations/{userId}/profile", s.profileHandler)
		r.HandleFunc("POST /recommendations/{userId}/react", s.reactHandler)

		r.HandleFunc("GET /notifications", s.listNotificationsHandler)
		r.HandleFunc("POST /notifications", s.sendNotificationHandler)
		r.HandleFunc("GET /notifications/user/{userId}", s.userNotificationsHandler)
		r.HandleFunc("GET /notifications/{id}", s.getNotificationHandler)
		r.HandleFunc("DELETE /notifications/{id}", s.deleteNotificationHandler)

		r.HandleFunc("GET /users", s.listUsersHandler)
		r.HandleFunc("GET /users/{userId}", s.getUserHandler)
		r.HandleFunc("PUT /users/{userId}", s.putUserHandler)

		r.HandleFunc("GET /admin/stats", s.adminStatsHandler)
		r.HandleFunc("POST /admin/broadcast/all", s.broadcastAllHandler)
		r.HandleFunc("POST /admin/broadcast/selected", s.broadcastSelectedHandler)

		r.HandleFunc("POST /scraper/run", s.scrapeHandler)
		r.HandleFunc("POST /scraper/run/{category}", s.scrapeCategoryHandler)
		r.HandleFunc("GET /scraper/counts", s.articleCountsHandler)
		r.HandleFunc("GET /scraper/counts/{category}", s.articleCountHandler)
		r.HandleFunc("POST /scraper/cleanup", s.cleanupHandler)

		r.HandleFunc("GET /telegram/webhook", s.telegramWebhookInfoHandler)
		r.HandleFunc("POST /telegram/webhook", s.telegramWebhookHandler)
	})

	s.router.Handle("GET /metrics", promhttp.Handler())
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// queryLimit parses the "limit" query parameter, returns def if missing
func queryLimit(r *http.Request, def int) (int, error) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return def, nil
	}
	limit, err := strconv.Atoi(v)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("invalid limit %q: %w", v, domain.ErrValidation)
	}
	return limit, nil
}

// decodeJSON reads the request body into v
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", domain.ErrValidation)
	}
	return nil
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON with the status derived from the error
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	code := errorCode(err)
	if code == http.StatusInternalServerError {
		lgr.Printf("[ERROR] %s %s: %v", r.Method, r.URL.Path, err)
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}

func errorCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

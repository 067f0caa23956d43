package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	billingUC "demopilot/internal/application/billing/usecases"
	subscriptionUC "demopilot/internal/application/subscription/usecases"
	"demopilot/internal/infrastructure/auth"
	infrabilling "demopilot/internal/infrastructure/billing"
	"demopilot/internal/infrastructure/config"
	"demopilot/internal/infrastructure/email"
	"demopilot/internal/infrastructure/repository"
	"demopilot/internal/interfaces/http/handlers"
	"demopilot/internal/interfaces/http/middleware"
	"demopilot/internal/interfaces/http/validators"
	"demopilot/internal/shared/logger"
)

// Router assembles the HTTP surface: the provider-facing webhook endpoint
// and the client-facing subscription and checkout endpoints.
type Router struct {
	engine              *gin.Engine
	webhookHandler      *handlers.WebhookHandler
	billingHandler      *handlers.BillingHandler
	subscriptionHandler *handlers.SubscriptionHandler
	authMiddleware      *middleware.AuthMiddleware
	rateLimiter         *middleware.RateLimiter
}

// NewRouter wires repositories, use cases, and handlers onto a gin engine.
func NewRouter(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Router, error) {
	if err := validators.Register(); err != nil {
		return nil, err
	}

	log := logger.NewLogger()

	subscriptionRepo := repository.NewSubscriptionRepository(db, log.Named("subscription-repo"))

	verifier := infrabilling.NewStripeEventVerifier(&cfg.Billing, log.Named("webhook-verifier"))
	gateway := infrabilling.NewStripeGateway(&cfg.Billing, log.Named("stripe-gateway"))

	checkoutCompletedUC := billingUC.NewApplyCheckoutCompletedUseCase(subscriptionRepo, cfg.Billing.IntervalDays, log.Named("checkout-completed"))
	subscriptionUpdatedUC := billingUC.NewApplySubscriptionUpdatedUseCase(subscriptionRepo, log.Named("subscription-updated"))
	subscriptionDeletedUC := billingUC.NewApplySubscriptionDeletedUseCase(subscriptionRepo, log.Named("subscription-deleted"))

	if cfg.Email.Enabled {
		notifier := email.NewSMTPAlertNotifier(&cfg.Email, log.Named("alert-notifier"))
		subscriptionUpdatedUC.SetAlertNotifier(notifier)
		subscriptionDeletedUC.SetAlertNotifier(notifier)
	}

	dispatcher := billingUC.NewEventDispatcher(
		checkoutCompletedUC,
		subscriptionUpdatedUC,
		subscriptionDeletedUC,
		log.Named("dispatcher"),
	)

	initiateCheckoutUC := billingUC.NewInitiateCheckoutUseCase(gateway, cfg.Billing, log.Named("initiate-checkout"))
	getSubscriptionUC := subscriptionUC.NewGetSubscriptionUseCase(subscriptionRepo, log.Named("get-subscription"))
	requestCancellationUC := subscriptionUC.NewRequestCancellationUseCase(subscriptionRepo, log.Named("request-cancellation"))

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret)

	r := &Router{
		webhookHandler:      handlers.NewWebhookHandler(verifier, dispatcher),
		billingHandler:      handlers.NewBillingHandler(initiateCheckoutUC),
		subscriptionHandler: handlers.NewSubscriptionHandler(getSubscriptionUC, requestCancellationUC),
		authMiddleware:      middleware.NewAuthMiddleware(jwtService, log.Named("auth")),
	}

	if redisClient != nil {
		r.rateLimiter = middleware.NewRateLimiter(redisClient, 60, time.Minute)
	}

	r.engine = r.buildEngine(cfg)
	return r, nil
}

func (r *Router) buildEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(logger.NewLogger()))
	engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")

	billing := api.Group("/billing")
	{
		// Authenticated by signature, not by session token.
		billing.POST("/webhook", r.webhookHandler.HandleWebhook)

		checkout := billing.Group("")
		checkout.Use(r.authMiddleware.RequireAuth())
		if r.rateLimiter != nil {
			checkout.Use(r.rateLimiter.Limit())
		}
		checkout.POST("/checkout", r.billingHandler.InitiateCheckout)
	}

	subscriptions := api.Group("/subscriptions")
	subscriptions.Use(r.authMiddleware.RequireAuth())
	{
		subscriptions.GET("/me", r.subscriptionHandler.GetMySubscription)
		subscriptions.POST("/me/cancel", r.subscriptionHandler.CancelMySubscription)
	}

	return engine
}

// Engine exposes the underlying gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"auction-service/internal/auth"
	"auction-service/internal/config"
	"auction-service/internal/db"
	"auction-service/internal/handlers"
	"auction-service/internal/middleware"
	"auction-service/internal/observability"
	"auction-service/internal/payments"
	"auction-service/internal/rabbitmq"
	"auction-service/internal/repositories"
	"auction-service/internal/telemetry"
	"auction-service/internal/ws"
)

func main() {
	cfg := config.Load()
	cfg.SetupLogging()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logrus.Fatalf("failed to connect to db: %v", err)
	}

	shutdownTracing, err := telemetry.SetupTracing(ctx, observability.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		logrus.Fatalf("failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logrus.WithError(err).Warn("tracing shutdown failed")
		}
	}()

	publisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	defer publisher.Close()

	audit := telemetry.NewAuditEmitter(publisher, "audit.auction", observability.ServiceName, cfg.Environment)

	if cfg.AMQPURL != "" {
		if eventPublisher, err := observability.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange); err != nil {
			logrus.WithError(err).Warn("event publisher disabled")
		} else {
			observability.SetPublisher(eventPublisher)
			defer eventPublisher.Close()
		}
	}

	userRepo := repositories.NewUserRepo(database)
	auctionRepo := repositories.NewAuctionRepo(database)
	bidRepo := repositories.NewBidRepo(database)
	announcementRepo := repositories.NewAnnouncementRepo(database)
	sellerRepo := repositories.NewSellerRequestRepo(database)
	messageRepo := repositories.NewMessageRepo(database)
	notificationRepo := repositories.NewNotificationRepo(database)
	reportRepo := repositories.NewReportRepo(database)
	paymentRepo := repositories.NewPaymentRepo(database)

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	gateway := payments.NewSSLCommerz(cfg.SSLCzStoreID, cfg.SSLCzStorePass, cfg.SSLCzSessionURL, cfg.SSLCzValidateURL)

	hub := ws.NewHub()
	relay := ws.NewRelay(hub, messageRepo, notificationRepo)

	authHandler := handlers.NewAuthHandler(issuer)
	userHandler := handlers.NewUserHandler(userRepo, audit)
	auctionHandler := handlers.NewAuctionHandler(auctionRepo)
	bidHandler := handlers.NewBidHandler(bidRepo, auctionRepo)
	announcementHandler := handlers.NewAnnouncementHandler(announcementRepo)
	sellerHandler := handlers.NewSellerHandler(sellerRepo, audit)
	messageHandler := handlers.NewMessageHandler(messageRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	reportHandler := handlers.NewReportHandler(reportRepo)
	paymentHandler := handlers.NewPaymentHandler(gateway, paymentRepo, cfg.PaymentRedirect, "http://localhost:"+cfg.Port)
	debugHandler := handlers.NewDebugHandler(hub)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(observability.ServiceName))
	router.Use(observability.HTTPMetricsMiddleware())

	authRequired := middleware.AuthMiddleware(issuer)
	adminOnly := middleware.RequireAdmin(userRepo)
	sellerOnly := middleware.RequireSeller(userRepo)

	router.POST("/jwt", authHandler.IssueToken)
	router.POST("/logout", authHandler.Logout)

	router.GET("/users", authRequired, adminOnly, userHandler.ListUsers)
	router.GET("/user/:email", userHandler.GetUserByEmail)
	router.POST("/users", userHandler.CreateUser)
	router.PATCH("/users/:id", authRequired, adminOnly, userHandler.UpdateUserRole)
	router.DELETE("/users/:id", authRequired, adminOnly, userHandler.DeleteUser)

	router.GET("/announcement", announcementHandler.ListAnnouncements)
	router.POST("/announcement", authRequired, adminOnly, announcementHandler.CreateAnnouncement)
	router.PUT("/announcement/:id", authRequired, adminOnly, announcementHandler.UpdateAnnouncement)
	router.DELETE("/announcement/:id", authRequired, adminOnly, announcementHandler.DeleteAnnouncement)

	router.GET("/auctions", auctionHandler.ListAuctions)
	router.GET("/auction/:id", auctionHandler.GetAuction)
	router.POST("/auctions", authRequired, sellerOnly, auctionHandler.CreateAuction)
	router.PATCH("/auctions/:id", authRequired, auctionHandler.UpdateAuctionStatus)
	router.DELETE("/auctions/:id", authRequired, auctionHandler.DeleteAuction)

	router.GET("/sellerRequest", sellerHandler.ListRequests)
	router.GET("/sellerRequest/:becomeSellerStatus", sellerHandler.ListRequestsByStatus)
	router.POST("/become_seller", authRequired, sellerHandler.CreateRequest)
	router.PATCH("/sellerRequest/:id", authRequired, adminOnly, sellerHandler.UpdateRequestStatus)
	router.DELETE("/sellerRequest/:id", authRequired, adminOnly, sellerHandler.DeleteRequest)

	router.GET("/live-bid/top", bidHandler.TopBidders)
	router.GET("/live-bid/recent", bidHandler.RecentBids)
	router.POST("/live-bid", authRequired, bidHandler.CreateBid)

	router.GET("/messages/email/:userEmail/:selectedUserEmail", authRequired, messageHandler.GetConversation)
	router.GET("/conversations/:userEmail", authRequired, messageHandler.RecentConversations)

	router.GET("/notifications/:recipient", notificationHandler.ListForRecipient)
	router.PATCH("/notifications/:recipient/read", notificationHandler.MarkAllRead)

	router.POST("/reports", authRequired, reportHandler.CreateReport)

	router.POST("/paymentsWithSSL", authRequired, paymentHandler.CreateSession)
	router.POST("/success-payment", paymentHandler.SuccessCallback)

	router.GET("/", debugHandler.Root)
	router.GET("/socket-test", debugHandler.SocketTest)
	router.GET("/debug/socket-connections", debugHandler.SocketConnections)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/ws", relay.Handle)

	logrus.WithField("port", cfg.Port).Info("starting server")
	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("server error: %v", err)
	}
}

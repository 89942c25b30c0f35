package main

import (
	"context"
	"errors"
	"eventmi/config"
	"eventmi/controller"
	"eventmi/docs"
	"eventmi/repository"
	"eventmi/service"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/segmentio/kafka-go"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	ginprometheus "github.com/zsais/go-gin-prometheus"
)

const shutdownTimeout = 10 * time.Second

// @title           Eventmi API
// @version         1.0
// @description     Read-only admin queries over the events managed by Eventmi.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	t := time.Now()

	cfg := config.Env()
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	db, err := config.InitDB(cfg.DSN(), &repository.Event{})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	publisher, closePublisher := newPublisher(cfg)
	defer closePublisher()
	eventService := service.NewEventService(repository.NewEventRepository(db), publisher)

	r := gin.New()
	r.Use(gin.Recovery())
	err = r.SetTrustedProxies(nil)
	if err != nil {
		fmt.Println("Failed to set trusted proxies:", err)
		return
	}
	addLogger(r)
	addMetrics(r)
	addDocs(r)
	setCors(r, cfg.CorsOrigins)
	controller.SetRoutes(r, eventService, cfg.JWTSecret)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	fmt.Println("Server started in", time.Since(t))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		fmt.Println("Failed to shut down server:", err)
	}
}

func newPublisher(cfg *config.Config) (service.Publisher, func()) {
	if cfg.KafkaBroker == "" {
		return service.NoopPublisher{}, func() {}
	}
	if err := config.CreateTopic(cfg.KafkaBroker, cfg.KafkaTopic); err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		log.Printf("Could not create topic %s: %v", cfg.KafkaTopic, err)
	}
	writer, err := config.GetWriter(cfg.KafkaBroker, cfg.KafkaTopic, service.ReportDeliveryError)
	if err != nil {
		log.Printf("Event changes will not be published: %v", err)
		return service.NoopPublisher{}, func() {}
	}
	return service.NewKafkaPublisher(writer), func() {
		if err := writer.Close(); err != nil {
			log.Printf("Failed to close kafka writer: %v", err)
		}
	}
}

func addLogger(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/metrics"},
	}))
}

func addMetrics(r *gin.Engine) {
	p := ginprometheus.NewPrometheus("gin")
	re := regexp.MustCompile(`/\d+`)
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		url := strings.Split(c.Request.URL.String(), "?")[0]
		return re.ReplaceAllString(url, "/:id")
	}
	p.MetricsPath = "/metrics"
	p.Use(r)
}

func addDocs(r *gin.Engine) {
	docs.SwaggerInfo.BasePath = "/api"
	r.GET("/api/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

// setCors only covers the admin api, the html pages are same-origin.
func setCors(r *gin.Engine, origins []string) {
	corsHandler := cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	})
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") || c.Request.URL.Path == "/api" {
			corsHandler(c)
		}
	})
}

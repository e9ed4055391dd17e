package main

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"mealsnap-backend/config"
	"mealsnap-backend/controllers"
	"mealsnap-backend/routes"
	"mealsnap-backend/services"
	"mealsnap-backend/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log := config.NewLogger(cfg)
	gin.SetMode(cfg.GinMode)

	db, err := config.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	images, err := buildImageStore(cfg)
	if err != nil {
		log.Fatalf("image store: %v", err)
	}

	analyzer, err := buildAnalyzer(cfg, log)
	if err != nil {
		log.Fatalf("analyzer: %v", err)
	}

	mealSvc := services.NewMealService(db)
	userSvc := services.NewUserService(db)
	authSvc := services.NewAuthService(db, []byte(cfg.JWTSecret))
	dashboardSvc := services.NewDashboardService(mealSvc, userSvc)
	analyticsSvc := services.NewAnalyticsService(mealSvc, userSvc)
	insightsSvc := services.NewInsightsService(mealSvc)

	authCtl := controllers.NewAuthController(authSvc, userSvc)
	mealCtl := controllers.NewMealController(mealSvc, analyticsSvc, insightsSvc, analyzer, images, log)
	userCtl := controllers.NewUserController(dashboardSvc, analyticsSvc)

	r := routes.SetupRouter(cfg, db, authCtl, mealCtl, userCtl)

	log.WithFields(logrus.Fields{
		"port":     cfg.Port,
		"analyzer": cfg.AnalyzerProvider,
		"images":   cfg.ImageStore,
	}).Info("starting mealsnap backend")

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func buildImageStore(cfg *config.Config) (utils.ImageStore, error) {
	if cfg.ImageStore == "s3" {
		region := cfg.S3Region
		if region == "" {
			region = cfg.AWSRegion
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
		if err != nil {
			return nil, err
		}
		return &utils.S3ImageStore{
			Client:        s3.NewFromConfig(awsCfg),
			Bucket:        cfg.S3Bucket,
			CloudFrontURL: cfg.CloudFrontURL,
		}, nil
	}
	return utils.NewLocalImageStore(cfg.UploadDir, cfg.UploadBaseURL)
}

func buildAnalyzer(cfg *config.Config, log *logrus.Logger) (services.ImageAnalyzer, error) {
	if cfg.AnalyzerProvider == "rekognition" {
		return services.NewRekognitionAnalyzer(context.Background(), cfg.AWSRegion)
	}
	log.Info("using mock image analyzer")
	return services.NewMockAnalyzer(), nil
}

package main

import (
	"fmt"
	"os"

	"github.com/annastatham03-png/shorts-renderer/application/ports/outbound"
	"github.com/annastatham03-png/shorts-renderer/application/services"
	"github.com/annastatham03-png/shorts-renderer/config"
	"github.com/annastatham03-png/shorts-renderer/infrastructure/adapters"
	"github.com/annastatham03-png/shorts-renderer/infrastructure/gin_interface/controllers"
	"github.com/annastatham03-png/shorts-renderer/middleware"
	"github.com/annastatham03-png/shorts-renderer/preview"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))

	edgeTTSConfig, err := config.GetEdgeTTSConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get edge-tts config")
	}

	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
	}

	dynamoConfig, err := config.GetDynamoConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get dynamo config")
	}

	renderConfig, err := config.GetRenderConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get render config")
	}

	jwksUrl := os.Getenv("JWKS_URL")
	if jwksUrl == "" {
		log.Fatal().Msg("JWKS_URL is not set!")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	s3Client := s3.New(sess)
	dynamoClient := dynamodb.New(sess)

	contentFetcher := adapters.NewContentFetcher(zeroLogger)

	providers := make([]outbound.StockMediaProviderPort, 0, 2)
	if pexelsConfig, err := config.GetPexelsConfig(); err != nil {
		zeroLogger.Warn("Pexels disabled: " + err.Error())
	} else {
		providers = append(providers, adapters.NewPexelsProvider(contentFetcher, pexelsConfig, zeroLogger))
	}
	if pixabayConfig, err := config.GetPixabayConfig(); err != nil {
		zeroLogger.Warn("Pixabay disabled: " + err.Error())
	} else {
		providers = append(providers, adapters.NewPixabayProvider(contentFetcher, pixabayConfig, zeroLogger))
	}
	if len(providers) == 0 {
		log.Fatal().Msg("No stock media provider configured")
	}

	var searchCache outbound.MediaSearchCachePort
	redisConfig, err := config.GetRedisConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get redis config")
	}
	if redisConfig != nil {
		searchCache = adapters.NewRedisSearchCache(zeroLogger, redisConfig)
	}

	synthesizer := adapters.NewEdgeSpeechSynthesizer(zeroLogger, edgeTTSConfig)
	downloader := adapters.NewMediaDownloader(zeroLogger)
	audioConcat := adapters.NewFFmpegAudioConcat(zeroLogger)
	encoder := adapters.NewFFmpegEncoder(zeroLogger, renderConfig)

	jobStore := adapters.NewDynamoJobStore(zeroLogger, dynamoClient, dynamoConfig)
	publisher := adapters.NewS3ArtifactPublisher(zeroLogger, s3Client, s3Config)

	var notifier outbound.CallbackNotifierPort
	callbackConfig, err := config.GetCallbackConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get callback config")
	}
	if callbackConfig != nil {
		authConfig, err := config.NewAuthorizerConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get authorizer config")
		}
		authorizer := adapters.NewClientCredentialsAuthorizer(zeroLogger, authConfig)
		notifier = adapters.NewCallbackNotifier(callbackConfig.Url, authorizer)
	}

	segmenter := services.NewScriptSegmenter(zeroLogger, workerPool)
	audioSynthesizer := services.NewSegmentAudioSynthesizer(zeroLogger, workerPool, synthesizer)
	mediaSelector := services.NewMediaSelector(zeroLogger, workerPool, searchCache, providers...)
	assembler := services.NewTimelineAssembler(zeroLogger)

	renderPipeline := services.NewRenderPipeline(segmenter, audioSynthesizer, mediaSelector, assembler,
		downloader, audioConcat, encoder, jobStore, publisher, notifier, zeroLogger, workerPool)

	renderJobsController := controllers.NewRenderJobsController(zeroLogger, renderPipeline)

	router := gin.Default()

	err = router.SetTrustedProxies(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	authHandler, err := middleware.NewAuthHandler(jwksUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth handler!")
	}

	router.Use(authHandler.AuthMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	renderJobsController.RegisterRoutes(router)

	preview.Init(router, workerPool, segmenter, assembler, zeroLogger, middleware.SSEMiddleware(workerPool))

	err = router.Run(":8080")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/annastatham03-png/shorts-renderer/application/ports/inbound"
	"github.com/annastatham03-png/shorts-renderer/application/ports/outbound"
	"github.com/annastatham03-png/shorts-renderer/application/services"
	"github.com/annastatham03-png/shorts-renderer/config"
	"github.com/annastatham03-png/shorts-renderer/infrastructure/adapters"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
)

// One-shot entrypoint: reads the job from the environment, renders it and
// exits non-zero on failure. Meant to run inside a CI job rather than behind
// the HTTP server.
func main() {
	_ = godotenv.Load()

	job, err := config.GetJobFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read job from environment")
	}

	edgeTTSConfig, err := config.GetEdgeTTSConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get edge-tts config")
	}

	renderConfig, err := config.GetRenderConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get render config")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(30, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

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

	var jobStore outbound.JobStorePort
	var publisher outbound.ArtifactPublisherPort
	if os.Getenv("BUCKET_NAME") != "" {
		sess := session.Must(session.NewSessionWithOptions(session.Options{
			SharedConfigState: session.SharedConfigEnable,
		}))

		s3Config, err := config.GetS3Config()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get s3 config")
		}
		publisher = adapters.NewS3ArtifactPublisher(zeroLogger, s3.New(sess), s3Config)

		if os.Getenv("DYNAMO_TABLE_NAME") != "" {
			dynamoConfig, err := config.GetDynamoConfig()
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to get dynamo config")
			}
			jobStore = adapters.NewDynamoJobStore(zeroLogger, dynamodb.New(sess), dynamoConfig)
		}
	}

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

	if err = os.MkdirAll(renderConfig.OutputDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create output directory")
	}

	result, err := renderPipeline.StartPipeline(context.Background(), inbound.StartPipelineParams{
		Job:        job,
		OutputFile: filepath.Join(renderConfig.OutputDir, "final.mp4"),
		Publish:    publisher != nil,
	})
	if err != nil {
		log.Fatal().Err(err).Str("job_id", job.ID).Msg("Render failed")
	}

	log.Info().
		Str("job_id", result.JobID).
		Str("output", result.Output.FileName).
		Float64("duration", result.Output.Duration).
		Str("artifact_key", result.ArtifactKey).
		Msg("Render complete")
}

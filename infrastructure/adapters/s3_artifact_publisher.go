package adapters

import (
	"context"
	"fmt"
	"os"

	"github.com/annastatham03-png/shorts-renderer/application/ports/outbound"
	"github.com/annastatham03-png/shorts-renderer/config"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
)

type s3ArtifactPublisher struct {
	logger   outbound.LoggerPort
	s3Svc    *s3.S3
	s3Config *config.S3Config
}

func NewS3ArtifactPublisher(logger outbound.LoggerPort, s3Svc *s3.S3, s3Config *config.S3Config) outbound.ArtifactPublisherPort {
	return &s3ArtifactPublisher{
		logger:   logger,
		s3Svc:    s3Svc,
		s3Config: s3Config,
	}
}

func (s *s3ArtifactPublisher) Publish(ctx context.Context, req outbound.PublishArtifactRequest) (*outbound.PublishArtifactResponse, error) {
	itemPath := s.getArtifactKey(req)

	file, err := os.Open(req.VideoFileName)
	if err != nil {
		s.logger.Error(err, "Failed to open rendered video file")
		return nil, err
	}

	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			s.logger.Error(err, "Failed to close rendered video file")
			return
		}
		if req.RemoveLocal {
			err = os.Remove(file.Name())
			if err != nil {
				s.logger.Error(err, "Failed to remove rendered video file")
			}
		}
	}(file)

	putInput := &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(itemPath),
		Body:        file,
		ContentType: aws.String("video/mp4"),
	}

	_, err = s.s3Svc.PutObjectWithContext(ctx, putInput)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to upload artifact to S3", map[string]interface{}{
			"bucket": s.s3Config.BucketName,
			"key":    itemPath,
		})
		return nil, err
	}

	s.logger.InfoWithFields("Published artifact", map[string]interface{}{
		"key":    itemPath,
		"region": s.s3Config.Region,
	})

	return &outbound.PublishArtifactResponse{
		ArtifactKey: itemPath,
		StoreRegion: s.s3Config.Region,
	}, nil
}

// Artifact naming matches the workflow contract: rendered-<job_id>/final.mp4.
func (s *s3ArtifactPublisher) getArtifactKey(req outbound.PublishArtifactRequest) string {
	return fmt.Sprintf("rendered-%s/final.mp4", req.JobID)
}

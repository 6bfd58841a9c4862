package adapters

import (
	"context"
	"time"

	"github.com/annastatham03-png/shorts-renderer/application/ports/outbound"
	"github.com/annastatham03-png/shorts-renderer/config"
	"github.com/annastatham03-png/shorts-renderer/domain"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
)

type dynamoJobItem struct {
	JobID    string  `dynamodbav:"job_id"`
	SortKey  string  `dynamodbav:"sort_key"`
	Topic    string  `dynamodbav:"topic"`
	Provider string  `dynamodbav:"provider"`
	Voice    string  `dynamodbav:"voice"`
	Duration float64 `dynamodbav:"duration"`
	TTL      int64   `dynamodbav:"ttl"`
}

type dynamoEntryItem struct {
	JobID     string  `dynamodbav:"job_id"`
	SortKey   string  `dynamodbav:"sort_key"`
	SegmentID string  `dynamodbav:"segment_id"`
	Text      string  `dynamodbav:"text"`
	Ordinal   int     `dynamodbav:"ordinal"`
	AssetID   string  `dynamodbav:"asset_id"`
	Provider  string  `dynamodbav:"asset_provider"`
	Start     float64 `dynamodbav:"start"`
	End       float64 `dynamodbav:"end"`
	TTL       int64   `dynamodbav:"ttl"`
}

type dynamoJobStore struct {
	logger       outbound.LoggerPort
	dynamoSvc    *dynamodb.DynamoDB
	dynamoConfig *config.DynamoConfig
}

func NewDynamoJobStore(logger outbound.LoggerPort, dynamoSvc *dynamodb.DynamoDB, dynamoConfig *config.DynamoConfig) outbound.JobStorePort {
	return &dynamoJobStore{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
	}
}

func (s *dynamoJobStore) SaveJob(ctx context.Context, job domain.Job, output domain.RenderedOutput) error {
	item := dynamoJobItem{
		JobID:    job.ID,
		SortKey:  "job",
		Topic:    job.Topic,
		Provider: string(job.Provider),
		Voice:    job.Voice,
		Duration: output.Duration,
		TTL:      s.ttl(),
	}
	return s.put(ctx, item)
}

func (s *dynamoJobStore) SaveTimelineEntry(ctx context.Context, jobID string, entry domain.TimelineEntry) error {
	item := dynamoEntryItem{
		JobID:     jobID,
		SortKey:   "entry#" + entry.Segment.ID,
		SegmentID: entry.Segment.ID,
		Text:      entry.Segment.Text,
		Ordinal:   entry.Segment.Ordinal,
		AssetID:   entry.Asset.ID,
		Provider:  string(entry.Asset.Provider),
		Start:     entry.Start,
		End:       entry.End,
		TTL:       s.ttl(),
	}
	return s.put(ctx, item)
}

func (s *dynamoJobStore) put(ctx context.Context, item interface{}) error {
	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to marshal job store item", map[string]interface{}{
			"item": item,
		})
		return err
	}

	input := &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(s.dynamoConfig.TableName),
	}

	_, err = s.dynamoSvc.PutItemWithContext(ctx, input)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to save job store item", map[string]interface{}{
			"item": item,
		})
		return err
	}

	return nil
}

func (s *dynamoJobStore) ttl() int64 {
	return time.Now().Add(time.Duration(s.dynamoConfig.TtlMinutes) * time.Minute).Unix()
}

package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	pkgerrors "github.com/pkg/errors"

	"github.com/nijaru/yt-filter/models"
)

type SpacesConfig struct {
	AccessKey string
	SecretKey string
	Region    string
	Endpoint  string
	Bucket    string
}

// SpacesClient archives finished transcripts to an S3-compatible bucket so a
// lost cache can be rebuilt without paying for another orchestrator run.
type SpacesClient struct {
	client *s3.Client
	bucket string
}

func NewSpacesClient(ctx context.Context, cfg SpacesConfig) (*SpacesClient, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		config.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "unable to load SDK config")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &SpacesClient{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// ArchivedVideo is the object stored per video.
type ArchivedVideo struct {
	YouTubeID   string             `json:"youtube_id"`
	Title       string             `json:"title"`
	ChannelName *string            `json:"channel_name"`
	Transcript  *models.Transcript `json:"transcript"`
	ArchivedAt  time.Time          `json:"archived_at"`
}

func TranscriptKey(youtubeID string) string {
	return fmt.Sprintf("transcripts/%s.json", youtubeID)
}

func (s *SpacesClient) SaveTranscript(ctx context.Context, video ArchivedVideo) error {
	if video.ArchivedAt.IsZero() {
		video.ArchivedAt = time.Now().UTC()
	}

	data, err := json.Marshal(video)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to marshal transcript")
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(TranscriptKey(video.YouTubeID)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to archive transcript %s", video.YouTubeID)
	}

	return nil
}

// GetTranscript returns nil, nil when nothing is archived for the video.
func (s *SpacesClient) GetTranscript(ctx context.Context, youtubeID string) (*ArchivedVideo, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(TranscriptKey(youtubeID)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if pkgerrors.As(err, &noSuchKey) {
			return nil, nil
		}
		return nil, pkgerrors.Wrapf(err, "failed to fetch transcript %s", youtubeID)
	}
	defer result.Body.Close()

	var video ArchivedVideo
	if err := json.NewDecoder(result.Body).Decode(&video); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to decode archived transcript")
	}
	if video.Transcript == nil {
		return nil, nil
	}

	return &video, nil
}

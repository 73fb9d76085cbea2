// Package archive persists newsletter editions and sync snapshots to S3 so
// published editions survive store resets and remain queryable later.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"newsdesk/types"
)

// Config holds the archive's bucket settings. Credentials resolve through
// the standard AWS chain.
type Config struct {
	Bucket string
	Region string
	// Prefix is prepended to every key; empty means bucket root. Must end
	// with "/" when set (config.Load normalizes this).
	Prefix string
	// UsePathStyle forces path-style addressing for S3-compatible stores.
	UsePathStyle bool
}

// Archive writes newsletter artifacts to S3. A nil Archive is valid and
// turns every operation into a no-op, so the service runs without a bucket.
type Archive struct {
	client *s3.Client
	bucket string
	prefix string
}

// New creates an Archive using the default AWS configuration chain.
func New(ctx context.Context, cfg Config) (*Archive, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})
	return &Archive{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Edition is the archived form of a published newsletter.
type Edition struct {
	Date       string          `json:"date"` // YYYY-MM-DD
	Articles   []types.Article `json:"articles"`
	ArchivedAt time.Time       `json:"archived_at"`
}

func (a *Archive) editionKey(date string) string {
	return a.prefix + "editions/" + date + ".json"
}

func (a *Archive) snapshotKey(at time.Time) string {
	return a.prefix + "snapshots/" + at.UTC().Format("2006-01-02T15-04-05Z") + ".json"
}

// StoreEdition archives a newsletter edition under its date. Re-archiving
// the same date overwrites the previous object.
func (a *Archive) StoreEdition(ctx context.Context, edition Edition) error {
	if a == nil {
		return nil
	}
	return a.put(ctx, a.editionKey(edition.Date), edition)
}

// StoreSnapshot archives the article set produced by one sync run.
func (a *Archive) StoreSnapshot(ctx context.Context, articles []types.Article, at time.Time) error {
	if a == nil {
		return nil
	}
	return a.put(ctx, a.snapshotKey(at), articles)
}

// Edition loads an archived edition by date.
func (a *Archive) Edition(ctx context.Context, date string) (Edition, error) {
	if a == nil {
		return Edition{}, errors.New("archive not configured")
	}

	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(a.editionKey(date)),
	})
	if err != nil {
		return Edition{}, fmt.Errorf("get edition %s: %w", date, err)
	}
	defer out.Body.Close()

	raw, err := io.ReadAll(out.Body)
	if err != nil {
		return Edition{}, fmt.Errorf("read edition %s: %w", date, err)
	}

	var edition Edition
	if err := json.Unmarshal(raw, &edition); err != nil {
		return Edition{}, fmt.Errorf("decode edition %s: %w", date, err)
	}
	return edition, nil
}

// HasEdition reports whether an edition is archived for the given date.
func (a *Archive) HasEdition(ctx context.Context, date string) (bool, error) {
	if a == nil {
		return false, nil
	}

	_, err := a.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(a.editionKey(date)),
	})
	if err == nil {
		return true, nil
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return false, nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
		return false, nil
	}

	return false, err
}

// ListEditions returns the dates of archived editions, up to maxKeys.
func (a *Archive) ListEditions(ctx context.Context, maxKeys int32) ([]string, error) {
	if a == nil {
		return nil, nil
	}

	prefix := a.prefix + "editions/"
	out, err := a.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(a.bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(maxKeys),
	})
	if err != nil {
		return nil, fmt.Errorf("list editions: %w", err)
	}

	dates := make([]string, 0, len(out.Contents))
	for _, obj := range out.Contents {
		key := aws.ToString(obj.Key)
		if len(key) <= len(prefix)+len(".json") {
			continue
		}
		dates = append(dates, key[len(prefix):len(key)-len(".json")])
	}
	return dates, nil
}

func (a *Archive) put(ctx context.Context, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

package dataset

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/byu-pathway/insights-backend/internal/shared"
)

// S3API is the slice of the S3 client the fetcher needs.
type S3API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

var connectivityHints = []string{
	"check AWS credentials",
	"verify the S3 bucket exists and is accessible",
	"ensure network connectivity to AWS",
}

var emptyBucketHints = []string{
	"run the analysis notebook to process questions and upload results",
	"the dashboard always loads the most recent upload",
}

type Fetcher struct {
	client S3API
	bucket string
	prefix string
	logger *slog.Logger
}

func NewFetcher(client S3API, bucket, prefix string, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger.With("component", "fetcher"),
	}
}

// FetchLatest lists the bucket, selects the newest upload batch and downloads
// every dataset file in it. There is no retry and no partial result: any
// failure aborts the whole fetch.
func (f *Fetcher) FetchLatest(ctx context.Context) (*Batch, error) {
	listed, err := f.list(ctx)
	if err != nil {
		return nil, &shared.FetchError{Op: "list", Err: err, Hints: connectivityHints}
	}

	stamp, objects := selectLatest(listed)
	if stamp == "" {
		return nil, &shared.FetchError{Op: "list", Err: shared.ErrNoResults, Hints: emptyBucketHints}
	}

	batch := &Batch{
		Stamp:     stamp,
		Tables:    make(map[string]*Table, len(objects)),
		Objects:   objects,
		FetchedAt: time.Now().UTC(),
	}
	if ts, err := time.Parse(StampLayout, stamp); err == nil {
		batch.Timestamp = ts
	}

	for _, obj := range objects {
		table, err := f.download(ctx, obj)
		if err != nil {
			return nil, err
		}
		batch.Tables[obj.Dataset] = table
	}

	f.logger.Info("fetched batch", "stamp", stamp, "datasets", len(batch.Tables))
	return batch, nil
}

func (f *Fetcher) list(ctx context.Context) ([]listedObject, error) {
	var out []listedObject
	var token *string
	for {
		page, err := f.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(f.bucket),
			Prefix:            aws.String(f.prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			var size int64
			if obj.Size != nil {
				size = *obj.Size
			}
			out = append(out, listedObject{Key: *obj.Key, Size: size})
		}
		if page.IsTruncated == nil || !*page.IsTruncated {
			break
		}
		token = page.NextContinuationToken
	}
	return out, nil
}

func (f *Fetcher) download(ctx context.Context, obj ObjectInfo) (*Table, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(obj.Key),
	})
	if err != nil {
		return nil, &shared.FetchError{Op: "get", Dataset: obj.Dataset, Key: obj.Key, Err: err, Hints: connectivityHints}
	}
	defer out.Body.Close()

	table, err := ReadTable(obj.Dataset, out.Body)
	if err != nil {
		return nil, &shared.FetchError{Op: "parse", Dataset: obj.Dataset, Key: obj.Key, Err: err}
	}
	f.logger.Debug("downloaded dataset", "dataset", obj.Dataset, "key", obj.Key, "rows", table.NumRows())
	return table, nil
}

// Ping verifies the bucket is reachable. Used by readiness checks.
func (f *Fetcher) Ping(ctx context.Context) error {
	_, err := f.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(f.bucket)})
	return err
}

package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/byu-pathway/insights-backend/internal/dataset"
)

// Uploads one sample analysis batch so a local server has data to render.
// Timestamps are spread over the two weeks before the run.

func main() {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		fmt.Fprintln(os.Stderr, "S3_BUCKET is required")
		os.Exit(1)
	}
	prefix := os.Getenv("S3_PREFIX")
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}
	endpoint := os.Getenv("S3_ENDPOINT")

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if key, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY"); key != "" && secret != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, secret, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load AWS config: %v\n", err)
		os.Exit(1)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	now := time.Now().UTC()
	stamp := now.Format(dataset.StampLayout)

	ctx := context.Background()
	for name, table := range sampleBatch(now) {
		body, err := encodeCSV(table.header, table.rows)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode %s: %v\n", name, err)
			os.Exit(1)
		}
		key := prefix + name + "_" + stamp + ".csv"
		_, err = client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(key),
			Body:        strings.NewReader(body),
			ContentType: aws.String("text/csv"),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to upload %s: %v\n", key, err)
			os.Exit(1)
		}
		fmt.Printf("Uploaded s3://%s/%s\n", bucket, key)
	}

	fmt.Println("")
	fmt.Printf("Seeded batch %s\n", stamp)
	fmt.Println("Start the server and open /v1/pages/overview to see it.")
}

type sampleTable struct {
	header []string
	rows   [][]string
}

func sampleBatch(now time.Time) map[string]sampleTable {
	at := func(daysAgo int, clock string) string {
		return now.AddDate(0, 0, -daysAgo).Format("2006-01-02") + "T" + clock + ":00"
	}
	day := func(daysAgo int) string {
		return now.AddDate(0, 0, -daysAgo).Format("2006-01-02")
	}

	questions := sampleTable{
		header: []string{"trace_id", "input", "timestamp", "topic_id", "total_cost", "latency", "session_id", "user_id"},
		rows: [][]string{
			{"t1", "How do I reset my password?", at(13, "09:15"), "tp1", "0.0012", "1.4", "s1", "u1"},
			{"t2", "Where can I see my grades?", at(13, "10:02"), "tp2", "0.0018", "2.1", "s1", "u1"},
			{"t3", "I forgot my login", at(12, "14:30"), "tp1", "0.0009", "0.9", "s2", "u2"},
			{"t4", "How do I enroll in the certificate program?", at(11, "16:45"), "tp3", "0.0031", "3.2", "s3", "u3"},
			{"t5", "When are final grades posted?", at(9, "08:20"), "tp2", "0.0014", "1.1", "s4", "u2"},
			{"t6", "The password reset link is not working", at(6, "11:05"), "tp1", "0.0011", "1.7", "s5", "u4"},
			{"t7", "Can I switch to a different program?", at(5, "13:40"), "tp3", "0.0027", "2.8", "s6", "u5"},
			{"t8", "Is there a grade appeal process?", at(4, "09:50"), "tp2", "0.0016", "1.3", "s7", "u1"},
			{"t9", "What are the enrollment deadlines?", at(2, "15:10"), "tp3", "0.0042", "3.9", "s8", "u6"},
			{"t10", "How often should I change my password?", at(1, "10:30"), "tp1", "0.0008", "0.8", "s8", "u6"},
		},
	}

	topics := sampleTable{
		header: []string{"topic_id", "topic_name", "summary", "question_count", "is_new", "first_seen"},
		rows: [][]string{
			{"tp1", "Password Reset", "Login and password recovery questions", "4", "False", day(45)},
			{"tp2", "Grades", "Grade visibility and appeal questions", "3", "False", day(45)},
			{"tp3", "Enrollment", "Program enrollment and deadline questions", "3", "True", day(11)},
		},
	}

	feedback := sampleTable{
		header: []string{"trace_id", "scores", "tags"},
		rows: [][]string{
			{"t1", `[{"name": "helpfulness", "value": 0.9}]`, `["language:English", "role:Student"]`},
			{"t4", `[{"name": "helpfulness", "value": 0.7, "comment": "took a while"}]`, `["language:Spanish", "role:Student"]`},
			{"t6", `[{"name": "helpfulness", "value": 0.2, "comment": "link still broken"}]`, `["language:English", "role:Mentor"]`},
			{"t9", `[]`, `["language:Portuguese", "role:Student"]`},
		},
	}

	general := sampleTable{
		header: []string{"id", "trace_id", "timestamp", "category", "message"},
		rows: [][]string{
			{"g1", "", at(10, "12:00"), "praise", "The dashboard answers are really helpful."},
			{"g2", "t6", at(6, "11:20"), "bug", "The password reset link was broken for me too."},
		},
	}

	return map[string]sampleTable{
		dataset.DatasetQuestions:       questions,
		dataset.DatasetTopics:          topics,
		dataset.DatasetFeedback:        feedback,
		dataset.DatasetGeneralFeedback: general,
	}
}

func encodeCSV(header []string, rows [][]string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return "", err
	}
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}

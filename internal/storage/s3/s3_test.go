package s3

import (
	"context"
	"testing"
)

func TestNewClientRequiresBucket(t *testing.T) {
	if _, err := NewClient(context.Background(), Config{Region: "auto"}); err == nil {
		t.Fatal("expected error without bucket")
	}
}

func TestNewClientWithStaticCredentials(t *testing.T) {
	c, err := NewClient(context.Background(), Config{
		Endpoint:        "http://127.0.0.1:9000",
		Region:          "us-east-1",
		Bucket:          "words",
		AccessKeyID:     "id",
		SecretAccessKey: "secret",
		PathStyle:       true,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.Bucket != "words" || c.Client == nil {
		t.Fatalf("unexpected client: %+v", c)
	}
}

package s3

import (
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeAPI struct {
	puts    []string
	deletes []string
}

func (f *fakeAPI) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, aws.ToString(in.Key))
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeAPI) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestPutReturnsPublicURLAndDeleteUsesKey(t *testing.T) {
	api := &fakeAPI{}
	s := newStore(api, Options{Bucket: "vet", Endpoint: "http://minio:9000/"})

	url, err := s.Put(context.Background(), "pet_images", "x.jpg", strings.NewReader("j"), 1, "image/jpeg")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if url != "http://minio:9000/vet/pet_images/x.jpg" {
		t.Fatalf("unexpected url %q", url)
	}
	if len(api.puts) != 1 || api.puts[0] != "pet_images/x.jpg" {
		t.Fatalf("unexpected puts %v", api.puts)
	}

	if err := s.Delete(context.Background(), url); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(api.deletes) != 1 || api.deletes[0] != "pet_images/x.jpg" {
		t.Fatalf("unexpected deletes %v", api.deletes)
	}
}

func TestDeleteRejectsForeignURL(t *testing.T) {
	s := newStore(&fakeAPI{}, Options{Bucket: "vet", Region: "us-east-1"})
	if err := s.Delete(context.Background(), "https://other.example.com/a.png"); err == nil {
		t.Fatalf("expected error")
	}
}

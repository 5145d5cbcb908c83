package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestNewStorageProvider_Local(t *testing.T) {
	provider, err := NewStorageProvider(StorageConfig{
		Provider: "local",
		BasePath: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("NewStorageProvider() error = %v", err)
	}
	if provider == nil {
		t.Fatal("NewStorageProvider() 返回 nil")
	}
}

func TestNewStorageProvider_InvalidProvider(t *testing.T) {
	_, err := NewStorageProvider(StorageConfig{Provider: "cos"})
	if err == nil {
		t.Error("期望返回错误，但未返回")
	}
}

func TestLocalStorage_Upload(t *testing.T) {
	tempDir := t.TempDir()
	svc, err := NewLocalStorage(StorageConfig{
		BasePath: tempDir,
		Endpoint: "http://localhost:5006/uploads/",
	})
	if err != nil {
		t.Fatalf("初始化失败: %v", err)
	}

	ctx := context.Background()
	url, err := svc.Upload(ctx, "7-profile_image.png", []byte("first"), "image/png")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if url != "http://localhost:5006/uploads/7-profile_image.png" {
		t.Errorf("url = %q", url)
	}

	// 同一 key 覆盖
	if _, err := svc.Upload(ctx, "7-profile_image.png", []byte("second"), "image/png"); err != nil {
		t.Fatalf("second Upload() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(tempDir, "7-profile_image.png"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}
}

func TestLocalStorage_UploadStaysInBase(t *testing.T) {
	tempDir := t.TempDir()
	svc, _ := NewLocalStorage(StorageConfig{BasePath: tempDir})

	if _, err := svc.Upload(context.Background(), "../../escape.txt", []byte("x"), ""); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(tempDir, "escape.txt")); err != nil {
		t.Errorf("文件应写在存储目录内: %v", err)
	}
}

func TestLocalStorage_CanceledContext(t *testing.T) {
	svc, _ := NewLocalStorage(StorageConfig{BasePath: t.TempDir()})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Upload(ctx, "a.png", []byte("x"), ""); err == nil {
		t.Error("期望 context 取消错误")
	}
}

func TestS3Storage_PublicURL(t *testing.T) {
	tests := []struct {
		name string
		s    S3Storage
		want string
	}{
		{"aws", S3Storage{bucket: "b", region: "eu-west-2"}, "https://b.s3.eu-west-2.amazonaws.com/k.png"},
		{"cdn", S3Storage{bucket: "b", cdnDomain: "cdn.example.com"}, "https://cdn.example.com/k.png"},
		{"endpoint", S3Storage{bucket: "b", endpoint: "http://minio:9000"}, "http://minio:9000/b/k.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.publicURL("k.png"); got != tt.want {
				t.Errorf("got = %v, want %v", got, tt.want)
			}
		})
	}
}

package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestResizeContain(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantOpaqueAt image.Point
		wantClearAt  *image.Point
	}{
		{"landscape", 1000, 250, image.Pt(250, 250), &image.Point{X: 250, Y: 10}},
		{"portrait", 100, 400, image.Pt(250, 250), &image.Point{X: 10, Y: 250}},
		{"square upscale", 50, 50, image.Pt(5, 5), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ResizeContain(encodePNG(t, tt.w, tt.h), "image/png", 500, 500)
			if err != nil {
				t.Fatalf("ResizeContain() error = %v", err)
			}
			img, err := png.Decode(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("输出不是 png: %v", err)
			}
			if got := img.Bounds().Size(); got != image.Pt(500, 500) {
				t.Fatalf("size = %v, want 500x500", got)
			}
			if _, _, _, a := img.At(tt.wantOpaqueAt.X, tt.wantOpaqueAt.Y).RGBA(); a == 0 {
				t.Errorf("中心像素应不透明")
			}
			if tt.wantClearAt != nil {
				if _, _, _, a := img.At(tt.wantClearAt.X, tt.wantClearAt.Y).RGBA(); a != 0 {
					t.Errorf("留白像素应透明, alpha = %d", a)
				}
			}
		})
	}
}

func TestResizeContain_JPEG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 300, 200))
	var in bytes.Buffer
	if err := jpeg.Encode(&in, src, nil); err != nil {
		t.Fatal(err)
	}

	out, err := ResizeContain(in.Bytes(), "image/jpeg", 500, 500)
	if err != nil {
		t.Fatalf("ResizeContain() error = %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("输出不是 jpeg: %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(500, 500) {
		t.Errorf("size = %v, want 500x500", got)
	}
}

func TestResizeContain_Invalid(t *testing.T) {
	if _, err := ResizeContain([]byte("nope"), "image/png", 500, 500); err == nil {
		t.Error("期望解码失败")
	}
	if _, err := ResizeContain(encodePNG(t, 10, 10), "application/pdf", 500, 500); err == nil {
		t.Error("期望不支持的类型报错")
	}
}

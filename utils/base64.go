// utils/base64.go
package utils

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SaveBase64Image は data URL もしくは素のbase64を uploads 配下に保存し、
// 配信用の相対パスを返す。ニュース画像の入稿で使う。
func SaveBase64Image(b64, folder string) (string, error) {
	ext := ".png"
	if strings.HasPrefix(b64, "data:") {
		// data:image/jpeg;base64,xxxx
		head, rest, ok := strings.Cut(b64, ",")
		if !ok {
			return "", fmt.Errorf("invalid data url")
		}
		b64 = rest
		if strings.Contains(head, "image/jpeg") {
			ext = ".jpg"
		} else if strings.Contains(head, "image/webp") {
			ext = ".webp"
		}
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", err
	}
	filename := uuid.NewString() + ext
	path := filepath.Join(folder, filename)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(path), nil
}

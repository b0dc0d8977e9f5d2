package certificates

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const maxUploadBytes = 10 << 20 // 10 MB

var allowedExts = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// saveUpload writes the uploaded file into dir under a unique name and
// returns the stored name. The name is "uuid-prefix-original" with the
// original filename sanitized, so a second upload never collides.
func saveUpload(dir, filename string, reader io.Reader) (string, error) {
	name := fmt.Sprintf("%s-%s", uuid.New().String()[:8], sanitizeFilename(filename))

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, reader); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return name, nil
}

// sanitizeFilename strips path components and replaces any character that
// is not safe in a filename with an underscore. Long names are truncated
// to 100 bytes, keeping the extension when there is one.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)

	var b strings.Builder
	b.Grow(len(filename))
	for i := 0; i < len(filename); i++ {
		if isAllowedFilenameChar(filename[i]) {
			b.WriteByte(filename[i])
		} else {
			b.WriteByte('_')
		}
	}

	out := b.String()
	if out == "" {
		return "file"
	}
	if len(out) > 100 {
		ext := filepath.Ext(out)
		if len(ext) > 0 && len(ext) < 10 {
			out = out[:100-len(ext)] + ext
		} else {
			out = out[:100]
		}
	}
	return out
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}

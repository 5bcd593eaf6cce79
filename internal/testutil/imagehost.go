// internal/testutil/imagehost.go
package testutil

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
)

// ErrUploadRejected is what FakeImageHost returns for payloads registered with FailOn.
var ErrUploadRejected = errors.New("remote image host rejected upload")

// FakeImageHost derives a deterministic URL from the payload bytes.
type FakeImageHost struct {
	mu      sync.Mutex
	failOn  map[string]bool
	uploads []string
}

func NewFakeImageHost() *FakeImageHost {
	return &FakeImageHost{failOn: make(map[string]bool)}
}

// FailOn makes uploads of exactly data fail.
func (h *FakeImageHost) FailOn(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failOn[string(data)] = true
}

func (h *FakeImageHost) Upload(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.failOn[string(data)] {
		return "", ErrUploadRejected
	}
	url := URLFor(data)
	h.uploads = append(h.uploads, url)
	return url, nil
}

// Uploads returns the URLs handed out so far.
func (h *FakeImageHost) Uploads() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.uploads...)
}

// URLFor is the URL FakeImageHost returns for data.
func URLFor(data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("https://images.test/products/%s.jpg", hex.EncodeToString(sum[:8]))
}

package graph

import (
	"fmt"

	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Hash returns highwayhash 64 bit fingerprint of data
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// Fingerprint emits the file and returns the content with its hash
func (f *File) Fingerprint(emitter Emitter) ([]byte, uint64, error) {
	content, err := f.Content(emitter)
	if err != nil {
		return nil, 0, err
	}
	hash, err := Hash(content)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to hash %s: %w", f.Path, err)
	}
	return content, hash, nil
}

package main

import (
	"crypto/sha256"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/seiflotfy/huffpack"
)

const defaultCacheSize = 64

type cachedArtifact struct {
	data  []byte
	stats huffpack.Stats
}

// artifactCache reuses serialized artifacts for inputs with identical
// contents. Keys are SHA-256 digests of the input.
type artifactCache struct {
	enc     *huffpack.Encoder
	entries *lru.Cache[[sha256.Size]byte, cachedArtifact]
	hits    int
}

func newArtifactCache(enc *huffpack.Encoder, size int) (*artifactCache, error) {
	entries, err := lru.New[[sha256.Size]byte, cachedArtifact](size)
	if err != nil {
		return nil, err
	}
	return &artifactCache{enc: enc, entries: entries}, nil
}

// compress returns the serialized artifact for data and whether it came
// from the cache.
func (c *artifactCache) compress(data []byte) ([]byte, huffpack.Stats, bool, error) {
	key := sha256.Sum256(data)
	if cached, ok := c.entries.Get(key); ok {
		c.hits++
		return cached.data, cached.stats, true, nil
	}

	a, stats, err := c.enc.EncodeWithStats(data)
	if err != nil {
		return nil, huffpack.Stats{}, false, err
	}
	out, err := a.MarshalBinary()
	if err != nil {
		return nil, huffpack.Stats{}, false, err
	}
	c.entries.Add(key, cachedArtifact{data: out, stats: stats})
	return out, stats, false, nil
}

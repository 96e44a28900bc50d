package ingest

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
)

const pageCacheSize = 256

// pageCache memoizes recognized text per page content so re-ingesting the
// same document skips the OCR call.
type pageCache struct {
	lru *lru.Cache[string, string]
}

func newPageCache() *pageCache {
	c, err := lru.New[string, string](pageCacheSize)
	if err != nil {
		// Only reachable with a non-positive size constant.
		panic(err)
	}
	return &pageCache{lru: c}
}

func pageKey(page []byte) string {
	sum := sha256.Sum256(page)
	return hex.EncodeToString(sum[:])
}

func (c *pageCache) get(page []byte) (string, bool) {
	return c.lru.Get(pageKey(page))
}

func (c *pageCache) put(page []byte, text string) {
	c.lru.Add(pageKey(page), text)
}

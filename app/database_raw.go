package main

import (
	"container/list"
	"context"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// DatabaseRawImpl is the physical-layer file reader: it knows page size and
// offsets but nothing about tables, schemas, or B-tree semantics.
type DatabaseRawImpl struct {
	file           *os.File
	header         *DatabaseHeader
	pageSize       int
	config         *DatabaseConfig
	resourceMgr    *ResourceManager
	concurrencySem chan struct{}
	cache          *pageCache
}

// pageCache is a bounded LRU cache of decoded pages, sized by
// DatabaseConfig.PageCacheSize. A size of 0 disables caching entirely.
type pageCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[int]*list.Element
	order    *list.List
}

type pageCacheEntry struct {
	pageNum int
	data    []byte
}

func newPageCache(capacity int) *pageCache {
	if capacity <= 0 {
		return nil
	}
	return &pageCache{
		capacity: capacity,
		entries:  make(map[int]*list.Element, capacity),
		order:    list.New(),
	}
}

func (c *pageCache) get(pageNum int) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.entries[pageNum]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*pageCacheEntry).data, true
}

func (c *pageCache) put(pageNum int, data []byte) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[pageNum]; ok {
		elem.Value.(*pageCacheEntry).data = data
		c.order.MoveToFront(elem)
		return
	}
	elem := c.order.PushFront(&pageCacheEntry{pageNum: pageNum, data: data})
	c.entries[pageNum] = elem
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*pageCacheEntry).pageNum)
		}
	}
}

// NewDatabaseRaw opens filePath, applies options, and parses the 100-byte
// header to learn the page size before any page can be read.
func NewDatabaseRaw(filePath string, options ...DatabaseOption) (*DatabaseRawImpl, error) {
	config := DefaultDatabaseConfig()
	for _, opt := range options {
		opt(config)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, wrapf(KindIoError, "open_database_file", "path", filePath, "error", err.Error())
	}

	resourceMgr := NewResourceManager()
	resourceMgr.Add(file)

	db := &DatabaseRawImpl{
		file:           file,
		config:         config,
		resourceMgr:    resourceMgr,
		concurrencySem: make(chan struct{}, config.MaxConcurrency),
		cache:          newPageCache(config.PageCacheSize),
	}

	headerBytes := make([]byte, headerSize)
	if _, err := file.ReadAt(headerBytes, 0); err != nil {
		resourceMgr.Close()
		return nil, wrapf(KindShortRead, "read_database_header", "path", filePath, "error", err.Error())
	}

	header, err := parseHeader(headerBytes, config.ValidationMode)
	if err != nil {
		resourceMgr.Close()
		return nil, err
	}
	db.header = header
	db.pageSize = effectivePageSize(header.PageSize)

	if config.ValidationMode != ValidationNone {
		if db.pageSize < 512 || db.pageSize > 65536 || (db.pageSize&(db.pageSize-1)) != 0 {
			resourceMgr.Close()
			return nil, wrapf(KindCorruptPage, "validate_page_size", "page_size", db.pageSize)
		}
	}

	if config.EnableProfiling {
		log.Printf("litequery: opened %s page_size=%d validation=%d max_concurrency=%d cache=%d", filePath, db.pageSize, config.ValidationMode, config.MaxConcurrency, config.PageCacheSize)
	}

	return db, nil
}

// ReadPage reads the 1-indexed page pageNum, bounded by ctx and the
// configured concurrency semaphore. A hit in the page cache skips the
// semaphore and the file read entirely.
func (db *DatabaseRawImpl) ReadPage(ctx context.Context, pageNum int) ([]byte, error) {
	if cached, ok := db.cache.get(pageNum); ok {
		return cached, nil
	}

	var start time.Time
	if db.config.EnableProfiling {
		start = time.Now()
	}

	select {
	case db.concurrencySem <- struct{}{}:
		defer func() { <-db.concurrencySem }()
	case <-ctx.Done():
		return nil, wrapf(KindIoError, "read_page", "page", pageNum, "reason", "cancelled: "+ctx.Err().Error())
	}

	if err := ctx.Err(); err != nil {
		return nil, wrapf(KindIoError, "read_page", "page", pageNum, "reason", "cancelled: "+err.Error())
	}

	if pageNum < 1 {
		return nil, wrapf(KindCorruptPage, "read_page", "page", pageNum, "reason", "page numbers are 1-indexed")
	}

	offset := int64(pageNum-1) * int64(db.pageSize)
	pageData := make([]byte, db.pageSize)
	n, err := db.file.ReadAt(pageData, offset)
	if err != nil && err != io.EOF {
		return nil, wrapf(KindIoError, "read_page", "page", pageNum, "offset", offset, "error", err.Error())
	}
	if n != db.pageSize {
		return nil, wrapf(KindShortRead, "read_page", "page", pageNum, "expected_bytes", db.pageSize, "got_bytes", n)
	}

	if db.config.EnableProfiling {
		log.Printf("litequery: read page %d in %s", pageNum, time.Since(start))
	}

	db.cache.put(pageNum, pageData)
	return pageData, nil
}

// GetPageSize returns the effective page size in bytes.
func (db *DatabaseRawImpl) GetPageSize() int {
	return db.pageSize
}

// GetReadTimeout returns the configured per-command deadline.
func (db *DatabaseRawImpl) GetReadTimeout() time.Duration {
	return time.Duration(db.config.ReadTimeout) * time.Millisecond
}

// GetHeader returns the parsed database header for inspection by .dbinfo.
func (db *DatabaseRawImpl) GetHeader() *DatabaseHeader {
	return db.header
}

// Close releases the underlying file via the resource manager.
func (db *DatabaseRawImpl) Close() error {
	if db.resourceMgr != nil {
		return db.resourceMgr.Close()
	}
	return nil
}

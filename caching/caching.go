// Package caching keeps hot settings values in memory so reads do not hit
// the database on every request.
package caching

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	TTLSetting = 10 * time.Minute
)

var memoryCache = cache.New(TTLSetting, 10*time.Minute)

func Get(key string) (string, bool) {
	if val, ok := memoryCache.Get(key); ok {
		if s, ok := val.(string); ok {
			return s, true
		}
	}
	return "", false
}

func Set(key string, value string) {
	memoryCache.Set(key, value, TTLSetting)
}

func Delete(key string) {
	memoryCache.Delete(key)
}

func Flush() {
	memoryCache.Flush()
}

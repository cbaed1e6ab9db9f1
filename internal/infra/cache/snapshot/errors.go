package snapshot

import "errors"

var (
	// ErrCacheMiss запись отсутствует или истекла
	ErrCacheMiss = errors.New("snapshot cache: miss")
	// ErrCacheUnavailable ошибка Redis
	ErrCacheUnavailable = errors.New("snapshot cache: unavailable")
	// ErrCorruptedEntry запись не декодируется
	ErrCorruptedEntry = errors.New("snapshot cache: corrupted entry")
)

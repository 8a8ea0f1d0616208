package rulecache

import "errors"

var (
	// ErrCacheUnavailable возвращается при ошибках обращения к хранилищу кэша
	ErrCacheUnavailable = errors.New("rulecache: cache unavailable")

	// ErrCorruptedEntry возвращается, если запись кэша не разбирается
	ErrCorruptedEntry = errors.New("rulecache: corrupted cache entry")
)

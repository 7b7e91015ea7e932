// Package redis opens verified Redis connections with pooling and retry
// defaults suited to web handlers. It exists to provision the client used
// by the Redis-backed flash store, but the returned client is a plain
// go-redis UniversalClient usable anywhere.
package redis

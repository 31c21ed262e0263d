// Package repocache maintains a bounded, concurrency-safe pool of opened
// repository contexts keyed by canonical filesystem path. Opening a
// repository (parsing config, initialising the object database, loading
// references) is expensive compared to a query, so the pool amortises
// that cost across requests: concurrent callers asking for the same path
// share one backend open, later callers reuse the cached context and the
// least recently used unreferenced contexts are evicted once the pool is
// over its configured budget.
//
// Callers obtain a [Handle] from [Pool.Get], produce a thread-confined
// [repository.LocalView] per logical operation and release the handle
// when the request is done. An entry is never evicted while any of its
// handles is outstanding.
//
// # Logging:
//
// package takes slog reference for logging and prints logs up to 'trace' level
//
// Example:
//
//	loggerLevel  = new(slog.LevelVar)
//	levelStrings = map[string]slog.Level{
//		"trace": slog.Level(-8),
//		"debug": slog.LevelDebug,
//		"info":  slog.LevelInfo,
//		"warn":  slog.LevelWarn,
//		"error": slog.LevelError,
//	}
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//		Level: loggerLevel,
//	}))
//	loggerLevel.Set(levelStrings["trace"])
//
//	pool, err := repocache.New(ctx, conf, logger.With("logger", "repo-cache"))
//	if err != nil {
//		panic(err)
//	}
package repocache

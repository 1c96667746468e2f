// Package runtime wires storage and config into a single-node rolo
// instance. It exposes Open/Close, basic health checks, and accessors
// used by higher-level services.
//
// Example:
//
//	cfg := config.Default()
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Fsync: pebblestore.FsyncModeAlways, Config: cfg})
//	defer rt.Close()
//	// Health
//	_ = rt.CheckHealth(context.Background())
//	// Look up a cached record
//	rec, ok, _ := rt.Store().Get(context.Background(), 42)
//	_ = rec
//	_ = ok
package runtime

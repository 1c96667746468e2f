// Package httpserver provides the REST gateway for rolo: JSON endpoints
// for lookup, batch resolution, listing, and operational introspection,
// plus the prometheus handler and the embedded dashboard.
//
// Example:
//
//	rt, _ := runtime.Open(runtime.Options{DataDir: "./data", Fsync: pebblestore.FsyncModeAlways, Config: config.Default()})
//	svc := usersvc.New(rt, fetcher)
//	s := httpserver.New(rt, svc)
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	_ = s.ListenAndServe(ctx, ":8080")
package httpserver

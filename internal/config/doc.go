// Package config provides loading and environment overlay for rolo runtime
// configuration. It exposes a Default() baseline, a JSON file loader, and a
// ROLO_* environment overlay applied on top of whatever the file set.
//
// Example:
//
//	cfg := config.Default()
//	// Optionally load from file and overlay env vars
//	if fileCfg, err := config.Load("/etc/rolo.json"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
//	if err := cfg.Validate(); err != nil { /* handle */ }
//	// Pass cfg into runtime.Options
//	rt, _ := runtime.Open(runtime.Options{DataDir: "/var/lib/rolo", Config: cfg})
//	defer rt.Close()
package config

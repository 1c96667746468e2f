// Package client provides the `rolo` command-line client.
//
// The CLI talks to the rolo HTTP API to look up, resolve, and list user
// records from a terminal. It is primarily intended for developers and
// operators.
//
// Installation
//
//	go install github.com/rzbill/rolo/cmd/rolo@latest
//
// Or build from this repo and use the embedded `rolo` binary.
//
// # Address configuration
//
// The HTTP base URL is discovered by the application that embeds the
// commands via a BaseURLFunc. When using the standalone binary, it is
// read from the ROLO_HTTP environment variable and defaults to
// http://127.0.0.1:8080.
//
// Usage
//
//	rolo get 42
//
//	# Read-through resolution: uncached ids are fetched, cached, and returned
//	rolo resolve 42 1001 7
//
//	rolo list --filter 'region == "Norway"' --limit 20
//
//	rolo stats
//	rolo queue
//	rolo health
//
// Notes
//
//   - get never contacts the upstream directory; it only reads the local
//     cache and returns not-found for unknown ids.
//   - resolve accepts ids as separate arguments or comma-separated, and
//     omits ids the upstream does not know from the response; re-run the
//     command to retry them.
package client

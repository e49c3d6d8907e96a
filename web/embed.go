// Package web holds the static upload page served at the root route.
package web

import _ "embed"

//go:embed index.html
var IndexHTML []byte

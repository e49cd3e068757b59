// Package global holds the process-wide logger. Everything else is handed
// to its consumers through constructors.
package global

import "github.com/rs/zerolog"

var Logger zerolog.Logger

// Package logging sets up the hcrbench harness's structured logging: JSON
// records to a size-rotated file under ~/.hcr/logs/, mirrored to stderr.
// The --debug flag lowers the level so tree construction and scoring runs
// can be inspected event by event.
package logging

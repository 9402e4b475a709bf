package download

// Package download implements the core download orchestration: it accepts
// requests, holds the FIFO pending queue, admits tasks under the configured
// concurrency ceiling, supervises engine processes through the engine
// package, applies parsed progress signals to task records, finalizes output
// files on success, and emits lifecycle events to subscribers.

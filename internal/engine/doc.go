package engine

// Package engine supervises the external download engine: it builds its
// command line from typed options, spawns one process per task, fans the
// process's stdout and stderr into a single line channel, and parses those
// lines into structured progress signals.

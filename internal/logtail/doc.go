// Package logtail reads the tail of the cartly session log for display.
//
// The log file is written by logrus with a JSON formatter. Read keeps the last
// N non-blank lines with a ring buffer, so memory use is O(N) whatever the
// file size, and decodes each line into an Entry. Lines that are not JSON are
// kept verbatim in Entry.Message.
//
// Read returns nil, nil for a missing file, which is the normal state before
// the first log write.
package logtail

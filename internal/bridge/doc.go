// Package bridge converts tables to and from Apache Arrow records.
//
// Cleaned tables cross process boundaries as Arrow IPC streams so that
// downstream analytical tools can consume them without reparsing CSV. The
// conversion is lossless: nulls map to Arrow validity bitmaps, and the
// category/string distinction survives the round trip through field
// metadata.
package bridge

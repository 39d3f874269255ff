// Package batch provides a FIFO buffer drained in fixed-size batches and the
// counters that track how much upstream data a scan has consumed.
//
// The buffer backs the display pages: filtered records are appended as each
// upstream window is scanned and removed from the front one page at a time.
// Memory stays bounded by one upstream window plus one page.
package batch

// Package sheetbatch compiles a styled spreadsheet model into one ordered
// batch of update operations and hands it to a transport.
package sheetbatch

import "log/slog"

// Options configures a Spreadsheet.
type Options struct {
	// Logger receives progress and failure records. Nil discards them.
	Logger *slog.Logger
	// ClearBeforeWrite resets the managed sheets before the batch is sent.
	// If nil, defaults to true.
	ClearBeforeWrite *bool
	// FirstDataRow is the 1-based row ReadList starts from.
	// If zero, defaults to 2 (the row after the frozen header).
	FirstDataRow int
}

// Option edits Options.
type Option func(*Options)

// DefaultOptions returns default spreadsheet options.
func DefaultOptions() Options {
	return Options{
		FirstDataRow: 2,
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithClearBeforeWrite sets whether Write resets the managed sheets first.
func WithClearBeforeWrite(clear bool) Option {
	return func(o *Options) {
		o.ClearBeforeWrite = &clear
	}
}

// WithFirstDataRow sets the 1-based row ReadList starts from.
func WithFirstDataRow(row int) Option {
	return func(o *Options) {
		o.FirstDataRow = row
	}
}

// ShouldClearBeforeWrite returns whether Write resets the managed sheets.
func (o Options) ShouldClearBeforeWrite() bool {
	if o.ClearBeforeWrite != nil {
		return *o.ClearBeforeWrite
	}
	return true
}

// firstDataRow returns the configured first data row, or 2 when unset.
func (o Options) firstDataRow() int {
	if o.FirstDataRow > 0 {
		return o.FirstDataRow
	}
	return 2
}

// logger returns the configured logger or one that discards everything.
func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

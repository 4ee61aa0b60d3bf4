// Package xlsdoc extracts tables and cell formulas from spreadsheet
// workbooks and emits a normalized intermediate representation.
package xlsdoc

// Options configures extraction behavior. The zero value is usable.
type Options struct {
	// Workers bounds concurrent sheet extraction. Sheets only read the
	// immutable workbook grid and write a private result slot, so they are
	// safe to fan out. Values below 2 keep extraction sequential.
	Workers int
}

// DefaultOptions returns the default extraction options.
func DefaultOptions() Options {
	return Options{Workers: 1}
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return 1
	}
	return o.Workers
}

// Package traittab parses, filters, and serializes trait tables: large
// tab-delimited files mapping a record name to a fixed set of named trait
// values, used to drive rank-correlation comparisons between records.
//
// # Quick Start
//
// Local mode:
//
//	ctx := context.Background()
//	store := blobstore.NewLocalStore("./data")
//	tbl, _ := traittab.New(ctx, store, "predicted_traits.tab")
//
//	for entry, err := range tbl.Entries(ctx) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(entry.Name, entry.Len())
//	}
//
// Cloud mode:
//
//	s3Store, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("tables/"))
//	tbl, _ := traittab.New(ctx, s3Store, "predicted_traits.tab.gz")
//
// # Iteration Model
//
// A Table never caches rows. Every call to Entries, Subset, or Exclude opens
// its own read pass over the backing blob, so passes are independent and
// repeatable. Row-level problems (malformed rows, duplicate header names,
// over-wide rows) are logged and skipped; they never abort a pass.
//
// # Correlation
//
// Entries expose Spearman rank correlation over their shared traits, with
// midranks for ties. See trait.Entry.Correlation for the exact candidate-set
// semantics, which are deliberately asymmetric when no explicit trait list is
// given.
package traittab

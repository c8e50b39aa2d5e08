package traittab

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"github.com/hupe1980/traittab/blobstore"
	"github.com/hupe1980/traittab/internal/natsort"
	"github.com/hupe1980/traittab/trait"
)

// metadataPrefix marks trait names that OrderedTraits can demote to the end.
const metadataPrefix = "metadata"

// maxLineSize bounds a single table line. Trait tables can carry thousands
// of columns per row.
const maxLineSize = 16 * 1024 * 1024

// Table is the file-backed provider of a trait schema and a stream of
// entries.
//
// The header is read exactly once at construction; every iteration pass
// re-opens the blob from the top and yields a fresh stream, so passes are
// independent and repeatable. A Table holds no per-pass mutable state.
type Table struct {
	store  blobstore.Store
	name   string
	logger *Logger

	entryHeader string
	traits      []string
}

// New constructs a Table backed by the named blob in store.
//
// Only the first line is read: the first tab-separated field, with a single
// leading '#' stripped, becomes the entry header; the remaining fields
// become the trait names in file order.
func New(ctx context.Context, store blobstore.Store, name string, optFns ...Option) (*Table, error) {
	o := applyOptions(optFns...)

	rc, err := blobstore.OpenDecoded(ctx, store, name)
	if err != nil {
		return nil, fmt.Errorf("open table %q: %w", name, err)
	}
	defer rc.Close()

	sc := newLineScanner(rc)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read header of %q: %w", name, err)
		}
		return nil, fmt.Errorf("read header of %q: %w", name, io.ErrUnexpectedEOF)
	}

	header := strings.Split(strings.TrimRight(sc.Text(), "\r"), "\t")
	if len(header) < 2 {
		return nil, fmt.Errorf("table %q: %w", name, ErrEmptyHeader)
	}

	return &Table{
		store:       store,
		name:        name,
		logger:      o.logger,
		entryHeader: strings.TrimPrefix(header[0], "#"),
		traits:      header[1:],
	}, nil
}

// Name returns the blob name backing the table.
func (t *Table) Name() string {
	return t.name
}

// EntryHeader returns the label of the first header column with its comment
// marker stripped.
func (t *Table) EntryHeader() string {
	return t.entryHeader
}

// Traits returns the trait names in header order. The returned slice is a
// copy; the schema itself is fixed at construction.
func (t *Table) Traits() []string {
	return slices.Clone(t.traits)
}

// Entries returns a lazy, finite, restartable sequence of entries.
//
// Each call opens an independent read pass from the start of the blob.
// Blank lines are skipped. Row-level problems never abort the pass:
//
//   - a line with no tab is logged with its raw content and skipped;
//   - a row with more value fields than header traits is logged and
//     skipped;
//   - a duplicate trait name (possible when the header itself repeats a
//     name) abandons that row, logged, and scanning continues.
//
// The error position of the sequence is used only for I/O failures.
func (t *Table) Entries(ctx context.Context) iter.Seq2[*trait.Entry, error] {
	return func(yield func(*trait.Entry, error) bool) {
		rc, err := blobstore.OpenDecoded(ctx, t.store, t.name)
		if err != nil {
			yield(nil, fmt.Errorf("open table %q: %w", t.name, err))
			return
		}
		defer rc.Close()

		sc := newLineScanner(rc)

		// Skip the header line.
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				yield(nil, err)
			}
			return
		}

		entries, skipped := 0, 0
		for sc.Scan() {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}

			line := strings.TrimRight(sc.Text(), "\r")
			if line == "" {
				continue
			}

			entry, ok := t.parseRow(line)
			if !ok {
				skipped++
				continue
			}

			entries++
			if !yield(entry, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(nil, fmt.Errorf("scan table %q: %w", t.name, err))
			return
		}

		t.logger.LogPass(t.name, entries, skipped)
	}
}

// parseRow builds an entry from one data line. It reports ok=false for any
// row-level problem, after logging it; no partial state leaks between rows.
func (t *Table) parseRow(line string) (*trait.Entry, bool) {
	name, rest, found := strings.Cut(line, "\t")
	if !found {
		t.logger.LogMalformedRow(t.name, line)
		return nil, false
	}

	values := strings.Split(rest, "\t")
	if len(values) > len(t.traits) {
		t.logger.LogRowSkipped(t.name, name, &RowTooWideError{
			Entry:  name,
			Fields: len(values),
			Traits: len(t.traits),
		})
		return nil, false
	}

	entry := trait.NewEntry(name)
	for i, raw := range values {
		if err := entry.AddTrait(t.traits[i], raw); err != nil {
			t.logger.LogRowSkipped(t.name, name, err)
			return nil, false
		}
	}
	return entry, true
}

// OrderedTraits returns the trait names in natural-sort order: embedded
// digit runs compare numerically, everything else lexicographically.
//
// When metadataLast is true, names starting with the literal prefix
// "metadata" sort after all other names while keeping their natural order
// among themselves. The returned names are always the real names.
//
// Pure function over the schema; the Table is not mutated.
func (t *Table) OrderedTraits(metadataLast bool) []string {
	out := slices.Clone(t.traits)
	slices.SortStableFunc(out, func(a, b string) int {
		if metadataLast {
			am := strings.HasPrefix(a, metadataPrefix)
			bm := strings.HasPrefix(b, metadataPrefix)
			if am != bm {
				if am {
					return 1
				}
				return -1
			}
		}
		return natsort.Compare(a, b)
	})
	return out
}

// Subset returns the entries whose name is in names, in source order.
//
// The scan stops early once every distinct name in names has been matched;
// there is nothing left to find. Entries repeating an already matched name
// after that point are not observed.
func (t *Table) Subset(ctx context.Context, names []string) iter.Seq2[*trait.Entry, error] {
	return func(yield func(*trait.Entry, error) bool) {
		want := nameSet(names)
		if len(want) == 0 {
			return
		}
		matched := make(map[string]struct{}, len(want))

		for entry, err := range t.Entries(ctx) {
			if err != nil {
				yield(nil, err)
				return
			}
			if _, ok := want[entry.Name]; !ok {
				continue
			}
			if !yield(entry, nil) {
				return
			}
			matched[entry.Name] = struct{}{}
			if len(matched) == len(want) {
				return
			}
		}
	}
}

// Exclude returns the entries whose name is NOT in names, in source order.
//
// Unlike Subset, exclusion never terminates early: every remaining entry is
// by definition outside the name set, so correctness requires scanning the
// entire stream.
func (t *Table) Exclude(ctx context.Context, names []string) iter.Seq2[*trait.Entry, error] {
	return func(yield func(*trait.Entry, error) bool) {
		drop := nameSet(names)

		for entry, err := range t.Entries(ctx) {
			if err != nil {
				yield(nil, err)
				return
			}
			if _, ok := drop[entry.Name]; ok {
				continue
			}
			if !yield(entry, nil) {
				return
			}
		}
	}
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return sc
}

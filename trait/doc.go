// Package trait defines the value and entry model for trait tables.
//
// A trait value is a small tagged union: numeric if the raw text parses as a
// floating-point number, textual otherwise. An Entry is one table record, a
// name plus its named trait values, and exposes Spearman rank correlation
// against another Entry over their shared traits.
package trait

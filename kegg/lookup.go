package kegg

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hupe1980/traittab/blobstore"
)

// Pathway hierarchy levels. Level 1 is the top level, level 2 an
// intermediate level (corresponding approximately to COGs), level 3 the
// pathway level.
const (
	LevelTop          = 1
	LevelIntermediate = 2
	LevelPathway      = 3
)

// UnknownLevelError indicates a pathway level outside 1..3.
type UnknownLevelError struct {
	Level int
}

func (e *UnknownLevelError) Error() string {
	return fmt.Sprintf("level must be 1, 2, or 3, got %d", e.Level)
}

// Options configures the lookup builders.
type Options struct {
	// Logger receives diagnostics for skipped lines. Nil disables logging.
	Logger *slog.Logger
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) func(*Options) {
	return func(o *Options) {
		o.Logger = l
	}
}

func applyOptions(optFns ...func(*Options)) *Options {
	o := &Options{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, fn := range optFns {
		fn(o)
		if o.Logger == nil {
			o.Logger = slog.New(slog.DiscardHandler)
		}
	}
	return o
}

// KOsByFunction reads a KO metadata table and groups KO names by their
// pathway prefix truncated to the given level.
//
// The file is tab-separated with a header line: the first field of each
// data row is the KO name, the last field its pathways, multiple pathways
// separated by "|" and levels within a pathway by ";". A KO whose pathway
// has fewer levels than requested is logged and skipped for that pathway.
func KOsByFunction(ctx context.Context, store blobstore.Store, name string, level int, optFns ...func(*Options)) (map[string][]string, error) {
	if level < LevelTop || level > LevelPathway {
		return nil, &UnknownLevelError{Level: level}
	}

	o := applyOptions(optFns...)

	rc, err := blobstore.OpenDecoded(ctx, store, name)
	if err != nil {
		return nil, fmt.Errorf("open KO metadata %q: %w", name, err)
	}
	defer rc.Close()

	data := make(map[string][]string)

	sc := bufio.NewScanner(rc)
	sc.Scan() // skip header

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fields := strings.Split(strings.TrimRight(sc.Text(), "\r"), "\t")
		if len(fields) < 2 {
			o.Logger.Warn("malformed KO metadata line skipped", "file", name, "raw", sc.Text())
			continue
		}

		koName := fields[0]
		for _, pathway := range strings.Split(fields[len(fields)-1], "|") {
			levels := strings.Split(pathway, ";")
			if len(levels) < level {
				o.Logger.Warn("KO has no pathway at the requested level",
					"ko", koName,
					"level", level,
				)
				continue
			}
			key := strings.Join(levels[:level], ";")
			data[key] = append(data[key], koName)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan KO metadata %q: %w", name, err)
	}

	return data, nil
}

// PlantAssociatedKOs reads a database of plant-associated KOs and returns a
// lineage-to-KOs map.
//
// The file is tab-separated with a header line: each data row is a lineage
// followed by its KOs separated by ";". A lineage with no KOs maps to an
// empty list.
func PlantAssociatedKOs(ctx context.Context, store blobstore.Store, name string, optFns ...func(*Options)) (map[string][]string, error) {
	o := applyOptions(optFns...)

	rc, err := blobstore.OpenDecoded(ctx, store, name)
	if err != nil {
		return nil, fmt.Errorf("open plant-associated KOs %q: %w", name, err)
	}
	defer rc.Close()

	data := make(map[string][]string)

	sc := bufio.NewScanner(rc)
	sc.Scan() // skip header

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}

		lineage, kos, found := strings.Cut(line, "\t")
		if !found {
			o.Logger.Warn("malformed lineage line skipped", "file", name, "raw", line)
			continue
		}

		if kos == "" {
			data[lineage] = []string{}
			continue
		}
		data[lineage] = strings.Split(kos, ";")
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan plant-associated KOs %q: %w", name, err)
	}

	return data, nil
}

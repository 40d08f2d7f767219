package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"pkg.jsn.cam/regfake/internal/output"
	"pkg.jsn.cam/regfake/internal/server"
	"pkg.jsn.cam/regfake/pkg/refdata"
	"pkg.jsn.cam/regfake/pkg/regfake"
)

func runGenerate(ctx context.Context, args []string, stdout io.Writer) error {
	var (
		cfg  Config
		mods modList
	)
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	cfg.register(fs)
	recordType := fs.String("type", "", "record type, e.g. RT_NATURAL_PERSON (see 'regfake templates')")
	fs.Var(&mods, "mod", "modifier token; repeat or comma separate")
	count := fs.Int("count", 1, "number of records")
	format := fs.String("format", string(output.JSON), "output format: json, yaml or msgpack")
	workers := fs.Int("workers", runtime.NumCPU(), "concurrent generators")
	outPath := fs.String("o", "", "output file (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *recordType == "" {
		return fmt.Errorf("-type is required")
	}
	if *count < 1 {
		return fmt.Errorf("-count must be positive, got %d", *count)
	}
	f, err := output.ParseFormat(*format)
	if err != nil {
		return err
	}

	store, err := cfg.openStore(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	engine, err := cfg.newEngine(store)
	if err != nil {
		return err
	}
	if _, ok := engine.Templates().Lookup(*recordType); !ok {
		log.Printf("[CLI] Warning: unknown record type %s, records will be empty", *recordType)
	}

	start := time.Now()
	records, err := engine.GenerateBatch(ctx, *recordType, regfake.NewModifiers(mods...), *count, *workers)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	out := stdout
	var file *os.File
	if *outPath != "" {
		file, err = os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer file.Close()
		out = file
	}

	w := bufio.NewWriter(out)
	if err := output.WriteAll(w, f, records); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	log.Printf("[CLI] Generated %s %s record(s) in %v", humanize.Comma(int64(len(records))), *recordType, elapsed.Round(time.Millisecond))
	if file != nil {
		if info, err := file.Stat(); err == nil {
			log.Printf("[CLI] Wrote %s to %s", humanize.Bytes(uint64(info.Size())), *outPath)
		}
	}
	return nil
}

func runTemplates(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("templates", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "list the fields of each record type")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ts := regfake.DefaultTemplates()
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDEFAULTS\tDESCRIPTION")
	for _, name := range ts.Names() {
		t, _ := ts.Lookup(name)
		defaults := strings.Join(t.Defaults.Slice(), ",")
		if defaults == "" {
			defaults = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Name, defaults, t.Description)
		if *verbose {
			for _, field := range t.Fields {
				fmt.Fprintf(tw, "\t\t  %s\n", field)
			}
		}
	}
	return tw.Flush()
}

func runSeed(ctx context.Context, args []string) error {
	var cfg Config
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cfg.register(fs)
	file := fs.String("file", "", "YAML reference data file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("-file is required")
	}

	seed, err := refdata.LoadSeed(*file)
	if err != nil {
		return err
	}

	store, err := cfg.openStore(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	if err := seed.Apply(ctx, store); err != nil {
		return err
	}
	log.Printf("[CLI] Seeded %s rows into %s store", humanize.Comma(int64(seed.Rows())), cfg.Store)
	return nil
}

func runServe(ctx context.Context, args []string) error {
	var cfg Config
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	cfg.register(fs)
	addr := fs.String("addr", ":8080", "listen address")
	maxCount := fs.Int("max-count", server.DefaultMaxCount, "max records per request")
	workers := fs.Int("workers", runtime.NumCPU(), "concurrent generators per request")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := cfg.openStore(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	engine, err := cfg.newEngine(store)
	if err != nil {
		return err
	}

	srv := server.NewServer(engine, server.Config{MaxCount: *maxCount, Workers: *workers})
	return srv.Start(ctx, *addr)
}

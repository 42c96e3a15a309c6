package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/Jtensminger/uocava-deadline-dataviz/src/deadlines"
)

func main() {
	var file string
	var logLevel string
	flag.StringVar(&file, "file", "uocava_deadlines.csv", "Path to the deadlines CSV")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()
	if !deadlines.SetLogLevel(logLevel) {
		fmt.Fprintf(os.Stderr, "unknown log level %q, using info\n", logLevel)
	}
	records, err := deadlines.LoadRecords(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Total states: %d\n", len(records))
	counts := deadlines.CountByReturnMethod(records)
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s: %d\n", k, counts[k])
	}
	if start, end, derr := deadlines.TimeDomain(records); derr == nil {
		fmt.Printf("Timeline domain: %s .. %s\n", start.Format(deadlines.DateLayout), end.Format(deadlines.DateLayout))
	}
}

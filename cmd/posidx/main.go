// Package main provides the entry point for the posidx CLI.
package main

import (
	"fmt"
	"os"
)

func main() {
	os.Exit(run(os.Args))
}

// run executes the CLI and returns an exit code.
// This is separated from main() to facilitate testing.
func run(args []string) int {
	if len(args) < 2 {
		printUsage(os.Stderr)
		return 1
	}

	switch args[1] {
	case "index":
		return indexCmd(args[2:])
	case "search":
		return searchCmd(args[2:])
	case "delete":
		return deleteCmd(args[2:])
	case "term_list_size":
		return termListSizeCmd(args[2:])
	case "posting_list_sizes":
		return postingListSizesCmd(args[2:])
	case "stats":
		return statsCmd(args[2:])
	case "top_terms":
		return topTermsCmd(args[2:])
	case "benchmark":
		return benchmarkCmd(args[2:])
	case "version":
		return versionCmd(args[2:])
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[1])
		fmt.Fprintln(os.Stderr, "Run 'posidx help' for usage.")
		return 1
	}
}

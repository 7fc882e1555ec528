package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
)

// CLI is the kong command-line grammar: a database path, a command string
// (one of the two dot-commands, or a SELECT statement), and the tuning
// flags optionsFromCLI turns into DatabaseOptions.
var CLI struct {
	DBPath         string `arg:"" type:"existingfile" help:"Path to the SQLite database file."`
	Command        string `arg:"" help:"'.dbinfo', '.tables', or a SELECT statement."`
	PageCacheSize  int    `help:"Page cache size (pages)." default:"100"`
	MaxConcurrency int    `help:"Maximum concurrent page reads." default:"10"`
	ReadTimeoutMs  int    `help:"Per-command timeout, in milliseconds." default:"5000"`
	Validation     string `help:"Header validation strictness." enum:"none,basic,strict" default:"basic"`
	Profile        bool   `help:"Enable profiling instrumentation."`
	Format         string `help:"Output format for query results." enum:"console,json" default:"console"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("litequery"),
		kong.Description("Read-only SQLite file format decoder and query engine."),
	)

	options := optionsFromCLI(&CLI)
	engine, err := NewSqliteEngineWithFormat(CLI.DBPath, CLI.Format, os.Stdout, options...)
	if err != nil {
		fail(err)
	}
	defer engine.Close()

	command, args := splitCommand(CLI.Command)
	if err := engine.ExecuteCommand(command, args); err != nil {
		fail(err)
	}
}

// splitCommand recognizes the two dot-commands; anything else is treated
// as SQL text for the "sql" command.
func splitCommand(raw string) (command, args string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == ".dbinfo" || trimmed == ".tables" {
		return trimmed, ""
	}
	return "sql", trimmed
}

// fail prints a one-line diagnostic and exits with a kind-specific code,
// per the failure semantics: callers can script against the exit code
// without parsing stderr text.
func fail(err error) {
	fmt.Fprintln(os.Stderr, err)

	var dbErr *DatabaseError
	if errors.As(err, &dbErr) {
		os.Exit(exitCodeForKind(dbErr.Kind))
	}
	os.Exit(1)
}

func exitCodeForKind(kind ErrorKind) int {
	switch kind {
	case KindMissingArgument:
		return 2
	case KindUnknownCommand:
		return 3
	case KindIoError:
		return 4
	case KindShortRead:
		return 5
	case KindTruncated:
		return 6
	case KindInvalidUtf8:
		return 7
	case KindMalformedDdl:
		return 8
	case KindUnknownColumn:
		return 9
	case KindTableNotFound:
		return 10
	case KindOverflowUnsupported:
		return 11
	case KindCorruptPage:
		return 12
	default:
		return 1
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// SqliteEngine is the command dispatcher: it owns the logical database and
// an output formatter, and turns .dbinfo / .tables / a SELECT string into
// printed output.
type SqliteEngine struct {
	db        Database
	out       io.Writer
	formatter OutputFormatter
}

// NewSqliteEngine opens dbPath and wires a console formatter writing to out.
func NewSqliteEngine(dbPath string, out io.Writer, options ...DatabaseOption) (*SqliteEngine, error) {
	db, err := NewDatabase(dbPath, options...)
	if err != nil {
		return nil, err
	}
	return &SqliteEngine{db: db, out: out, formatter: NewConsoleFormatter(out)}, nil
}

// NewSqliteEngineWithFormat is NewSqliteEngine with an explicit output
// format ("console" or "json"), used by the --format CLI flag.
func NewSqliteEngineWithFormat(dbPath, format string, out io.Writer, options ...DatabaseOption) (*SqliteEngine, error) {
	engine, err := NewSqliteEngine(dbPath, out, options...)
	if err != nil {
		return nil, err
	}
	if format == "json" {
		engine.formatter = NewJSONFormatter(out)
	}
	return engine, nil
}

// Close closes the underlying database file.
func (engine *SqliteEngine) Close() error {
	return engine.db.Close()
}

// ExecuteCommand runs one of the three supported commands: ".dbinfo",
// ".tables", or "sql" (args holds the SELECT statement text).
func (engine *SqliteEngine) ExecuteCommand(command, args string) error {
	switch command {
	case ".dbinfo":
		return engine.handleDBInfo()
	case ".tables":
		return engine.handleTables()
	case "sql":
		return engine.handleSQL(args)
	default:
		return wrapf(KindUnknownCommand, "execute_command", "command", command)
	}
}

func (engine *SqliteEngine) handleDBInfo() error {
	ctx, cancel := context.WithTimeout(context.Background(), engine.db.GetReadTimeout())
	defer cancel()

	pageSize := engine.db.GetPageSize()
	fmt.Fprintf(engine.out, "database page size: %v\n", pageSize)

	schema, err := engine.db.GetSchema(ctx)
	if err != nil {
		return err
	}
	tableCount := 0
	for _, row := range schema {
		if row.Type == "table" {
			tableCount++
		}
	}
	fmt.Fprintf(engine.out, "number of tables: %v\n", tableCount)
	return nil
}

func (engine *SqliteEngine) handleTables() error {
	ctx, cancel := context.WithTimeout(context.Background(), engine.db.GetReadTimeout())
	defer cancel()

	names, err := engine.db.GetTables(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(engine.out, strings.Join(names, " "))
	return nil
}

func (engine *SqliteEngine) handleSQL(sqlText string) error {
	ctx, cancel := context.WithTimeout(context.Background(), engine.db.GetReadTimeout())
	defer cancel()

	stmt, err := parseQuery(sqlText)
	if err != nil {
		return err
	}

	result, err := executeQuery(ctx, engine.db, stmt)
	if err != nil {
		return err
	}

	output := engine.formatter.FormatResult(result)
	if output != "" {
		fmt.Fprintln(engine.out, output)
	}
	return nil
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"kronkdb/internal/engine"
	"kronkdb/internal/schema"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kronk-demo",
		Short: "Exercises kronkdb end to end against an in-memory books table",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Build a books table, insert a few rows, and run sample queries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd)
		},
	}

	rootCmd.AddCommand(runCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDemo(cmd *cobra.Command) error {
	db := engine.New("kronk", engine.DefaultConfig())

	_, err := db.AddTableSpecs("books", []schema.ColumnSpec{
		{Name: "id", Type: schema.SerialID()},
		{Name: "author", Type: schema.Byte(64)},
		{Name: "title", Type: schema.Byte(64)},
		{Name: "year_published", Type: schema.Int32()},
		{Name: "us_based_publisher", Type: schema.Boolean()},
	})
	if err != nil {
		return fmt.Errorf("add table: %w", err)
	}

	books := []struct{ author, title, year string }{
		{"Billy Bob", "How to Sting Like a Bee", "1932"},
		{"Stink Williams", "Floating Down the Mississippi", "1921"},
		{"Stink Williams", "The River Remembers", "1937"},
	}
	for _, b := range books {
		if _, err := db.InsertColumns("books", []schema.ColumnValue{
			{Name: "author", Text: b.author},
			{Name: "title", Text: b.title},
			{Name: "year_published", Text: b.year},
		}); err != nil {
			return fmt.Errorf("insert: %w", err)
		}
	}

	out := cmd.OutOrStdout()

	all, err := db.Query(`select id, author, year_published from books`)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	fmt.Fprintln(out, "select id, author, year_published from books")
	printResults(out, all)

	recent, err := db.Query(`select id, title from books where year_published >= 1930`)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	fmt.Fprintln(out, "\nselect id, title from books where year_published >= 1930")
	printResults(out, recent)

	return nil
}

func printResults(out io.Writer, rows []engine.ResultRow) {
	for _, row := range rows {
		fmt.Fprintf(out, "id=%d", row.ID)
		for _, p := range row.Projections {
			fmt.Fprintf(out, " %s=%s", p.Name, p.Text)
		}
		fmt.Fprintln(out)
	}
}

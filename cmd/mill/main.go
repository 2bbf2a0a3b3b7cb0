// Package main provides a CLI for mill administration.
//
// Usage:
//
//	mill create --code sri-lakshmi --name "Sri Lakshmi Rice Mill"
//	mill list
//	mill migrate
//	mill suspend <mill-id>
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"ricemill/internal/core/apperror"
	"ricemill/internal/core/id"
	"ricemill/internal/core/mill"
	"ricemill/internal/domain/mills"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Warning: could not read .env: %v\n", err)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "create":
		createMill(ctx)
	case "list":
		listMills(ctx)
	case "migrate":
		migrate()
	case "suspend":
		setStatus(ctx, mill.StatusSuspended)
	case "activate":
		setStatus(ctx, mill.StatusActive)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Rice Mill Administration CLI

Usage:
  mill <command> [options]

Commands:
  create    Register a new mill
  list      List all mills
  migrate   Apply database migrations (requires goose on PATH)
  suspend   Suspend a mill
  activate  Activate a suspended mill
  help      Show this help

Environment Variables:
  DATABASE_URL   Connection string (required)

Examples:
  mill create --code sri-lakshmi --name "Sri Lakshmi Rice Mill" --gst 29ABCDE1234F1Z5
  mill list
  mill migrate
  mill suspend <mill-uuid>
  mill activate <mill-uuid>`)
}

func databaseURL() string {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Println("Error: DATABASE_URL environment variable is required")
		os.Exit(1)
	}
	return dsn
}

func getPool(ctx context.Context) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, databaseURL())
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	return pool
}

// flagValues collects "--name value" pairs after the command.
func flagValues(args []string) map[string]string {
	out := make(map[string]string)
	for i := 0; i < len(args); i++ {
		if strings.HasPrefix(args[i], "--") && i+1 < len(args) {
			out[strings.TrimPrefix(args[i], "--")] = args[i+1]
			i++
		}
	}
	return out
}

func createMill(ctx context.Context) {
	flags := flagValues(os.Args[2:])
	if flags["code"] == "" || flags["name"] == "" {
		fmt.Println("Error: --code and --name are required")
		fmt.Println("Usage: mill create --code <code> --name <name> [--address <address>] [--gst <gst-number>]")
		os.Exit(1)
	}

	pool := getPool(ctx)
	defer pool.Close()

	svc := mills.NewService(mill.NewPostgresRegistry(pool))

	fmt.Printf("Creating mill '%s'...\n", flags["code"])
	m, err := svc.Create(ctx, &mill.Mill{
		Code:      flags["code"],
		Name:      flags["name"],
		Address:   flags["address"],
		GSTNumber: flags["gst"],
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			fmt.Printf("Error: %s\n", appErr.Message)
		} else {
			fmt.Printf("Error registering mill: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("\n✓ Mill '%s' created successfully!\n", m.Code)
	fmt.Printf("  Mill ID: %s\n", m.ID)
	fmt.Printf("  Name: %s\n", m.Name)
	fmt.Printf("  Status: %s\n", m.Status)
}

func listMills(ctx context.Context) {
	pool := getPool(ctx)
	defer pool.Close()

	list, err := mills.NewService(mill.NewPostgresRegistry(pool)).List(ctx, nil)
	if err != nil {
		fmt.Printf("Error listing mills: %v\n", err)
		os.Exit(1)
	}

	if len(list) == 0 {
		fmt.Println("No mills found")
		return
	}

	fmt.Printf("%-36s %-20s %-30s %-15s %-10s\n", "MILL_ID", "CODE", "NAME", "GST", "STATUS")
	fmt.Println(strings.Repeat("-", 115))

	for _, m := range list {
		fmt.Printf("%-36s %-20s %-30s %-15s %-10s\n",
			m.ID,
			truncate(m.Code, 20),
			truncate(m.Name, 30),
			m.GSTNumber,
			m.Status,
		)
	}
}

// migrate runs goose against DATABASE_URL. All mills share one schema.
func migrate() {
	dir := "db/migrations"
	if v := flagValues(os.Args[2:])["dir"]; v != "" {
		dir = v
	}

	fmt.Printf("Applying migrations from %s...\n", dir)
	cmd := exec.Command("goose", "-dir", dir, "postgres", databaseURL(), "up")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Printf("  ✗ Failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("  ✓ Done")
}

func setStatus(ctx context.Context, status mill.Status) {
	if len(os.Args) < 3 {
		fmt.Printf("Usage: mill %s <mill-uuid>\n", os.Args[1])
		os.Exit(1)
	}

	millID, err := id.Parse(os.Args[2])
	if err != nil {
		fmt.Printf("Error: invalid mill id '%s'\n", os.Args[2])
		os.Exit(1)
	}

	pool := getPool(ctx)
	defer pool.Close()

	m, err := mills.NewService(mill.NewPostgresRegistry(pool)).SetStatus(ctx, millID, status)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Mill '%s' is now %s\n", m.Code, m.Status)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

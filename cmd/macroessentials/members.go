package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"macroessentials/internal/driver"
)

func newMembersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members [flags] <file.swift|directory>",
		Short: "List the members of every type with their inferred types",
		Long: `Walk the type declarations of a Swift file or directory and print, per type,
its attached macros, its conformances and the kind and type of every binding.`,
		Args: cobra.ExactArgs(1),
		RunE: runMembers,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	addAnalysisFlags(cmd)
	return cmd
}

type membersFile struct {
	Path  string              `json:"path"`
	Types []driver.TypeReport `json:"types"`
}

func runMembers(cmd *cobra.Command, args []string) error {
	target := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	cfg, err := loadSettings(cmd, target)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, cfg)
	if err != nil {
		return err
	}
	_, results, err := analyzeTarget(cmd, target, opts)
	if err != nil {
		dumpTrace(cmd)
		return fmt.Errorf("members: %w", err)
	}

	files := make([]membersFile, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		types := r.Types
		if types == nil {
			types = []driver.TypeReport{}
		}
		files = append(files, membersFile{Path: r.Path, Types: types})
	}

	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(files)
	}
	colored, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	return renderMembers(cmd.OutOrStdout(), files, colored)
}

func renderMembers(w io.Writer, files []membersFile, colored bool) error {
	heading := lipgloss.NewStyle()
	failed := lipgloss.NewStyle()
	if colored {
		heading = heading.Bold(true)
		failed = failed.Foreground(lipgloss.Color("1"))
	}
	for _, f := range files {
		for _, t := range f.Types {
			title := fmt.Sprintf("%s:%d: %s %s", f.Path, t.Line, t.Kind, t.Name)
			if len(t.Macros) > 0 {
				title += " @" + strings.Join(t.Macros, " @")
			}
			if len(t.Conformances) > 0 {
				title += " : " + strings.Join(t.Conformances, ", ")
			}
			if _, err := fmt.Fprintln(w, heading.Render(title)); err != nil {
				return err
			}
			if len(t.Members) == 0 {
				fmt.Fprintln(w, "  (no members)")
				continue
			}
			rows := make([][]string, 0, len(t.Members))
			for _, m := range t.Members {
				typ := m.Type
				if m.Failure != "" {
					typ = failed.Render("error: " + m.Failure)
				}
				rows = append(rows, []string{m.Name, m.Kind, typ, strconv.FormatBool(m.Explicit)})
			}
			tbl := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("NAME", "KIND", "TYPE", "EXPLICIT").
				Rows(rows...)
			if _, err := fmt.Fprintln(w, tbl.String()); err != nil {
				return err
			}
		}
	}
	return nil
}

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/suiwallet/internal/output"
)

// walkCommands calls fn for cmd and every descendant, parents first.
func walkCommands(cmd *cobra.Command, fn func(*cobra.Command)) {
	fn(cmd)
	for _, sub := range cmd.Commands() {
		walkCommands(sub, fn)
	}
}

// enrichParentLong lists a parent's visible subcommands under its Long text
// so "suiwallet wallet --help" reads as a table of contents.
func enrichParentLong(cmd *cobra.Command) {
	if !cmd.HasSubCommands() {
		return
	}

	table := output.NewTable()
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() {
			table.AddRow(sub.Name(), sub.Short)
		}
	}

	var rows strings.Builder
	_ = table.Render(&rows)

	var sb strings.Builder
	sb.WriteString(cmd.Long)
	sb.WriteString("\n\nSubcommands:\n")
	for _, line := range strings.SplitAfter(strings.TrimRight(rows.String(), "\n"), "\n") {
		sb.WriteString("  " + line)
	}
	sb.WriteString("\n")
	cmd.Long = sb.String()
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesdash/salesdash/internal/cliopt"
)

func NewVersionCmd(g *cliopt.GlobalOptions, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			skipConfigAnnotation: "true",
		},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(g.Stdout, "salesdash %s\n", version)
		},
	}
}

// skipConfigAnnotation marks commands that run without loading config.
const skipConfigAnnotation = "salesdash/skip-config"

// SkipsConfig reports whether cmd runs without loading config.
func SkipsConfig(cmd *cobra.Command) bool {
	return cmd.Annotations[skipConfigAnnotation] == "true"
}

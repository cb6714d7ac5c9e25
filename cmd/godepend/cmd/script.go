package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/godepend/internal/database"
	"github.com/dbsmedya/godepend/internal/depend"
)

var scriptCmd = &cobra.Command{
	Use:   "script <database.object> [database.object ...]",
	Short: "Emit creation scripts in dependency order",
	Long: `Script resolves the dependency order for the given objects and prints
each object's normalized creation script, prerequisites first, so the output
can be replayed onto another server as-is.

Session-setting prologues are stripped from the scripts and each batch ends
with the GO terminator.

Example:
  godepend script --direction dependencies shop.order_summary > create.sql`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(scriptCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	ctx := database.SetupSignalHandler()

	cfg, _, resolver, cleanup, err := resolveSetup(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	roots := make([]depend.Identity, 0, len(args))
	for _, arg := range args {
		urn, err := parseObject(arg, cfg.Server.Host)
		if err != nil {
			return err
		}
		roots = append(roots, urn)
	}

	opts := optionsFromConfig(cfg)
	opts.IncludeScript = true
	// Scripting the closure without the root itself is rarely useful.
	opts.IncludeSelf = true

	results, err := resolver.ResolveBatch(ctx, roots, opts)
	if err != nil {
		return err
	}

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			fmt.Fprintf(outputWriter, "-- error resolving %s: %v\n", result.Root, result.Err)
			continue
		}

		for _, rec := range result.Records {
			fmt.Fprintf(outputWriter, "-- %s (%s, tier %d)\n", rec.Identity, rec.Kind, rec.Tier)
			fmt.Fprint(outputWriter, rec.Script)
			fmt.Fprintln(outputWriter)
		}
		for _, nodeErr := range result.NodeErrors {
			fmt.Fprintf(outputWriter, "-- skipped: %v\n", nodeErr)
		}
	}

	if failed > 0 {
		return fmt.Errorf("scripting failed for %d of %d root(s)", failed, len(results))
	}
	return nil
}

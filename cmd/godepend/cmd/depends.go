package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/godepend/internal/catalog"
	"github.com/dbsmedya/godepend/internal/config"
	"github.com/dbsmedya/godepend/internal/database"
	"github.com/dbsmedya/godepend/internal/depend"
	"github.com/dbsmedya/godepend/internal/identity"
	"github.com/dbsmedya/godepend/internal/logger"
	"github.com/dbsmedya/godepend/internal/render"
)

// outputWriter is used for printing output, can be overridden in tests
var outputWriter io.Writer = os.Stdout

// setOutputWriter sets the output writer (used for testing)
func setOutputWriter(w io.Writer) {
	outputWriter = w
}

// resetOutputWriter resets output to stdout (used for testing)
func resetOutputWriter() {
	outputWriter = os.Stdout
}

var (
	dependsIncludeSelf bool
	dependsTree        bool
	dependsNoColor     bool
)

var dependsCmd = &cobra.Command{
	Use:   "depends <database.object> [database.object ...]",
	Short: "Resolve and order the dependencies of database objects",
	Long: `Depends discovers the transitive dependency closure of one or more
database objects and prints it as a flat, deduplicated list in causal order:
every object appears only after all objects it depends on.

Direction is taken from configuration (default: dependents) and can be
overridden with --direction.

Examples:
  godepend depends shop.orders
  godepend depends --direction dependencies shop.order_summary
  godepend depends --include-self --tree shop.customers`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDepends,
}

func init() {
	dependsCmd.Flags().BoolVar(&dependsIncludeSelf, "include-self", false,
		"Include the root object itself as a tier-0 record")
	dependsCmd.Flags().BoolVar(&dependsTree, "tree", false,
		"Also print the raw discovery tree per root")
	dependsCmd.Flags().BoolVar(&dependsNoColor, "no-color", false,
		"Disable colored output")

	rootCmd.AddCommand(dependsCmd)
}

// parseObject turns a CLI object argument into a URN. Accepted forms:
// "database.object" (server taken from config) and the full URN form
// "server/database[/schema]/object".
func parseObject(arg, server string) (identity.URN, error) {
	if strings.Contains(arg, "/") {
		return identity.Parse(arg)
	}
	parts := strings.Split(arg, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return identity.URN{}, fmt.Errorf("invalid object %q: want database.object", arg)
	}
	return identity.New(server, parts[0], "", parts[1]), nil
}

// resolveSetup loads config, connects, and wires the resolution pipeline.
// The returned cleanup closes the connection.
func resolveSetup(ctx context.Context) (*config.Config, *catalog.Store, *depend.Resolver, func(), error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat, overrides.Direction, overrides.IncludeSystem)

	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, nil, err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	dbManager := database.NewManager(cfg)
	if err := dbManager.Connect(ctx); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	store := catalog.NewStore(dbManager.Server, cfg.Server.Host, cfg.Resolve.MaxDepth, log)
	resolver := depend.NewResolver(store, store, log)

	cleanup := func() { _ = dbManager.Close() }
	return cfg, store, resolver, cleanup, nil
}

// optionsFromConfig builds resolution options from config defaults.
func optionsFromConfig(cfg *config.Config) depend.Options {
	opts := depend.DefaultOptions()
	if cfg.Resolve.Direction == "dependencies" {
		opts.Direction = depend.Dependencies
	}
	opts.IncludeSelf = cfg.Resolve.IncludeSelf
	opts.IncludeScript = cfg.Resolve.IncludeScript
	opts.IncludeSystemObjects = cfg.Resolve.IncludeSystem
	return opts
}

func runDepends(cmd *cobra.Command, args []string) error {
	ctx := database.SetupSignalHandler()

	cfg, store, resolver, cleanup, err := resolveSetup(ctx)
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
	opts.IncludeSelf = opts.IncludeSelf || dependsIncludeSelf
	// The listing never prints scripts; skip fetching them.
	opts.IncludeScript = false

	results, err := resolver.ResolveBatch(ctx, roots, opts)
	if err != nil {
		return err
	}

	failed := 0
	for _, result := range results {
		fmt.Fprintf(outputWriter, "== %s of %s ==\n", opts.Direction, result.Root)

		if result.Err != nil {
			failed++
			fmt.Fprintf(outputWriter, "error: %v\n\n", result.Err)
			continue
		}

		if dependsTree {
			tree, err := store.Discover(ctx, []depend.Identity{result.Root},
				opts.IncludeSystemObjects, opts.Direction)
			if err == nil {
				fmt.Fprintln(outputWriter, render.Tree(tree))
			}
		}

		fmt.Fprint(outputWriter, render.Records(result.Records, !dependsNoColor))
		for _, nodeErr := range result.NodeErrors {
			fmt.Fprintf(outputWriter, "skipped: %v\n", nodeErr)
		}
		fmt.Fprintln(outputWriter)
	}

	if failed > 0 {
		return fmt.Errorf("resolution failed for %d of %d root(s)", failed, len(results))
	}
	return nil
}

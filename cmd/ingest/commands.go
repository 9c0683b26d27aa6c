package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dom/league-skinset-finder/internal/catalog"
	"github.com/dom/league-skinset-finder/internal/ingest"
	"github.com/dom/league-skinset-finder/internal/repository/postgres"
	"github.com/dom/league-skinset-finder/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type buildConfig struct {
	lanes       string
	skinsets    string
	overrides   string
	dataDate    string
	out         string
	databaseURL string
}

func (c *buildConfig) validate() error {
	if c.lanes == "" || c.skinsets == "" {
		return errors.New("both --lanes and --skinsets must be provided")
	}
	if c.dataDate != "" {
		if _, err := time.Parse("2006-01-02", c.dataDate); err != nil {
			return fmt.Errorf("invalid --data-date %q, want YYYY-MM-DD", c.dataDate)
		}
	}
	return nil
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Build and inspect skinset catalog snapshots.",
	}

	cmd.AddCommand(newBuildCmd(), newShowCmd())

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}

func newBuildCmd() *cobra.Command {
	cfg := &buildConfig{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a catalog snapshot from the wiki lane and skinset tables.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return runBuild(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&cfg.lanes, "lanes", "", "path or URL of the champion lanes table HTML (env: SKINSET_INGEST_LANES)")
	fs.StringVar(&cfg.skinsets, "skinsets", "", "path or URL of the skin themes table HTML (env: SKINSET_INGEST_SKINSETS)")
	fs.StringVar(&cfg.overrides, "overrides", "", "optional YAML file of extra lanes per champion (env: SKINSET_INGEST_OVERRIDES)")
	fs.StringVar(&cfg.dataDate, "data-date", "", "date the tables were downloaded, defaults to today (env: SKINSET_INGEST_DATA_DATE)")
	fs.StringVarP(&cfg.out, "out", "o", "data/catalog.json", "where to write the snapshot, - for stdout (env: SKINSET_INGEST_OUT)")
	fs.StringVar(&cfg.databaseURL, "database-url", "", "also import the snapshot into this database (env: SKINSET_INGEST_DATABASE_URL)")
	bindEnv(fs)

	return cmd
}

func newShowCmd() *cobra.Command {
	var path, champion string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Summarize a catalog snapshot.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := catalog.LoadFile(path)
			if err != nil {
				return err
			}
			cat, err := catalog.New(snap)
			if err != nil {
				return err
			}
			return printCatalog(cmd.OutOrStdout(), cat, champion)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&path, "catalog", "c", "data/catalog.json", "snapshot to read (env: SKINSET_INGEST_CATALOG)")
	fs.StringVar(&champion, "champion", "", "only show this champion (env: SKINSET_INGEST_CHAMPION)")
	bindEnv(fs)

	return cmd
}

// bindEnv lets SKINSET_INGEST_<FLAG> fill any flag not given on the command line.
func bindEnv(fs *pflag.FlagSet) {
	v := viper.New()
	v.SetEnvPrefix("SKINSET_INGEST")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}

func runBuild(ctx context.Context, cfg *buildConfig) error {
	fetcher := ingest.NewFetcher()

	lanes, err := fetcher.Open(ctx, cfg.lanes)
	if err != nil {
		return err
	}
	defer lanes.Close()

	skinsets, err := fetcher.Open(ctx, cfg.skinsets)
	if err != nil {
		return err
	}
	defer skinsets.Close()

	src := ingest.Sources{
		Lanes:    lanes,
		Skinsets: skinsets,
		DataDate: cfg.dataDate,
	}
	if src.DataDate == "" {
		src.DataDate = time.Now().Format("2006-01-02")
	}
	if cfg.overrides != "" {
		src.Overrides, err = ingest.LoadOverrides(cfg.overrides)
		if err != nil {
			return err
		}
	}

	snap, err := ingest.Build(src)
	if err != nil {
		return fmt.Errorf("failed to build snapshot: %w", err)
	}

	if cfg.out == "-" {
		if err := snap.Encode(os.Stdout); err != nil {
			return err
		}
	} else {
		if err := snap.WriteFile(cfg.out); err != nil {
			return err
		}
		log.Printf("wrote %d champions and %d skinsets to %s", len(snap.Champions), len(snap.Skinsets), cfg.out)
	}

	if cfg.databaseURL == "" {
		return nil
	}

	db, err := postgres.NewConnection(cfg.databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	record, err := service.NewCatalogService(nil, postgres.NewRepositories(db)).Import(ctx, snap)
	if err != nil {
		return err
	}
	log.Printf("imported snapshot %s (fingerprint %s)", record.ID, record.Fingerprint)
	return nil
}

func printCatalog(w io.Writer, cat *catalog.Catalog, champion string) error {
	if champion != "" {
		id, ok := cat.ChampionByName(champion)
		if !ok {
			return fmt.Errorf("unknown champion %q", champion)
		}
		c := cat.Champion(id)
		names := make([]string, 0)
		for _, sid := range cat.SkinsetsFor(id) {
			names = append(names, cat.Skinset(sid).Name)
		}
		fmt.Fprintf(w, "%s\n  lanes:    %s\n  skinsets: %s\n", c.Name, c.Lanes, strings.Join(names, ", "))
		return nil
	}

	fmt.Fprintf(w, "data date:   %s\n", cat.DataDate())
	fmt.Fprintf(w, "fingerprint: %s\n", cat.Fingerprint())
	fmt.Fprintf(w, "champions:   %d\n", cat.NumChampions())
	fmt.Fprintf(w, "skinsets:    %d\n", cat.NumSkinsets())

	excluded := make([]string, 0)
	for _, sid := range cat.DefaultExclusions() {
		excluded = append(excluded, cat.Skinset(sid).Name)
	}
	fmt.Fprintf(w, "excluded by default: %s\n", strings.Join(excluded, ", "))
	return nil
}

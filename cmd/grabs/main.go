// Command grabs downloads deep-zoom images from the Paris specialized
// libraries and reconstructs them into full-resolution rasters.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/HueyNemud/grabs/internal/config"
	"github.com/HueyNemud/grabs/internal/download"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "grabs [urls...]",
	Short: "Reconstruct deep-zoom images from the Paris specialized libraries",
	Long: `grabs rebuilds full-resolution images from the deep-zoom tiles served
by bibliotheques-specialisees.paris.fr.

Given a document or image view URL, the tool scrapes the page metadata,
fetches every tile of the requested zoom level concurrently and stitches
them into a single raster, saved next to a JSON metadata dump.

Examples:
  # Download one image view at its maximum zoom level
  grabs -s https://bibliotheques-specialisees.paris.fr/ark:/73873/pf0000123/v0008

  # Download every view of a document at zoom level 12
  grabs -s https://bibliotheques-specialisees.paris.fr/ark:/73873/pf0000123 -z 12 -o ./out

  # Crawl a collection recursively, metadata only
  grabs -s https://bibliotheques-specialisees.paris.fr/ark:/73873/pf0000123 -r -d

For interactive mode, use: grabs-tui`,
	RunE: runGrabs,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.grabs.yaml)")

	// Input options
	rootCmd.Flags().StringSliceP("src", "s", []string{}, "document or image URL(s) to download")

	// Output options
	rootCmd.Flags().StringP("out-dir", "o", ".", "output directory")
	rootCmd.Flags().BoolP("no-download", "d", false, "write metadata only, skip image reconstruction")

	// Download options
	rootCmd.Flags().IntP("zoom-level", "z", 0, "zoom level (0 selects each image's maximum)")
	rootCmd.Flags().BoolP("recursive", "r", false, "recurse into child documents of collections")
	rootCmd.Flags().Int("max-images", 1, "concurrent image reconstructions")
	rootCmd.Flags().Int("max-workers", 10, "concurrent tile fetches per image")
	rootCmd.Flags().Int("fetch-timeout", 20, "aggregate tile fetch timeout in seconds, per image")

	// HTTP options
	rootCmd.Flags().String("user-agent", "", "HTTP User-Agent header")

	// Logging options
	rootCmd.Flags().BoolP("verbose", "v", false, "show verbose output")

	viper.BindPFlag("src", rootCmd.Flags().Lookup("src"))
	viper.BindPFlag("out-dir", rootCmd.Flags().Lookup("out-dir"))
	viper.BindPFlag("no-download", rootCmd.Flags().Lookup("no-download"))
	viper.BindPFlag("zoom-level", rootCmd.Flags().Lookup("zoom-level"))
	viper.BindPFlag("recursive", rootCmd.Flags().Lookup("recursive"))
	viper.BindPFlag("max-images", rootCmd.Flags().Lookup("max-images"))
	viper.BindPFlag("max-workers", rootCmd.Flags().Lookup("max-workers"))
	viper.BindPFlag("fetch-timeout", rootCmd.Flags().Lookup("fetch-timeout"))
	viper.BindPFlag("user-agent", rootCmd.Flags().Lookup("user-agent"))
	viper.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".grabs" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".grabs")
	}

	viper.SetEnvPrefix("grabs")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func runGrabs(cmd *cobra.Command, args []string) error {
	urls := append(viper.GetStringSlice("src"), args...)
	if len(urls) == 0 {
		return cmd.Help()
	}

	settings := config.DefaultSettings()
	settings.OutputDir = viper.GetString("out-dir")
	settings.ZoomLevel = viper.GetInt("zoom-level")
	settings.Recursive = viper.GetBool("recursive")
	settings.MetadataOnly = viper.GetBool("no-download")
	settings.MaxConcurrentImages = viper.GetInt("max-images")
	settings.MaxTileWorkers = viper.GetInt("max-workers")
	settings.FetchTimeoutSeconds = viper.GetInt("fetch-timeout")
	settings.UserAgent = viper.GetString("user-agent")
	settings.Verbose = viper.GetBool("verbose")

	// Handle interrupts
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	manager := download.NewManager(settings, func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !settings.Verbose {
			return
		}

		prefix := "   "
		switch event.Level {
		case download.LevelError:
			prefix = "x "
		case download.LevelWarning:
			prefix = "! "
		case download.LevelSuccess:
			prefix = "+ "
		case download.LevelInfo:
			prefix = "> "
		}

		fmt.Println(prefix + event.Message)
	})

	if err := manager.Initialize(ctx, strings.Join(urls, "\n")); err != nil {
		return fmt.Errorf("initializing: %w", err)
	}

	if err := manager.StartDownloads(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nDownload cancelled.")
			os.Exit(130)
		}
		return fmt.Errorf("downloading: %w", err)
	}

	tilesFetched, tilesTotal, imagesSaved, imagesTotal := manager.GetProgress()
	fmt.Println()
	if settings.MetadataOnly {
		fmt.Printf("Complete! Wrote metadata for %d image(s)\n", imagesTotal)
	} else {
		fmt.Printf("Complete! Saved %d/%d image(s) (%d/%d tiles)\n", imagesSaved, imagesTotal, tilesFetched, tilesTotal)
	}
	return nil
}

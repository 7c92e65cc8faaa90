package main

import (
	"fmt"
	"os"

	"github.com/jamesainslie/genindex/pkg/genindex/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string

	// configErr holds a failure to read an explicitly named config file.
	configErr error

	rootCmd = &cobra.Command{
		Use:   "genindex [top_dir]",
		Short: "Generate HTML index pages for directories",
		Long: `genindex writes a static HTML listing into a directory, and with -r
into every directory below it.

Each page lists the directory's entries with an icon, a link, the size and
the modification time. Subdirectories come first; the generated file itself
is never listed.

Examples:
  genindex                         # Index the current directory
  genindex -r /srv/files           # Index a whole tree
  genindex -r -f "*.txt" docs      # Only list .txt files (directories always shown)
  genindex -x '^tmp' -i .          # Include dot-files, drop names starting with tmp
  genindex -n -r -v .              # Show what would be written
  genindex history                 # View recorded runs`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runGenerate,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ~/.config/genindex/config.yaml)")
	flags.BoolP("verbose", "v", false, "report every listed entry and debug output")
	flags.BoolP("quiet", "q", false, "only print errors")

	gen := rootCmd.Flags()
	gen.StringP("filter", "f", "", "only list files matching this glob (directories are always listed)")
	gen.StringP("output-file", "o", config.DefaultOutputFile, "name of the generated page")
	gen.BoolP("recursive", "r", false, "index every reachable subdirectory")
	gen.BoolP("include-hidden", "i", false, "list dot-files")
	gen.StringP("exclude-regex", "x", "", "drop entries whose name matches this regular expression")
	gen.BoolP("dry-run", "n", false, "render pages without writing them")
	gen.String("sort", config.DefaultSort, "order within each group: name, size, modified")
	gen.Bool("reverse", false, "reverse the order within each group")
	gen.Bool("readme", false, "render the directory README above the listing")
	gen.Bool("dir-sizes", false, "show aggregate sizes for subdirectories")
	gen.Bool("record", false, "record this run in the history")

	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("quiet", flags.Lookup("quiet"))
	_ = viper.BindPFlag("filter", gen.Lookup("filter"))
	_ = viper.BindPFlag("output_file", gen.Lookup("output-file"))
	_ = viper.BindPFlag("recursive", gen.Lookup("recursive"))
	_ = viper.BindPFlag("include_hidden", gen.Lookup("include-hidden"))
	_ = viper.BindPFlag("exclude_regex", gen.Lookup("exclude-regex"))
	_ = viper.BindPFlag("dry_run", gen.Lookup("dry-run"))
	_ = viper.BindPFlag("sort", gen.Lookup("sort"))
	_ = viper.BindPFlag("reverse", gen.Lookup("reverse"))
	_ = viper.BindPFlag("readme", gen.Lookup("readme"))
	_ = viper.BindPFlag("dir_sizes", gen.Lookup("dir-sizes"))
	_ = viper.BindPFlag("history.enabled", gen.Lookup("record"))
}

// initConfig reads in config file and environment variables.
func initConfig() {
	config.Configure(viper.GetViper(), cfgFile)
	configErr = config.Read(viper.GetViper())
}

// loadConfig returns the effective configuration: flags, environment,
// config file and defaults, in that order of precedence.
func loadConfig() (*config.Config, error) {
	if configErr != nil {
		return nil, configErr
	}
	return config.FromViper(viper.GetViper())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// getVerbose returns true if verbose mode is enabled.
func getVerbose() bool {
	return viper.GetBool("verbose")
}

// getQuiet returns true if quiet mode is enabled.
func getQuiet() bool {
	return viper.GetBool("quiet")
}

// printInfo prints a message if quiet mode is not enabled.
func printInfo(cmd *cobra.Command, format string, args ...interface{}) {
	if !getQuiet() {
		fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
	}
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

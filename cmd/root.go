package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/planforge/planforge/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "planforge",
	Short: "PlanForge turns reviewed task plans into tracker-ready work items.",
	Long: `PlanForge manages planning sessions from the command line.
It scores task plans with a deterministic three-part quality review,
expands the plans that clear the gate into structured work items with
acceptance schemas, and submits them to the downstream issue tracker.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.planforge/.planforge.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// GetSessionsDir returns the directory session records are stored in.
func GetSessionsDir() string {
	config := GetConfig()
	return filepath.Join(config.Project.RootDir, config.Project.SessionsDir)
}

// GetSchemasDir returns the directory acceptance schemas are written to.
func GetSchemasDir() string {
	config := GetConfig()
	return filepath.Join(config.Project.RootDir, config.Project.SchemasDir)
}

// GetStore initializes and returns the session store using the unified
// types.AppConfig.
func GetStore() (store.SessionStore, error) {
	config := GetConfig()
	dir := GetSessionsDir()
	s, err := store.NewFileSessionStore(dir, config.Data.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store at %s: %w", dir, err)
	}
	return s, nil
}

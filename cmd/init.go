package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"instafolio/pkg/config"
)

//nolint:gochecknoglobals // Cobra boilerplate
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter configuration file",
	Long: `Create a configuration file with default settings.

The file is written to $HOME/.instafolio/config.json unless --config points
somewhere else. An existing file is never overwritten.

Example:
  instafolio init
  instafolio init --config ./instafolio.json`,
	RunE: runInit,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) (err error) {
	err = config.InitConfig(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to create config")
		return err
	}

	var path string
	path, err = resolveConfigPath(getConfigFile())
	if err != nil {
		return err
	}

	fmt.Printf("Config file created at: %s\n", path)
	fmt.Println("Add your Gemini API key to the file, or set GEMINI_API_KEY.")

	return err
}

// resolveConfigPath expands an empty path to the default config location.
func resolveConfigPath(configPath string) (path string, err error) {
	path = configPath
	if path == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return path, err
		}
		path = filepath.Join(homeDir, ".instafolio", "config.json")
	}
	return path, err
}

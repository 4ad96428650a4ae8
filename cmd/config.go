package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"PaperDigest/config"
)

var (
	configInitPath  string
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return config.WriteExampleConfig(configInitPath, configInitForce)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.Marshal(config.Get())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if path := config.GetConfigPath(); path != "" {
			fmt.Fprintf(out, "# %s\n", path)
		} else {
			fmt.Fprintln(out, "# defaults (no config file found)")
		}
		_, err = out.Write(data)
		return err
	},
}

func init() {
	configInitCmd.Flags().StringVarP(&configInitPath, "path", "p", "", "target file (default ~/.paperdigest/config/config.yaml)")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}

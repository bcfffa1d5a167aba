package cli

import (
	"github.com/spf13/cobra"

	"github.com/devblox/relay/internal/config"
)

// Shared CLI flags
var (
	quiet    bool
	portFlag int
)

// ServerConfig holds the loaded server configuration (set by main)
var ServerConfig *config.Config

// SetupRootCmd configures the root command with all subcommands and flags
func SetupRootCmd(c *config.Config) *cobra.Command {
	ServerConfig = c

	rootCmd := &cobra.Command{
		Use:   "devblox",
		Short: "DevBlox - AI command relay for Roblox Studio",
		Long: `DevBlox relays AI-generated Lua commands from the web dashboard to the
Roblox Studio plugin. Just type 'devblox' to start the server.`,
		Run: func(cmd *cobra.Command, args []string) {
			RunServer()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress request logging")
	rootCmd.PersistentFlags().IntVar(&portFlag, "port", 0, "listen port (overrides config)")

	rootCmd.AddCommand(ServeCmd())

	return rootCmd
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mritunjay-prog/DeviceProvisioning/core/catalog"
	"github.com/mritunjay-prog/DeviceProvisioning/core/config"
	"github.com/mritunjay-prog/DeviceProvisioning/core/logger"
)

var (
	loginUsername string
	loginPassword string
	saveToken     bool
)

// loginCmd exchanges tenant credentials for a JWT token.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Obtain a tenant JWT token from the ThingsBoard server",
	Long: `Login authenticates with username/password against the login endpoint
and prints the tenant JWT token. With --save the token is written to
config.properties so the other commands pick it up.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Tenant username (email)")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Tenant password")
	loginCmd.Flags().BoolVar(&saveToken, "save", false, "Write the token to config.properties")
	loginCmd.MarkFlagRequired("username")
	loginCmd.MarkFlagRequired("password")
	RootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	client := catalog.NewClient(cfg.Catalog(), l)
	token, err := client.Login(ctx, loginUsername, loginPassword)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Println(token)

	if saveToken {
		if err := writeTokenToConfig(token); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}
		l.Info("token saved", zap.String("file", config.FileName))
	}
	return nil
}

// writeTokenToConfig rewrites config.properties with the new token,
// preserving the other keys.
func writeTokenToConfig(token string) error {
	v := viper.New()
	v.SetConfigFile(config.FileName)
	v.SetConfigType("properties")
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	v.Set("thingsboard.jwt_token", token)
	return v.WriteConfig()
}

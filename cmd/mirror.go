package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mritunjay-prog/DeviceProvisioning/core/catalog"
	"github.com/mritunjay-prog/DeviceProvisioning/core/config"
	"github.com/mritunjay-prog/DeviceProvisioning/core/database"
	"github.com/mritunjay-prog/DeviceProvisioning/core/logger"
	"github.com/mritunjay-prog/DeviceProvisioning/feature/mirror"
	"github.com/mritunjay-prog/DeviceProvisioning/feature/mirror/models"
)

var yesConfirm bool

// mirrorCmd copies the remote catalog into the local relational database.
var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Mirror the remote catalog into the local database",
	Long: `Mirror fetches all assets, devices, and relations from the ThingsBoard
server, categorizes the assets into countries, states, and devices, and
upserts them into the local database.

The categorized snapshot is reported before anything is written; writing
requires interactive confirmation unless --yes is given.

Examples:
  # Report, then confirm interactively
  device-provisioning mirror

  # Non-interactive (CI)
  device-provisioning mirror --yes`,
	RunE: runMirror,
}

func init() {
	mirrorCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm the database write (non-interactive)")
	RootCmd.AddCommand(mirrorCmd)
}

func runMirror(cmd *cobra.Command, args []string) error {
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
	zap.ReplaceGlobals(l)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	client := catalog.NewClient(cfg.Catalog(), l)
	classifier := mirror.NewClassifier(
		cfg.Profiles.CountryProfileName,
		cfg.Profiles.StateProfileName,
		cfg.Profiles.DeviceProfileName,
	)
	svc := mirror.NewService(client, db, classifier, l)

	snap, err := svc.Fetch(ctx)
	if err != nil {
		return err
	}

	printMirrorReport(l, snap)

	if !confirmMirrorWrite() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	if err := db.AutoMigrate(&models.CountryAsset{}, &models.StateAsset{}, &models.Device{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	if err := svc.Persist(ctx, snap); err != nil {
		return fmt.Errorf("mirror pass finished with errors: %w", err)
	}

	l.Info("mirror pass complete")
	return nil
}

// printMirrorReport prints the pre-write snapshot summary using logger.
func printMirrorReport(l *zap.Logger, snap *mirror.Snapshot) {
	s := snap.Summarize()

	l.Info("Mirror report",
		zap.Int("countries", s.Countries),
		zap.Int("states", s.States),
		zap.Int("other_assets", s.OtherAssets),
		zap.Int("devices", s.Devices),
		zap.Int("linked_states", s.LinkedStates),
		zap.Int("unlinked_states", s.UnlinkedStates),
	)

	if s.UnlinkedStates > 0 {
		l.Warn("Some states have no country relation and will use fallbacks",
			zap.Int("count", s.UnlinkedStates))
	}
}

// confirmMirrorWrite prompts the user for confirmation or uses --yes flag.
func confirmMirrorWrite() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\nType 'yes' to write the snapshot to the database: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}

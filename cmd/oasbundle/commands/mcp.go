package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasbundle/internal/cliutil"
	"github.com/erraggy/oasbundle/internal/mcpserver"
)

// SetupMCPFlags creates the FlagSet for the mcp command. The command takes
// no flags; configuration comes from OASBUNDLE_* environment variables.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasbundle mcp\n\n")
		cliutil.Writef(fs.Output(), "Serve the bundle and refs tools over the Model Context Protocol on stdio.\n\n")
		cliutil.Writef(fs.Output(), "Environment:\n")
		cliutil.Writef(fs.Output(), "  OASBUNDLE_PROJECT_ROOT, OASBUNDLE_ROOT_PREFIXES, OASBUNDLE_STRICT,\n")
		cliutil.Writef(fs.Output(), "  OASBUNDLE_MAX_REF_DEPTH, OASBUNDLE_MAX_CACHED_DOCUMENTS,\n")
		cliutil.Writef(fs.Output(), "  OASBUNDLE_MAX_FILE_SIZE, OASBUNDLE_LOG_LEVEL\n")
	}
	return fs
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}

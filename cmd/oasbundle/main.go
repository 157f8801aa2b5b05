package main

import (
	"fmt"
	"os"

	"github.com/agnivade/levenshtein"

	"github.com/erraggy/oasbundle"
	"github.com/erraggy/oasbundle/cmd/oasbundle/commands"
	"github.com/erraggy/oasbundle/internal/cliutil"
)

// commandNames lists the commands offered as typo suggestions.
var commandNames = []string{"bundle", "refs", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasbundle %s\n\n%s\n", oasbundle.Version(), oasbundle.BuildInfo())
	case "help", "-h", "--help":
		printUsage()
	case "bundle":
		exitOnError(commands.HandleBundle(os.Args[2:]))
	case "refs":
		exitOnError(commands.HandleRefs(os.Args[2:]))
	case "mcp":
		exitOnError(commands.HandleMCP(os.Args[2:]))
	default:
		cliutil.Writef(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			cliutil.Writef(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		cliutil.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}
}

func exitOnError(err error) {
	if err != nil {
		cliutil.Writef(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the closest known command within edit distance 2,
// or "" when nothing is close enough.
func suggestCommand(input string) string {
	best, bestDistance := "", 3
	for _, name := range commandNames {
		if d := levenshtein.ComputeDistance(input, name); d < bestDistance {
			best, bestDistance = name, d
		}
	}
	return best
}

func printUsage() {
	fmt.Println(`oasbundle - OpenAPI multi-file bundler

Usage:
  oasbundle <command> [options]

Commands:
  bundle      Bundle a multi-file OpenAPI document into one self-contained document
  refs        List the files and $ref edges reachable from an OpenAPI document
  mcp         Serve the bundle and refs tools over MCP on stdio
  version     Show version information
  help        Show this help message

Examples:
  oasbundle bundle openapi.yaml bundled.yaml
  oasbundle bundle --strict -o bundled.json openapi.yaml
  oasbundle refs --broken openapi.yaml

Run 'oasbundle <command> --help' for more information on a command.`)
}

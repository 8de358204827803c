// Command idv drives the identity verification client from the shell.
//
// The client reads its configuration document from SECUREID_CONFIG and the
// signed in user's token from SECUREID_TOKEN or the -token flag. Against a
// local idv-simulator, `idv token` mints a token signed with the shared
// development key.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	dErrors "secureid/pkg/domain-errors"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd, ok := commands[os.Args[1]]
	if !ok {
		switch os.Args[1] {
		case "help", "-h", "--help":
			printUsage()
			return
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}

	if err := cmd.run(ctx, os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[1], err)
		var dErr *dErrors.Error
		if errors.As(err, &dErr) {
			fmt.Fprintf(os.Stderr, "error code: %s\n", dErr.Code)
		}
		os.Exit(1)
	}
}

type command struct {
	summary string
	run     func(ctx context.Context, args []string) error
}

var commands = map[string]command{
	"token":           {"Mint a development token accepted by idv-simulator", runToken},
	"countries":       {"List supported countries", runCountries},
	"face-required":   {"Report whether document verification needs a face image", runFaceRequired},
	"capabilities":    {"Show supported countries and the face image requirement", runCapabilities},
	"status":          {"Show capabilities and the current verification status", runStatus},
	"verify":          {"Verify identity with personal information", runVerify},
	"verify-document": {"Verify identity with a government ID after a PII attempt", runVerifyDocument},
	"capture":         {"Capture and verify a government ID without a prior PII attempt", runCapture},
	"reset":           {"Clear the client's cached responses", runReset},
}

var commandOrder = []string{
	"token", "countries", "face-required", "capabilities", "status",
	"verify", "verify-document", "capture", "reset",
}

func printUsage() {
	fmt.Println(`idv - identity verification client

Usage:
  idv <command> [flags]

Commands:`)
	for _, name := range commandOrder {
		fmt.Printf("  %-16s %s\n", name, commands[name].summary)
	}
	fmt.Println(`
Environment:
  SECUREID_CONFIG      configuration document (default sudoplatformconfig.json)
  SECUREID_TOKEN       token of the signed in user
  SECUREID_API_URL     overrides apiService.apiUrl

Examples:
  # Sign in against a local simulator and check status
  export SECUREID_TOKEN=$(idv token -subject alice)
  idv status

  # Attempt PII verification
  idv verify -first JOHN -last SMITH -address "222333 PEACHTREE PLACE" \
    -postal 30318 -country US -dob 1975-02-28

  # Follow up with a driver license
  idv verify-document -country US -type driverLicense -front front.jpg -back back.jpg`)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// flagSet returns a FlagSet carrying the flags every client command accepts.
func flagSet(name string) (*flag.FlagSet, *clientFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cf := &clientFlags{}
	fs.StringVar(&cf.token, "token", os.Getenv("SECUREID_TOKEN"), "Token of the signed in user")
	fs.BoolVar(&cf.cacheOnly, "cache", false, "Read from the response cache instead of the network")
	return fs, cf
}

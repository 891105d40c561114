package main

import (
        "os"
        "strings"

        "wallet-cli/internal/cli"

        "github.com/joho/godotenv"
)

func isCardID(s string) bool {
        s = strings.TrimSpace(s)
        return strings.HasPrefix(s, "card-") && len(s) > len("card-")
}

// rewriteDirectCardLookupArgs turns `wallet <card-id>` into `wallet show <card-id>`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before
// parsing. Persistent flags may come first (`wallet --dir ... <card-id>`), so the first
// positional token is located rather than assuming argv[1].
func rewriteDirectCardLookupArgs(argv []string) []string {
        if len(argv) < 2 {
                return argv
        }

        // Unknown flags are skipped without consuming a value so the card id is never eaten.
        valueFlags := map[string]bool{
                "--dir":       true,
                "--workspace": true,
                "--format":    true,
        }

        for i := 1; i < len(argv); i++ {
                a := strings.TrimSpace(argv[i])
                if a == "" {
                        continue
                }
                if a == "--" {
                        if i+1 < len(argv) && isCardID(argv[i+1]) {
                                return insertShow(argv, i+1)
                        }
                        return argv
                }
                if strings.HasPrefix(a, "-") {
                        if !strings.Contains(a, "=") && valueFlags[a] {
                                i++
                        }
                        continue
                }
                if isCardID(a) {
                        return insertShow(argv, i)
                }
                return argv
        }
        return argv
}

func insertShow(argv []string, at int) []string {
        out := make([]string, 0, len(argv)+1)
        out = append(out, argv[:at]...)
        out = append(out, "show")
        out = append(out, argv[at:]...)
        return out
}

func main() {
        // A .env in the working directory may carry GEMINI_API_KEY; a missing file is fine.
        _ = godotenv.Load()

        os.Args = rewriteDirectCardLookupArgs(os.Args)

        cmd := cli.NewRootCmd()
        if err := cmd.Execute(); err != nil {
                os.Exit(1)
        }
}

package main

import (
	"flag"
	"fmt"
	"os"
	"sng-lab/auth"
	"sng-lab/internal"
	"strings"

	"github.com/samber/lo"
)

const (
	exitOK     = 0
	exitUsage  = 1
	exitConfig = 2
)

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "token: %v\n", err)
	}
	os.Exit(code)
}

// run issues a participant token signed with AUTH_SECRET.
func run(args []string) (int, error) {
	flags := flag.NewFlagSet("token", flag.ContinueOnError)
	userID := flags.String("user", "", "Participant identity")
	name := flags.String("name", "", "Display name")
	roles := flags.String("roles", "", "Comma separated roles, e.g. \"SNG Host\"")
	if err := flags.Parse(args); err != nil {
		return exitUsage, err
	}
	if *userID == "" {
		return exitUsage, fmt.Errorf("-user is required")
	}

	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, err
	}

	displayName := lo.Ternary(*name == "", *userID, *name)
	roleList := lo.Compact(lo.Map(strings.Split(*roles, ","), func(r string, _ int) string {
		return strings.TrimSpace(r)
	}))

	token, err := auth.NewTokenIssuer(config.AuthSecret, config.AuthTokenDuration).
		GenerateToken(*userID, displayName, roleList)
	if err != nil {
		return exitUsage, err
	}
	fmt.Println(token)
	return exitOK, nil
}

// Package main generates the credential material the server reads from the
// environment: a bcrypt hash for ADMIN_PASSWORD_BCRYPT and a random
// ADMIN_JWT_SIGNING_KEY.
package main

import (
	"flag"
	"fmt"
	"os"

	"crease/pkg/secrets"
)

func main() {
	hashCmd := flag.NewFlagSet("hash", flag.ExitOnError)
	hashPassword := hashCmd.String("password", "", "Plaintext admin password to hash")

	keyCmd := flag.NewFlagSet("key", flag.ExitOnError)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "hash":
		hashCmd.Parse(os.Args[2:]) //nolint:errcheck // ExitOnError
		if *hashPassword == "" {
			fmt.Fprintln(os.Stderr, "hash: -password is required")
			os.Exit(2)
		}
		hashed, err := secrets.HashPassword(*hashPassword)
		if err != nil {
			fmt.Fprintln(os.Stderr, "hash:", err)
			os.Exit(1)
		}
		fmt.Printf("ADMIN_PASSWORD_BCRYPT=%s\n", hashed)

	case "key":
		keyCmd.Parse(os.Args[2:]) //nolint:errcheck // ExitOnError
		key, err := secrets.GenerateSigningKey()
		if err != nil {
			fmt.Fprintln(os.Stderr, "key:", err)
			os.Exit(1)
		}
		fmt.Printf("ADMIN_JWT_SIGNING_KEY=%s\n", key)

	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: admincred <command>

commands:
  hash -password <plaintext>   print the bcrypt hash for ADMIN_PASSWORD_BCRYPT
  key                          print a fresh ADMIN_JWT_SIGNING_KEY`)
}

// Command hash-generator prints bcrypt hashes for passwords given as
// arguments, in the form stored in the users collection.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/task-api/internal/service/auth"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(passwords []string, out io.Writer) error {
	if len(passwords) == 0 {
		return errors.New("usage: hash-generator <password> [password...]")
	}

	for _, password := range passwords {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		if _, err := fmt.Fprintln(out, hash); err != nil {
			return err
		}
	}
	return nil
}

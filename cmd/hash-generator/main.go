// Command hash-generator prints the stored form of user passwords, for
// seeding users directly into the database.
//
//	hash-generator 'correct horse battery' 'another long password'
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mintyhq/minty-api/internal/domain"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator PASSWORD...")
		os.Exit(2)
	}
	if err := hashPasswords(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// hashPasswords writes one hash per line. Passwords outside the accepted
// length range are rejected the same way the users endpoint rejects them.
func hashPasswords(w io.Writer, passwords []string) error {
	for i, password := range passwords {
		var u domain.User
		if err := u.SetPassword(password); err != nil {
			return fmt.Errorf("password %d: %w", i+1, err)
		}
		if _, err := fmt.Fprintln(w, u.PasswordHash); err != nil {
			return err
		}
	}
	return nil
}

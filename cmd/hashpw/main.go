// Command hashpw prints the bcrypt hash of a password. It is handy when
// seeding a database by hand or building test fixtures outside of Go.
//
// Usage:
//
//	hashpw [-cost N] <password>
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/mar333yas333/task-manager-api/internal/domain"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: hashpw [-cost N] <password>")
		os.Exit(2)
	}

	password := flag.Arg(0)

	// Seeded accounts must satisfy the same password policy registration
	// enforces, so apply it up front.
	if err := domain.ValidatePassword(password); err != nil {
		fmt.Fprintf(os.Stderr, "hashpw: %v\n", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), *cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashpw: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(hash))
}

// Command create_admin hashes an admin password for ADMIN_PASSWORD_HASH.
// The dashboard uses a single shared credential, so there is no user row to
// create: the output goes straight into the environment.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"trifecta/internal/util"
)

func main() {
	password := strings.Join(os.Args[1:], " ")
	if password == "" {
		fmt.Print("Admin password: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Fatalf("Failed to read password: %v", err)
		}
		password = strings.TrimSpace(line)
	}

	if len(password) < 8 {
		log.Fatal("Password must be at least 8 characters")
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	fmt.Println("Add this to your environment or .env file:")
	fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", hash)
}

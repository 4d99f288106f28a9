// Package main prints the bcrypt hash of an API key, for FITSUGGEST_API_KEY_HASH.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/2beens/fitsuggest/pkg"
)

func main() {
	var apiKey string
	if len(os.Args) > 1 {
		apiKey = os.Args[1]
	} else {
		fmt.Fprint(os.Stderr, "api key: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintf(os.Stderr, "read api key: %s\n", err)
			os.Exit(1)
		}
		apiKey = strings.TrimSpace(line)
	}

	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "empty api key")
		os.Exit(1)
	}

	hash, err := pkg.HashAPIKey(apiKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash api key: %s\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}

// Package main hashes a bank operator secret for use as BANK_SECRET_HASH.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/twothirdshuman/minecraft-banking/pkg/passpkg"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatal().Msg("usage: hashsecret <secret>")
	}

	hashed, err := passpkg.Hash(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("cannot hash secret")
	}

	fmt.Println(hashed)
}

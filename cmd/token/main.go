package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/mikeodnis/core-service/config"
	"github.com/mikeodnis/core-service/pkg/helpers"
)

// token prints a bearer token signed with JWT_SECRET, for calling the
// protected routes during development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	sub := flag.String("sub", "dev-user", "token subject")
	ttl := flag.Duration("ttl", cfg.JWTTTL, "token lifetime")
	flag.Parse()

	if *sub == "" {
		log.Fatal("-sub must not be empty")
	}
	if cfg.UsingDefaultJWTSecret() {
		log.Println("warning: signing with the development secret")
	}

	token, exp, err := helpers.NewJWTManager(cfg.JWTSecret, *ttl).GenerateToken(*sub)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Println(token)
	log.Printf("subject=%s expires=%s", *sub, exp.UTC().Format(time.RFC3339))
}

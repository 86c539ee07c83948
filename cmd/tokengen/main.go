// Command tokengen mints a bearer token for calling the registry API in
// development. It reads the same JWT_* variables as the server.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	jwttoken "socialregistry/internal/jwt_token"
	"socialregistry/internal/platform/config"
)

func main() {
	subject := flag.String("sub", "dev-user", "user id placed in the token subject")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	svc := jwttoken.NewJWTService(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.Audience)
	token, err := svc.GenerateAccessToken(*subject, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to sign token:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}

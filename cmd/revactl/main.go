package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pranayharishchandra/RevaMedia/internal/client"
)

// revactl exercises the API from the command line:
//
//	revactl -base http://localhost:8080 login -username ab1 -password secret1
//	revactl me
//	revactl feed
func main() {
	base := flag.String("base", "http://localhost:8080", "Base URL of the API server")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatalf("usage: revactl [-base URL] <login|me|feed> [args]")
	}

	// Exactly one cache per running client; reads of the same query key
	// share cached data. Cached entries are reused as-is until they go
	// stale, mirroring the app's no-refetch-on-focus policy.
	cache := client.NewQueryCache(client.Options{TTL: 30 * time.Second})
	api, err := client.New(*base, cache)
	if err != nil {
		log.Fatalf("client error: %v", err)
	}

	ctx := context.Background()

	switch flag.Arg(0) {
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		username := fs.String("username", "", "Username")
		password := fs.String("password", "", "Password")
		_ = fs.Parse(flag.Args()[1:])
		if *username == "" || *password == "" {
			log.Fatalf("usage: revactl login -username NAME -password PASS")
		}
		u, err := api.Login(ctx, *username, *password)
		if err != nil {
			log.Fatalf("login failed: %v", err)
		}
		fmt.Printf("Logged in as %s\n", u.Username)

	case "me":
		u, err := api.Me(ctx)
		if err != nil {
			log.Fatalf("me failed: %v", err)
		}
		printJSON(u)

	case "feed":
		posts, err := api.AllPosts(ctx)
		if err != nil {
			log.Fatalf("feed failed: %v", err)
		}
		printJSON(posts)

	default:
		log.Fatalf("unknown command: %s", flag.Arg(0))
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("encode error: %v", err)
	}
}

// Copyright (c) 2026 TTBT Enterprises LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"crypto/tls"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/c2FmZQ/storage"
	"github.com/c2FmZQ/storage/crypto"

	"github.com/ttbt-io/gridiron/backend"
	"github.com/ttbt-io/gridiron/internal/catalog"
	"github.com/ttbt-io/gridiron/internal/engine"
	"github.com/ttbt-io/gridiron/internal/store"
)

var (
	addr           = flag.String("addr", ":8080", "The TCP address to listen to")
	debugMode      = flag.Bool("debug", false, "Enable debug mode")
	dataDir        = flag.String("data-dir", "data", "Directory for match, team and catalog data")
	tlsCert        = flag.String("tls-cert", "", "Path to main HTTP TLS certificate")
	tlsKey         = flag.String("tls-key", "", "Path to main HTTP TLS key")
	authCookieName = flag.String("auth-cookie-name", "gridiron_auth", "Name of the cookie containing the JWT")
	authJWKSURL    = flag.String("auth-jwks-url", "", "Comma-separated list of [ISSUER=]URL for JWKS endpoints")
	cacheSize      = flag.Int("match-cache-size", 256, "Number of recently-touched matches kept in memory")
)

func main() {
	flag.Parse()

	var mainTLSCert *tls.Certificate
	if *tlsCert != "" && *tlsKey != "" {
		cert, err := tls.LoadX509KeyPair(*tlsCert, *tlsKey)
		if err != nil {
			log.Fatalf("Failed to load main TLS cert/key: %v", err)
		}
		mainTLSCert = &cert
	}

	// Initialize Encryption Key and catalog storage, same bootstrap
	// sequence as the teacher's main.go: refuse to start unencrypted if
	// a master key was ever configured for this data directory.
	var masterKey crypto.MasterKey
	if passphrase := os.Getenv("GRIDIRON_MASTER_KEY"); passphrase != "" {
		keyFile := filepath.Join(*dataDir, "master.key")
		os.MkdirAll(*dataDir, 0755)

		var err error
		masterKey, err = crypto.ReadMasterKey([]byte(passphrase), keyFile)
		if err != nil {
			if os.IsNotExist(err) {
				log.Println("Initializing new master encryption key...")
				masterKey, err = crypto.CreateMasterKey()
				if err != nil {
					log.Fatalf("Failed to create master key: %v", err)
				}
				if err := masterKey.Save([]byte(passphrase), keyFile); err != nil {
					log.Fatalf("Failed to save master key: %v", err)
				}
			} else {
				log.Fatalf("Failed to read master key: %v", err)
			}
		} else {
			log.Println("Loaded master encryption key.")
		}
	} else {
		keyFile := filepath.Join(*dataDir, "master.key")
		if _, err := os.Stat(keyFile); err == nil {
			log.Fatalf("Critical Security Error: %s exists but GRIDIRON_MASTER_KEY is not set. Refusing to start in unencrypted mode to prevent data corruption or exposure.", keyFile)
		}
		log.Println("Warning: No GRIDIRON_MASTER_KEY provided. Catalog data will be stored UNENCRYPTED.")
	}

	catalogStorage := storage.New(*dataDir, masterKey)
	catalogStorage.EnableCompression(true)
	if _, err := catalog.Load(catalogStorage); err != nil {
		log.Fatalf("Failed to load races/positions catalog: %v", err)
	}

	matchStore, err := store.OpenBolt(filepath.Join(*dataDir, "matches.bolt"))
	if err != nil {
		log.Fatalf("Failed to open match store: %v", err)
	}

	resolver := engine.NewResolver(engine.NewSeededDice(uint64(os.Getpid()), uint64(time.Now().UnixNano())))

	teams := func(teamID string) (engine.Team, error) {
		return matchStore.LoadTeam(teamID)
	}

	hubManager, err := backend.NewHubManager(matchStore, resolver, teams, *cacheSize)
	if err != nil {
		log.Fatalf("Failed to build hub manager: %v", err)
	}

	server, err := backend.StartServer(backend.Options{
		Addr:           *addr,
		Cert:           mainTLSCert,
		Debug:          *debugMode,
		Store:          matchStore,
		Teams:          matchStore,
		HubManager:     hubManager,
		AuthCookieName: *authCookieName,
		AuthJWKSURL:    *authJWKSURL,
	})
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	} else {
		log.Println("Gracefully stopped.")
	}
	if err := matchStore.Close(); err != nil {
		log.Printf("Store close error: %v", err)
	}
}

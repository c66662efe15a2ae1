package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"

	"github.com/mashdb/MashDB"
	"github.com/mashdb/MashDB/store"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	port := flag.Int("port", 7632, "TCP port to listen on")
	dataDir := flag.String("dataDir", "", "Data directory (memory if empty)")
	configFile := flag.String("config", "", "Path to a YAML config file")
	jwtSecret := flag.String("jwtSecret", "", "Shared secret enabling JWT auth")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("MashDB SQL Server v%s\n", Version)
		return
	}

	config := loadConfig(*configFile)
	if *dataDir == "" {
		*dataDir = config.GetString("dataDir")
	}
	if *jwtSecret == "" {
		*jwtSecret = config.GetString("jwtSecret")
	}
	if config.IsSet("port") && *port == 7632 {
		*port = config.GetInt("port")
	}

	var instance *MashDB.Instance
	if *dataDir == "" {
		log.Println("Using in-memory store")
		instance = MashDB.Open(store.NewMemoryStore())
	} else {
		log.Printf("Using file store: %s", *dataDir)
		st, err := store.NewFileStore(*dataDir)
		if err != nil {
			log.Fatalf("Failed to initialize file store: %v", err)
		}
		instance = MashDB.Open(st)
	}

	var authConfig *AuthConfig
	if *jwtSecret != "" {
		authConfig = &AuthConfig{
			Enabled:   true,
			JWTSecret: *jwtSecret,
			Issuer:    config.GetString("issuer"),
			Audience:  config.GetString("audience"),
		}
		log.Println("JWT authentication enabled")
	}

	server := NewServer(instance, authConfig)
	addr := fmt.Sprintf(":%d", *port)

	if err := server.Start(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	fmt.Println()
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Printf("║   MashDB SQL Server v%-16s ║\n", Version)
	fmt.Println("║   Column-Store SQL Database Engine    ║")
	fmt.Println("╚═══════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("Listening on port %d\n", *port)
	fmt.Println("Send SQL statements (one per line), 'quit' to disconnect")
	fmt.Println()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	server.Stop()
	log.Println("Server stopped")
}

// loadConfig reads an optional YAML config. An explicit path must exist;
// otherwise mashdb-server.yaml is looked up in the working directory.
func loadConfig(path string) *viper.Viper {
	config := viper.New()
	config.SetConfigType("yaml")

	if path != "" {
		config.SetConfigFile(path)
		if err := config.ReadInConfig(); err != nil {
			log.Fatalf("Failed to read config %s: %v", path, err)
		}
		return config
	}

	config.SetConfigName("mashdb-server")
	config.AddConfigPath(".")
	_ = config.ReadInConfig()
	return config
}

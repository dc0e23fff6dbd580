package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"tippy-tappy/internal/logging"
)

var migrationFile = regexp.MustCompile(`^(\d{6})_[a-z0-9_]+\.(up|down)\.sql$`)

func main() {
	name := flag.String("name", "", "migration name")
	dir := flag.String("dir", filepath.Join("db", "migrations"), "migrations directory")
	flag.Parse()

	log := logging.New("info", false)
	if *name == "" {
		log.Fatal().Msg("migration name is required")
	}
	if strings.ContainsAny(*name, " -") {
		log.Fatal().Str("name", *name).Msg("migration name must be snake_case")
	}

	version, err := nextVersion(*dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", *dir).Msg("read migrations dir")
	}
	base := fmt.Sprintf("%06d_%s", version, strings.ToLower(*name))
	upPath := filepath.Join(*dir, base+".up.sql")
	downPath := filepath.Join(*dir, base+".down.sql")

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("create migrations dir")
	}
	if err := writeFile(upPath, "-- up migration\n"); err != nil {
		log.Fatal().Err(err).Msg("create up migration")
	}
	if err := writeFile(downPath, "-- down migration\n"); err != nil {
		log.Fatal().Err(err).Msg("create down migration")
	}

	log.Info().Str("up", upPath).Str("down", downPath).Msg("migration created")
}

// nextVersion returns one past the highest sequence number in dir. golang-migrate
// orders by that number, so files stay in the 000001 style.
func nextVersion(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	highest := 0
	for _, entry := range entries {
		match := migrationFile.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return highest + 1, nil
}

func writeFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("file already exists: %s", path)
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
